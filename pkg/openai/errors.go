package openai

import "errors"

// Gateway error taxonomy. Every transport or API failure maps onto one of
// these; raw transport errors never reach callers.
var (
	ErrTimeout      = errors.New("openai: request timed out")
	ErrUnreachable  = errors.New("openai: API unreachable")
	ErrUnauthorized = errors.New("openai: unauthorized")
	ErrUnknown      = errors.New("openai: unknown API error")
)
