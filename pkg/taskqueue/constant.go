package taskqueue

import "time"

const (
	// DefaultVisibilityTimeout is the default in-flight claim duration.
	// Generous because a single LLM generation can take minutes.
	DefaultVisibilityTimeout = 10 * time.Minute

	// RequeueBatchSize bounds how many expired items one sweep moves back.
	RequeueBatchSize = 100
)
