package openai

import "time"

const (
	// DefaultBaseURL is the OpenAI-compatible API root.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o"

	// DefaultRequestTimeout must stay generous: complex report generations
	// regularly take 1-3 minutes, far beyond the usual client default.
	DefaultRequestTimeout = 180 * time.Second
	// DefaultConnectTimeout bounds dialing separately from the full request.
	DefaultConnectTimeout = 30 * time.Second

	// DefaultRequestsPerMinute throttles outbound generation calls.
	DefaultRequestsPerMinute = 20
)
