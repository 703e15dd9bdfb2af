package openai

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// IOpenAI defines the interface for chat-completion generation.
// Implementations are safe for concurrent use.
type IOpenAI interface {
	// ChatCompletion sends one prompt under a system prompt and returns the
	// raw assistant text. No retries; the caller owns retry policy.
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Model returns the configured model identifier, recorded on reports.
	Model() string
}

// NewOpenAI creates a new OpenAI client. APIKey must be set.
func NewOpenAI(cfg OpenAIConfig) (IOpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	requestTimeout := DefaultRequestTimeout
	if cfg.RequestTimeout > 0 {
		requestTimeout = time.Duration(cfg.RequestTimeout) * time.Second
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = DefaultRequestsPerMinute
	}

	// Both connect and overall timeouts are overridden: the default client
	// gives up long before a complex generation finishes.
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: DefaultConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &openaiImpl{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
	}, nil
}
