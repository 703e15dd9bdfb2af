package openai

import (
	"net/http"

	"golang.org/x/time/rate"
)

// OpenAIConfig holds the configuration for the OpenAI client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// RequestTimeout covers the whole call including reading the body.
	// Zero means DefaultRequestTimeout.
	RequestTimeout int // seconds
	// RequestsPerMinute caps outbound calls. Zero means DefaultRequestsPerMinute.
	RequestsPerMinute int
}

// openaiImpl implements IOpenAI against a chat-completion endpoint.
type openaiImpl struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// chatRequest is the request body for POST /chat/completions.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from POST /chat/completions.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
