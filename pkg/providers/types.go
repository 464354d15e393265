package providers

import "time"

// GenerationRequest represents a backend-agnostic text generation request.
// It is transformed to the backend-specific format by each adapter.
type GenerationRequest struct {
	// Model is the model identifier (e.g., "gemini-1.5-flash")
	Model string `json:"model"`

	// Prompt is the full prompt text sent to the backend
	Prompt string `json:"prompt"`

	// Temperature controls randomness (0.0 to 2.0); zero means backend default
	Temperature float64 `json:"temperature,omitempty"`

	// MaxOutputTokens caps the generated text length; zero means backend default
	MaxOutputTokens int `json:"max_output_tokens,omitempty"`
}

// GenerationResponse represents a backend-agnostic text generation response.
// It is normalized from backend-specific response formats.
type GenerationResponse struct {
	// Model is the model that generated the response
	Model string `json:"model"`

	// Text is the generated text content
	Text string `json:"text"`

	// FinishReason indicates why generation stopped
	FinishReason string `json:"finish_reason,omitempty"`

	// Usage contains token consumption information
	Usage TokenUsage `json:"usage"`

	// Created is the Unix timestamp when the response was received
	Created int64 `json:"created"`
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	// PromptTokens is the number of tokens in the prompt
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the generated text
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens used
	TotalTokens int `json:"total_tokens"`
}

// ProviderHealth tracks the health status of a provider.
type ProviderHealth struct {
	// IsHealthy indicates whether the provider is currently healthy
	IsHealthy bool

	// LastCheck is the timestamp of the last health check
	LastCheck time.Time

	// LastError is the most recent error encountered (nil if healthy)
	LastError error

	// ConsecutiveFailures counts sequential failures
	ConsecutiveFailures int

	// LastSuccessfulRequest is the timestamp of the last successful request
	LastSuccessfulRequest time.Time

	// TotalRequests is the total number of requests sent to this provider
	TotalRequests int64

	// FailedRequests is the total number of failed requests
	FailedRequests int64
}

// ProviderConfig contains configuration for a provider instance.
type ProviderConfig struct {
	// Name is the provider identifier (e.g., "google")
	Name string

	// BaseURL is the API endpoint base URL
	BaseURL string

	// APIKey is the authentication key; may be empty, in which case
	// generation requests fail with a ConfigError
	APIKey string

	// Model is the model identifier used for generation
	Model string

	// Timeout is the request timeout duration
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts
	MaxRetries int

	// MaxIdleConns is the maximum number of idle connections in the pool
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool
	IdleConnTimeout time.Duration
}
