// Package google implements the backend adapter for Google's Generative
// Language API (Gemini-family models).
package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"lumen-hq/hermes/pkg/providers"
)

// Provider is the Google Generative Language adapter.
// It implements the providers.Provider interface for the generateContent API.
type Provider struct {
	*providers.HTTPProvider
}

const (
	// DefaultBaseURL is the Generative Language API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// APIVersion is the API version path segment.
	APIVersion = "v1beta"
)

// NewProvider creates a new Google provider instance.
//
// An empty API key is not a constructor error: the process is allowed to
// start without a key, and generation requests fail with a ConfigError until
// one is configured.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		config.Name = "google"
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.Model == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "model",
			Message:  "model is required",
		}
	}

	// Set defaults if not provided
	if config.MaxRetries == 0 {
		config.MaxRetries = 2
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(config),
	}

	slog.Info("Google provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
		"api_key_configured", config.APIKey != "",
	)

	return p, nil
}

// SendGeneration sends a text generation request to the Generative Language API.
func (p *Provider) SendGeneration(ctx context.Context, req *providers.GenerationRequest) (*providers.GenerationResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cfg := p.GetConfig()
	if cfg.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: p.GetName(),
			Field:    "api_key",
			Message:  "API key is not configured",
		}
	}

	model := req.Model
	if model == "" {
		model = cfg.Model
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", cfg.BaseURL, APIVersion, model)
	headers := map[string]string{
		"x-goog-api-key": cfg.APIKey,
		"Content-Type":   "application/json",
	}

	var genResp generateContentResponse
	if err := p.DoJSONRequest(ctx, http.MethodPost, url, buildRequest(req), &genResp, headers); err != nil {
		return nil, classifyError(p.GetName(), err)
	}

	resp, err := transformResponse(p.GetName(), model, &genResp)
	if err != nil {
		return nil, err
	}

	slog.Debug("generation request succeeded",
		"provider", p.GetName(),
		"model", model,
		"tokens", resp.Usage.TotalTokens,
	)

	return resp, nil
}

// HealthCheck verifies the model endpoint is reachable with the configured key.
func (p *Provider) HealthCheck(ctx context.Context) error {
	cfg := p.GetConfig()
	if cfg.APIKey == "" {
		return &providers.ConfigError{
			Provider: p.GetName(),
			Field:    "api_key",
			Message:  "API key is not configured",
		}
	}

	url := fmt.Sprintf("%s/%s/models/%s", cfg.BaseURL, APIVersion, cfg.Model)
	headers := map[string]string{"x-goog-api-key": cfg.APIKey}

	resp, err := p.DoRequest(ctx, http.MethodGet, url, nil, headers)
	if err != nil {
		return classifyError(p.GetName(), err)
	}
	resp.Body.Close()

	return nil
}

// validateRequest validates the generation request.
func validateRequest(req *providers.GenerationRequest) error {
	if req == nil {
		return &providers.ValidationError{
			Field:   "request",
			Message: "request cannot be nil",
		}
	}

	if req.Prompt == "" {
		return &providers.ValidationError{
			Field:   "prompt",
			Message: "prompt is required",
		}
	}

	return nil
}
