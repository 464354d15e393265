package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumen-hq/hermes/pkg/providers"
)

func newTestProvider(t *testing.T, baseURL, apiKey string) *Provider {
	t.Helper()
	p, err := NewProvider(providers.ProviderConfig{
		Name:       "google",
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      "gemini-1.5-flash",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	return p
}

func TestNewProvider_RequiresModel(t *testing.T) {
	_, err := NewProvider(providers.ProviderConfig{Name: "google"})

	var configErr *providers.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("Expected ConfigError, got %v", err)
	}
	if configErr.Field != "model" {
		t.Errorf("Expected field %q, got %q", "model", configErr.Field)
	}
}

func TestNewProvider_AllowsMissingAPIKey(t *testing.T) {
	p, err := NewProvider(providers.ProviderConfig{Name: "google", Model: "gemini-1.5-flash"})
	if err != nil {
		t.Fatalf("Provider construction should tolerate a missing API key: %v", err)
	}
	defer p.Close()
}

func TestSendGeneration_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		resp := generateContentResponse{
			Candidates: []candidate{
				{
					Content: content{
						Role:  "model",
						Parts: []part{{Text: "Hi "}, {Text: "there!"}},
					},
					FinishReason: "STOP",
				},
			},
			UsageMetadata: &usageMetadata{
				PromptTokenCount:     12,
				CandidatesTokenCount: 3,
				TotalTokenCount:      15,
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, "test-key")
	defer p.Close()

	resp, err := p.SendGeneration(context.Background(), &providers.GenerationRequest{Prompt: "Hello"})
	if err != nil {
		t.Fatalf("SendGeneration failed: %v", err)
	}

	if gotPath != "/v1beta/models/gemini-1.5-flash:generateContent" {
		t.Errorf("Unexpected request path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("Expected API key header, got %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 || gotReq.Contents[0].Parts[0].Text != "Hello" {
		t.Errorf("Unexpected wire request: %+v", gotReq)
	}

	if resp.Text != "Hi there!" {
		t.Errorf("Expected joined candidate text, got %q", resp.Text)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("Expected 15 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if resp.FinishReason != "STOP" {
		t.Errorf("Expected finish reason STOP, got %q", resp.FinishReason)
	}
}

func TestSendGeneration_MissingAPIKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, "")
	defer p.Close()

	_, err := p.SendGeneration(context.Background(), &providers.GenerationRequest{Prompt: "Hello"})

	var configErr *providers.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("Expected ConfigError, got %v", err)
	}
	if called {
		t.Error("Backend must not be invoked without an API key")
	}
}

func TestSendGeneration_InvalidAPIKey(t *testing.T) {
	// The API reports a bad key inside a 400 payload, not via 401
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT","details":[{"reason":"API_KEY_INVALID"}]}}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, "bad-key")
	defer p.Close()

	_, err := p.SendGeneration(context.Background(), &providers.GenerationRequest{Prompt: "Hello"})

	var authErr *providers.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected AuthError, got %v", err)
	}
}

func TestSendGeneration_QuotaExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, "test-key")
	defer p.Close()

	_, err := p.SendGeneration(context.Background(), &providers.GenerationRequest{Prompt: "Hello"})

	var quotaErr *providers.QuotaError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("Expected QuotaError, got %v", err)
	}
	if quotaErr.RetryAfter != 30*time.Second {
		t.Errorf("Expected 30s retry-after, got %v", quotaErr.RetryAfter)
	}
}

func TestSendGeneration_QuotaReportedAsForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"QUOTA_EXCEEDED for the project"}}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, "test-key")
	defer p.Close()

	_, err := p.SendGeneration(context.Background(), &providers.GenerationRequest{Prompt: "Hello"})

	var quotaErr *providers.QuotaError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("Expected QuotaError for 403 quota payload, got %v", err)
	}
}

func TestSendGeneration_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateContentResponse{})
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, "test-key")
	defer p.Close()

	_, err := p.SendGeneration(context.Background(), &providers.GenerationRequest{Prompt: "Hello"})

	var emptyErr *providers.EmptyResponseError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("Expected EmptyResponseError, got %v", err)
	}
}

func TestSendGeneration_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := generateContentResponse{
			Candidates: []candidate{
				{Content: content{Parts: []part{{Text: ""}}}, FinishReason: "SAFETY"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, "test-key")
	defer p.Close()

	_, err := p.SendGeneration(context.Background(), &providers.GenerationRequest{Prompt: "Hello"})

	var emptyErr *providers.EmptyResponseError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("Expected EmptyResponseError, got %v", err)
	}
	if emptyErr.FinishReason != "SAFETY" {
		t.Errorf("Expected finish reason SAFETY, got %q", emptyErr.FinishReason)
	}
}

func TestSendGeneration_RequiresPrompt(t *testing.T) {
	p := newTestProvider(t, "http://unused.invalid", "test-key")
	defer p.Close()

	_, err := p.SendGeneration(context.Background(), &providers.GenerationRequest{})

	var valErr *providers.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash" {
			t.Errorf("Unexpected health check path %q", r.URL.Path)
		}
		w.Write([]byte(`{"name":"models/gemini-1.5-flash"}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, "test-key")
	defer p.Close()

	if err := p.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
