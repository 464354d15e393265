// Package handlers implements the HTTP handlers for the relay's routes.
package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"lumen-hq/hermes/pkg/providers"
	"lumen-hq/hermes/pkg/proxy"
	"lumen-hq/hermes/pkg/proxy/middleware"
	"lumen-hq/hermes/pkg/proxy/types"
	"lumen-hq/hermes/pkg/ratelimit"
	"lumen-hq/hermes/pkg/telemetry/metrics"
)

// CredentialSource reports the currently configured backend credential.
// It is a function so that configuration hot reloads take effect without
// rebuilding the handler.
type CredentialSource func() string

// ChatHandler handles POST /api/chat: rate limiting, validation, prompt
// assembly, the backend call, and response/error mapping, in that order.
type ChatHandler struct {
	provider    providers.Provider
	limiter     *ratelimit.FixedWindowLimiter
	metrics     *metrics.Collector
	credentials CredentialSource
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(provider providers.Provider, limiter *ratelimit.FixedWindowLimiter, collector *metrics.Collector, credentials CredentialSource) *ChatHandler {
	return &ChatHandler{
		provider:    provider,
		limiter:     limiter,
		metrics:     collector,
		credentials: credentials,
	}
}

// ServeHTTP implements http.Handler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	if r.Method != http.MethodPost {
		proxy.WriteErrorResponse(w, http.StatusNotFound, types.MsgNotFound)
		return
	}

	// Rate limit gate runs first: a rejected request is never parsed,
	// validated, or forwarded, and does not consume window budget.
	identity := proxy.ClientIdentity(r)
	result := h.limiter.Check(identity)
	setRateLimitHeaders(w, result)

	if !result.Allowed {
		h.metrics.RecordRateLimitRejection()
		slog.WarnContext(ctx, "request rate limited",
			"request_id", requestID,
			"identity", identity,
			"retry_after", result.RetryAfter.String(),
		)
		proxy.WriteErrorResponse(w, http.StatusTooManyRequests, types.MsgRateLimited)
		return
	}

	req, err := proxy.ParseChatRequest(r)
	if err != nil {
		status, msg := proxy.MapError(err)
		slog.WarnContext(ctx, "invalid chat request",
			"request_id", requestID,
			"error", err,
		)
		proxy.WriteErrorResponse(w, status, msg)
		return
	}

	message, err := proxy.ValidateMessage(req.Message)
	if err != nil {
		status, msg := proxy.MapError(err)
		slog.WarnContext(ctx, "chat message rejected by validator",
			"request_id", requestID,
			"error", err,
		)
		proxy.WriteErrorResponse(w, status, msg)
		return
	}

	if h.credentials() == "" {
		slog.ErrorContext(ctx, "backend credential not configured",
			"request_id", requestID,
			"provider", h.provider.GetName(),
		)
		proxy.WriteErrorResponse(w, http.StatusInternalServerError, types.MsgMissingCredentials)
		return
	}

	prompt := proxy.BuildPrompt(message)

	start := time.Now()
	resp, err := h.provider.SendGeneration(ctx, &providers.GenerationRequest{
		Prompt: prompt,
	})
	latency := time.Since(start)

	if err != nil {
		h.metrics.RecordBackendRequest(backendOutcome(err), latency)
		status, msg := proxy.MapError(err)
		slog.ErrorContext(ctx, "generation request failed",
			"request_id", requestID,
			"provider", h.provider.GetName(),
			"latency_ms", latency.Milliseconds(),
			"status", status,
			"error", err,
		)
		proxy.WriteErrorResponse(w, status, msg)
		return
	}

	h.metrics.RecordBackendRequest(metrics.OutcomeSuccess, latency)
	slog.InfoContext(ctx, "generation request completed",
		"request_id", requestID,
		"provider", h.provider.GetName(),
		"latency_ms", latency.Milliseconds(),
		"tokens", resp.Usage.TotalTokens,
	)

	proxy.WriteJSONResponse(w, http.StatusOK, &types.ChatResponse{Response: resp.Text})
}

// setRateLimitHeaders emits the standard rate limit headers on every
// response, allowed or not. Retry-After is added only on rejection.
func setRateLimitHeaders(w http.ResponseWriter, result ratelimit.CheckResult) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset.Unix(), 10))

	if !result.Allowed && result.RetryAfter > 0 {
		seconds := int(math.Ceil(result.RetryAfter.Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
}

// backendOutcome maps a backend error to its metrics outcome label.
func backendOutcome(err error) string {
	var authErr *providers.AuthError
	if errors.As(err, &authErr) {
		return metrics.OutcomeAuthError
	}
	var quotaErr *providers.QuotaError
	if errors.As(err, &quotaErr) {
		return metrics.OutcomeQuotaError
	}
	var emptyErr *providers.EmptyResponseError
	if errors.As(err, &emptyErr) {
		return metrics.OutcomeEmptyResponse
	}
	var configErr *providers.ConfigError
	if errors.As(err, &configErr) {
		return metrics.OutcomeConfigError
	}
	return metrics.OutcomeError
}
