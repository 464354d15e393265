package google

import (
	"errors"
	"strings"

	"lumen-hq/hermes/pkg/providers"
)

// Error payload markers used by the Generative Language API. The API reports
// some authentication and quota failures inside a 400/429 error body rather
// than through the HTTP status alone, so the raw payload has to be inspected.
// This substring matching is confined to this adapter; everything above it
// sees only the typed error kinds.
const (
	markerAPIKeyInvalid     = "API_KEY_INVALID"
	markerQuotaExceeded     = "QUOTA_EXCEEDED"
	markerResourceExhausted = "RESOURCE_EXHAUSTED"
)

// classifyError upgrades generic transport errors to the precise typed kind
// based on the backend's error payload.
func classifyError(provider string, err error) error {
	var provErr *providers.ProviderError
	if errors.As(err, &provErr) {
		switch {
		case strings.Contains(provErr.Message, markerAPIKeyInvalid):
			return &providers.AuthError{
				Provider: provider,
				Message:  provErr.Message,
			}
		case strings.Contains(provErr.Message, markerQuotaExceeded),
			strings.Contains(provErr.Message, markerResourceExhausted):
			return &providers.QuotaError{
				Provider: provider,
				Message:  provErr.Message,
			}
		}
		return err
	}

	var authErr *providers.AuthError
	if errors.As(err, &authErr) && strings.Contains(authErr.Message, markerQuotaExceeded) {
		// 403 with a quota payload is quota exhaustion, not a bad key
		return &providers.QuotaError{
			Provider: provider,
			Message:  authErr.Message,
		}
	}

	return err
}
