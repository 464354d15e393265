package proxy

import (
	"errors"
	"net/http"
	"testing"

	"lumen-hq/hermes/pkg/providers"
	"lumen-hq/hermes/pkg/proxy/types"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "request error keeps its status and message",
			err:        &RequestError{Message: types.MsgMessageEmpty, Status: http.StatusBadRequest},
			wantStatus: http.StatusBadRequest,
			wantMsg:    types.MsgMessageEmpty,
		},
		{
			name:       "config error is a server configuration failure",
			err:        &providers.ConfigError{Provider: "google", Field: "api_key", Message: "API key is not configured"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    types.MsgMissingCredentials,
		},
		{
			name:       "auth error maps to invalid API key",
			err:        &providers.AuthError{Provider: "google", Message: "API_KEY_INVALID"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    types.MsgInvalidAPIKey,
		},
		{
			name:       "quota error maps to 503",
			err:        &providers.QuotaError{Provider: "google", Message: "QUOTA_EXCEEDED"},
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    types.MsgQuotaExceeded,
		},
		{
			name:       "empty response is the generic failure",
			err:        &providers.EmptyResponseError{Provider: "google"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    types.MsgGenerationFailed,
		},
		{
			name:       "timeout is the generic failure",
			err:        &providers.TimeoutError{Provider: "google"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    types.MsgGenerationFailed,
		},
		{
			name:       "unknown error is the generic failure",
			err:        errors.New("something unexpected"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    types.MsgGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := MapError(tt.err)
			if status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, status)
			}
			if msg != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}
