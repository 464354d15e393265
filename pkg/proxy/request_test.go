package proxy

import (
	"net/http/httptest"
	"strings"
	"testing"

	"lumen-hq/hermes/pkg/proxy/types"
)

func TestParseChatRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg any
		wantErr string
	}{
		{
			name:    "valid request",
			body:    `{"message":"Hello"}`,
			wantMsg: "Hello",
		},
		{
			name:    "missing field decodes as nil",
			body:    `{}`,
			wantMsg: nil,
		},
		{
			name:    "non-string message is preserved for the validator",
			body:    `{"message":42}`,
			wantMsg: float64(42),
		},
		{
			name:    "malformed JSON is an invalid message",
			body:    `{"message":`,
			wantErr: types.MsgInvalidMessage,
		},
		{
			name:    "empty body is an invalid message",
			body:    ``,
			wantErr: types.MsgInvalidMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/chat", strings.NewReader(tt.body))
			req, err := ParseChatRequest(r)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Expected error %q, got nil", tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("Expected error %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if req.Message != tt.wantMsg {
				t.Errorf("Expected message %v, got %v", tt.wantMsg, req.Message)
			}
		})
	}
}

func TestClientIdentity(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{
			name:       "remote address without port",
			remoteAddr: "192.168.1.100:54321",
			want:       "192.168.1.100",
		},
		{
			name:       "forwarded header takes precedence",
			remoteAddr: "10.0.0.1:80",
			forwarded:  "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "first forwarded address wins",
			remoteAddr: "10.0.0.1:80",
			forwarded:  "203.0.113.7, 198.51.100.2",
			want:       "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/chat", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := ClientIdentity(r); got != tt.want {
				t.Errorf("Expected identity %q, got %q", tt.want, got)
			}
		})
	}
}
