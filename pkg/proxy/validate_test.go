package proxy

import (
	"strings"
	"testing"

	"lumen-hq/hermes/pkg/proxy/types"
)

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		message any
		want    string
		wantErr string
	}{
		{
			name:    "valid message",
			message: "Hello",
			want:    "Hello",
		},
		{
			name:    "valid message is forwarded untrimmed",
			message: " hi ",
			want:    " hi ",
		},
		{
			name:    "missing message",
			message: nil,
			wantErr: types.MsgInvalidMessage,
		},
		{
			name:    "number is not a string",
			message: float64(42),
			wantErr: types.MsgInvalidMessage,
		},
		{
			name:    "boolean is not a string",
			message: true,
			wantErr: types.MsgInvalidMessage,
		},
		{
			name:    "object is not a string",
			message: map[string]any{"text": "hi"},
			wantErr: types.MsgInvalidMessage,
		},
		{
			name:    "exactly 1000 characters is valid",
			message: strings.Repeat("a", 1000),
			want:    strings.Repeat("a", 1000),
		},
		{
			name:    "1001 characters is too long",
			message: strings.Repeat("a", 1001),
			wantErr: types.MsgMessageTooLong,
		},
		{
			name:    "whitespace only is empty",
			message: "   ",
			wantErr: types.MsgMessageEmpty,
		},
		{
			name:    "empty string is empty",
			message: "",
			wantErr: types.MsgMessageEmpty,
		},
		{
			name:    "length check uses raw length before trimming",
			message: strings.Repeat(" ", 1001),
			wantErr: types.MsgMessageTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateMessage(tt.message)

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
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidateMessage_MultibyteCharactersCountAsOne(t *testing.T) {
	msg := strings.Repeat("é", 1000)
	if _, err := ValidateMessage(msg); err != nil {
		t.Errorf("1000 multibyte characters should be valid: %v", err)
	}

	msg = strings.Repeat("é", 1001)
	if _, err := ValidateMessage(msg); err == nil {
		t.Error("1001 multibyte characters should be too long")
	}
}

func TestBuildPrompt_EmbedsMessageVerbatim(t *testing.T) {
	message := "  What's the weather?  "
	prompt := BuildPrompt(message)

	if !strings.Contains(prompt, message) {
		t.Errorf("Prompt should embed the untrimmed message verbatim, got %q", prompt)
	}
	if !strings.HasSuffix(prompt, message) {
		t.Errorf("Expected the message at the end of the prompt, got %q", prompt)
	}
}
