package proxy

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"lumen-hq/hermes/pkg/proxy/types"
)

// MaxMessageLength is the maximum accepted message length in characters,
// counted on the raw (untrimmed) string.
const MaxMessageLength = 1000

// ValidateMessage checks a candidate message value against the shape and
// length rules, short-circuiting on the first failure:
//
//  1. present and of string type
//  2. raw length at most MaxMessageLength characters
//  3. non-empty after trimming leading/trailing whitespace
//
// On success the original untrimmed string is returned unchanged; trimming is
// only used for the emptiness check, never applied to the forwarded value.
func ValidateMessage(message any) (string, error) {
	s, ok := message.(string)
	if !ok {
		return "", &RequestError{
			Message: types.MsgInvalidMessage,
			Status:  http.StatusBadRequest,
		}
	}

	if utf8.RuneCountInString(s) > MaxMessageLength {
		return "", &RequestError{
			Message: types.MsgMessageTooLong,
			Status:  http.StatusBadRequest,
		}
	}

	if strings.TrimSpace(s) == "" {
		return "", &RequestError{
			Message: types.MsgMessageEmpty,
			Status:  http.StatusBadRequest,
		}
	}

	return s, nil
}
