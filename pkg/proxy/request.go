// Package proxy contains the request parsing, validation, prompt assembly,
// and error mapping glue between the HTTP surface and the backend adapter.
package proxy

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"lumen-hq/hermes/pkg/proxy/types"
)

const (
	// MaxRequestBodySize is the maximum allowed request body size (1MB).
	// The message itself is capped at 1000 characters by the validator; the
	// body cap only guards against memory exhaustion from oversized payloads.
	MaxRequestBodySize = 1 * 1024 * 1024
)

// ParseChatRequest parses an HTTP request body into a ChatRequest.
//
// A body that is not valid JSON is treated the same as a missing message
// field: the client gets the validator's "required" message. The message
// value itself is left untyped here; the validator owns the type check.
func ParseChatRequest(r *http.Request) (*types.ChatRequest, error) {
	limitedReader := io.LimitReader(r.Body, MaxRequestBodySize)

	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	if len(body) >= MaxRequestBodySize {
		return nil, &RequestError{
			Message: types.MsgMessageTooLong,
			Status:  http.StatusBadRequest,
		}
	}

	var req types.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &RequestError{
			Message: types.MsgInvalidMessage,
			Status:  http.StatusBadRequest,
		}
	}

	return &req, nil
}

// ClientIdentity derives the rate-limiting identity for a request: the first
// address in X-Forwarded-For when present (the relay is commonly deployed
// behind a load balancer), otherwise the remote address without the port.
func ClientIdentity(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RequestError represents a request parsing or validation error.
type RequestError struct {
	// Message is the client-visible error message
	Message string

	// Status is the HTTP status code to return
	Status int
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}
