// Package types defines the wire types for the relay's HTTP surface.
package types

// ChatRequest is the request body for POST /api/chat.
//
// Message is decoded as any rather than string so that a request carrying a
// non-string value (number, object, null) reaches the validator and gets the
// documented validation message instead of a JSON decode failure.
type ChatRequest struct {
	Message any `json:"message"`
}

// ChatResponse is the success body for POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// HealthResponse is the body for GET /api/health.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// ErrorResponse is the uniform error body: every failure path, including the
// catch-all handlers, produces well-formed JSON with a single error field.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error response with the given client message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}
