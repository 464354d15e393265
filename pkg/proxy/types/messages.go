package types

// Client-visible messages. Validation and rate-limit messages identify the
// cause; everything else is deliberately generic so internal detail never
// reaches the client.
const (
	// MsgInvalidMessage is returned when the message field is missing or not a string.
	MsgInvalidMessage = "Message is required and must be a string"

	// MsgMessageTooLong is returned when the raw message exceeds the length cap.
	MsgMessageTooLong = "Message too long. Please keep it under 1000 characters."

	// MsgMessageEmpty is returned when the message is empty after trimming whitespace.
	MsgMessageEmpty = "Message cannot be empty"

	// MsgRateLimited is returned when the client exceeds its request budget.
	MsgRateLimited = "Too many requests. Please try again later."

	// MsgMissingCredentials is returned when the backend credential is not configured.
	MsgMissingCredentials = "Server configuration error. Please contact administrator."

	// MsgInvalidAPIKey is returned when the backend rejects the configured key.
	MsgInvalidAPIKey = "Invalid API key configuration"

	// MsgQuotaExceeded is returned when the backend reports quota exhaustion.
	MsgQuotaExceeded = "Service temporarily unavailable due to quota limits"

	// MsgGenerationFailed is the generic failure message for backend errors.
	MsgGenerationFailed = "Sorry, I encountered an error processing your request. Please try again."

	// MsgNotFound is returned for unmatched routes.
	MsgNotFound = "Endpoint not found"

	// MsgInternalError is returned by the catch-all recovery handler.
	MsgInternalError = "Internal server error"

	// MsgRequestTimeout is returned when request processing exceeds the server timeout.
	MsgRequestTimeout = "Request timed out. Please try again."
)
