package proxy

import (
	"errors"
	"net/http"

	"lumen-hq/hermes/pkg/providers"
	"lumen-hq/hermes/pkg/proxy/types"
)

// MapError maps an error from request processing or the backend adapter to
// an HTTP status code and a client-visible message.
//
// Classification runs on the typed error kinds from the providers package;
// no error message text is inspected here. Unknown errors fall through to the
// generic failure message so internal detail never leaks to the client.
func MapError(err error) (int, string) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status, reqErr.Message
	}

	var configErr *providers.ConfigError
	if errors.As(err, &configErr) {
		return http.StatusInternalServerError, types.MsgMissingCredentials
	}

	var authErr *providers.AuthError
	if errors.As(err, &authErr) {
		return http.StatusInternalServerError, types.MsgInvalidAPIKey
	}

	var quotaErr *providers.QuotaError
	if errors.As(err, &quotaErr) {
		return http.StatusServiceUnavailable, types.MsgQuotaExceeded
	}

	// Empty backend text, timeouts, parse failures, and anything else are all
	// the same generic failure from the client's point of view.
	return http.StatusInternalServerError, types.MsgGenerationFailed
}
