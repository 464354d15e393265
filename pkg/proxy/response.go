package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"

	"lumen-hq/hermes/pkg/proxy/types"
)

// WriteJSONResponse writes a JSON response with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// WriteErrorResponse writes the uniform error envelope with the given status
// code and client message.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSONResponse(w, statusCode, types.NewErrorResponse(message))
}
