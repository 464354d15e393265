// Package providers defines the generative backend abstraction and the shared
// HTTP plumbing used by concrete backend adapters.
package providers

import "context"

// Provider is the interface implemented by generative backend adapters.
type Provider interface {
	// SendGeneration sends a text generation request to the backend and
	// returns the normalized response. Errors are returned as the typed
	// errors defined in this package so callers can classify them without
	// inspecting message text.
	SendGeneration(ctx context.Context, req *GenerationRequest) (*GenerationResponse, error)

	// HealthCheck verifies the backend is reachable.
	HealthCheck(ctx context.Context) error

	// GetName returns the provider's configured name.
	GetName() string

	// IsHealthy returns the current health status.
	IsHealthy() bool

	// Close releases resources held by the provider.
	Close() error
}
