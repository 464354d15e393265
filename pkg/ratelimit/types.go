// Package ratelimit implements per-client fixed-window rate limiting with an
// injectable clock and periodic eviction of stale client entries.
package ratelimit

import "time"

// Config contains rate limiter settings.
type Config struct {
	// Window is the fixed-window duration
	Window time.Duration

	// MaxRequests is the number of requests admitted per window per identity
	MaxRequests int
}

// CheckResult contains the outcome of a rate limit check.
type CheckResult struct {
	// Allowed indicates whether the request is admitted
	Allowed bool

	// Limit is the maximum number of requests per window
	Limit int

	// Remaining is the number of requests left in the current window
	Remaining int

	// Reset is when the current window ends
	Reset time.Time

	// RetryAfter is how long to wait before retrying (rejections only)
	RetryAfter time.Duration
}
