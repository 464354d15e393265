package ratelimit

import (
	"sync"
	"time"
)

// FixedWindowLimiter admits up to MaxRequests per identity per fixed window.
//
// Window rollover discards the previous window's count, so a burst straddling
// a window boundary can admit up to twice the nominal limit within a short
// span. This is documented, accepted behavior; callers wanting a strict bound
// need a sliding-window or token-bucket algorithm instead.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	cfg     Config
	clock   func() time.Time
	windows map[string]*windowState
}

// windowState tracks one identity's current window.
type windowState struct {
	count   int
	resetAt time.Time
}

// Option configures a FixedWindowLimiter.
type Option func(*FixedWindowLimiter)

// WithClock injects a clock, used by tests for deterministic time control.
func WithClock(clock func() time.Time) Option {
	return func(l *FixedWindowLimiter) {
		l.clock = clock
	}
}

// New creates a fixed-window limiter with the given configuration.
func New(cfg Config, opts ...Option) *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		cfg:     cfg,
		clock:   time.Now,
		windows: make(map[string]*windowState),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check runs the admission decision for one request from the given identity.
// The check-then-increment sequence is a single atomic step under the lock;
// a rejected request does not consume any of the window's budget.
func (l *FixedWindowLimiter) Check(identity string) CheckResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	cfg := l.cfg

	state, ok := l.windows[identity]
	if !ok {
		state = &windowState{
			count:   1,
			resetAt: now.Add(cfg.Window),
		}
		l.windows[identity] = state
		return allowed(cfg, state)
	}

	// Window rollover happens strictly before the admission check
	if now.After(state.resetAt) {
		state.count = 1
		state.resetAt = now.Add(cfg.Window)
		return allowed(cfg, state)
	}

	if state.count >= cfg.MaxRequests {
		return CheckResult{
			Allowed:    false,
			Limit:      cfg.MaxRequests,
			Remaining:  0,
			Reset:      state.resetAt,
			RetryAfter: state.resetAt.Sub(now),
		}
	}

	state.count++
	return allowed(cfg, state)
}

// allowed builds the result for an admitted request.
func allowed(cfg Config, state *windowState) CheckResult {
	remaining := cfg.MaxRequests - state.count
	if remaining < 0 {
		remaining = 0
	}
	return CheckResult{
		Allowed:   true,
		Limit:     cfg.MaxRequests,
		Remaining: remaining,
		Reset:     state.resetAt,
	}
}

// SetLimits replaces the window duration and request budget. Existing window
// state is kept; new values apply from the next check on each identity.
func (l *FixedWindowLimiter) SetLimits(cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg = cfg
}

// Len returns the number of tracked identities.
func (l *FixedWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Sweep removes entries whose window has fully expired and returns the number
// of evicted identities. Without periodic sweeping the map grows with the
// number of distinct clients seen over the process lifetime.
func (l *FixedWindowLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	evicted := 0
	for identity, state := range l.windows {
		if now.After(state.resetAt) {
			delete(l.windows, identity)
			evicted++
		}
	}
	return evicted
}
