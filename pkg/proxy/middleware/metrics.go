package middleware

import (
	"net/http"
	"strings"
	"time"

	"lumen-hq/hermes/pkg/telemetry/metrics"
)

// MetricsMiddleware records request counts and latencies per path and method.
// Paths are normalized to a small fixed set to keep label cardinality bounded.
func MetricsMiddleware(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			collector.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), rw.statusCode, time.Since(start))
		})
	}
}

// normalizePath maps request paths onto a bounded label set.
func normalizePath(path string) string {
	switch {
	case path == "/api/chat":
		return "/api/chat"
	case path == "/api/health":
		return "/api/health"
	case path == "/metrics":
		return "/metrics"
	case strings.HasPrefix(path, "/api/"):
		return "api_other"
	default:
		return "static"
	}
}
