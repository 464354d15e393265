// Package metrics provides the Prometheus metrics collector for the relay.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lumen-hq/hermes/pkg/config"
)

// Backend request outcome labels.
const (
	OutcomeSuccess       = "success"
	OutcomeAuthError     = "auth_error"
	OutcomeQuotaError    = "quota_error"
	OutcomeEmptyResponse = "empty_response"
	OutcomeConfigError   = "config_error"
	OutcomeError         = "error"
)

// Collector manages metric registration and recording for all components.
// It uses its own registry so test instances never collide on the default
// global registry.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// HTTP surface
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	// Rate limiter
	rateLimitRejections prometheus.Counter
	rateLimitTracked    prometheus.Gauge

	// Backend
	backendRequests *prometheus.CounterVec
	backendDuration prometheus.Histogram
}

// NewCollector creates a metrics collector with the specified configuration.
// If registry is nil, a new registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by path, method, and status code.",
			},
			[]string{"path", "method", "status"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration by path and method.",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"path", "method"},
		),

		rateLimitRejections: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "ratelimit_rejections_total",
				Help:      "Total requests rejected by the rate limiter.",
			},
		),

		rateLimitTracked: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "ratelimit_tracked_clients",
				Help:      "Number of client identities currently tracked by the rate limiter.",
			},
		),

		backendRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "backend_requests_total",
				Help:      "Total backend generation requests by outcome.",
			},
			[]string{"outcome"},
		),

		backendDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "backend_request_duration_seconds",
				Help:      "Backend generation call duration.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
		),
	}

	registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.rateLimitRejections,
		c.rateLimitTracked,
		c.backendRequests,
		c.backendDuration,
	)

	return c
}

// RecordHTTPRequest records a completed HTTP request.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordRateLimitRejection records a rate-limited request.
func (c *Collector) RecordRateLimitRejection() {
	if !c.config.Enabled {
		return
	}
	c.rateLimitRejections.Inc()
}

// SetTrackedClients sets the number of identities tracked by the rate limiter.
func (c *Collector) SetTrackedClients(n int) {
	if !c.config.Enabled {
		return
	}
	c.rateLimitTracked.Set(float64(n))
}

// RecordBackendRequest records a backend generation call with its outcome
// (success, auth_error, quota_error, empty_response, error).
func (c *Collector) RecordBackendRequest(outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.backendRequests.WithLabelValues(outcome).Inc()
	c.backendDuration.Observe(duration.Seconds())
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
