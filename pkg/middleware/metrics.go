package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	merrors "github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
	"github.com/vango-dev/markup/pkg/outline"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "markup").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "markup",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// Render status labels.
const (
	StatusOK       = "ok"
	StatusSyntax   = "syntax_error"
	StatusInvalid  = "invalid"
	StatusTooLarge = "too_large"
	StatusInternal = "internal"
)

// Metrics holds the Prometheus collectors for the render service.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rendersTotal    *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	renderBytes     *prometheus.HistogramVec
}

// NewMetrics registers the render service metrics.
//
// Metrics collected:
//   - markup_http_requests_total: Counter of requests by route, method and code
//   - markup_http_request_duration_seconds: Histogram of request latency by route
//   - markup_renders_total: Counter of renders by dialect and status
//   - markup_render_duration_seconds: Histogram of parse+render time by dialect
//   - markup_render_bytes: Histogram of rendered document size by dialect
//
// Registering twice against the same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace, Subsystem: config.Subsystem, ConstLabels: config.ConstLabels,
			Name: name, Help: help,
		}, labels)
	}
	histogram := func(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
		return factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace, Subsystem: config.Subsystem, ConstLabels: config.ConstLabels,
			Name: name, Help: help, Buckets: buckets,
		}, labels)
	}

	return &Metrics{
		requestsTotal: counter("http_requests_total",
			"Total number of HTTP requests handled", "route", "method", "code"),
		requestDuration: histogram("http_request_duration_seconds",
			"HTTP request duration in seconds", config.Buckets, "route"),
		rendersTotal: counter("renders_total",
			"Total number of outline renders", "dialect", "status"),
		renderDuration: histogram("render_duration_seconds",
			"Outline parse and render duration in seconds", config.Buckets, "dialect"),
		// 64B to 1MB
		renderBytes: histogram("render_bytes",
			"Size of rendered documents in bytes", prometheus.ExponentialBuckets(64, 4, 8), "dialect"),
	}
}

// Handler returns middleware that records request count and latency.
// The route label is the chi route pattern, so path parameters do not
// inflate cardinality.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}

// RecordRender records one render attempt. size is ignored unless err is nil.
func (m *Metrics) RecordRender(dialect string, size int, elapsed time.Duration, err error) {
	if dialect == "" {
		dialect = "unknown"
	}
	status := RenderStatus(err)
	m.rendersTotal.WithLabelValues(dialect, status).Inc()
	m.renderDuration.WithLabelValues(dialect).Observe(elapsed.Seconds())
	if err == nil {
		m.renderBytes.WithLabelValues(dialect).Observe(float64(size))
	}
}

// RenderStatus maps a render error to a low-cardinality status label.
func RenderStatus(err error) string {
	var maxErr *http.MaxBytesError
	switch {
	case err == nil:
		return StatusOK
	case errors.As(err, &maxErr):
		return StatusTooLarge
	case errors.Is(err, outline.ErrSyntax), errors.Is(err, outline.ErrEmpty):
		return StatusSyntax
	case isOutlineError(err), isDiagnostic(err), errors.Is(err, markup.ErrInvalidOperation),
		errors.Is(err, markup.ErrInvalidAttributeValue), errors.Is(err, markup.ErrUnknownDialect):
		return StatusInvalid
	default:
		return StatusInternal
	}
}

func isOutlineError(err error) bool {
	var oerr *outline.Error
	return errors.As(err, &oerr)
}

// isDiagnostic reports whether err was already turned into a user-facing
// diagnostic, which only happens for rejected input.
func isDiagnostic(err error) bool {
	var me *merrors.MarkupError
	return errors.As(err, &me)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
