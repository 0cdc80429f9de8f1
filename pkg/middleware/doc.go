// Package middleware provides net/http middleware for the render service.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware and render recording
//
// Both are plain func(http.Handler) http.Handler values and compose with
// chi's Use.
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware wraps every request in a server span named
// after the method and the chi route pattern:
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("markup"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// # Prometheus Metrics
//
// NewMetrics registers request and render metrics:
//   - markup_http_requests_total: Requests by route, method and code
//   - markup_http_request_duration_seconds: Request latency histogram
//   - markup_renders_total: Renders by dialect and status
//   - markup_render_duration_seconds: Parse and render time histogram
//   - markup_render_bytes: Rendered document size histogram
//
//	reg := prometheus.NewRegistry()
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Handler)
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package middleware
