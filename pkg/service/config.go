package service

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/markup/pkg/markup"
)

// Config configures the render service.
type Config struct {
	// Addr is the address to listen on.
	// Default: "localhost:8080"
	Addr string

	// Dialect is used when neither the outline nor the query names one.
	// Default: markup.HTML
	Dialect markup.Dialect

	// DocOptions apply to every rendered document before the outline's
	// own settings.
	DocOptions []markup.DocOption

	// MaxBodyBytes caps the request body.
	// Default: 1 MiB
	MaxBodyBytes int64

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10s
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration for writing a response.
	// Default: 10s
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration

	// DisableMetrics turns off collection and the /metrics route.
	DisableMetrics bool

	// MetricsNamespace prefixes metric names.
	// Default: "markup"
	MetricsNamespace string

	// Registry collects the service metrics. A fresh registry with Go and
	// process collectors is created when nil.
	Registry *prometheus.Registry

	// DisableTracing turns off request spans.
	DisableTracing bool

	// TracerName names the OpenTelemetry tracer.
	// Default: "markup"
	TracerName string

	// TracerProvider supplies spans. Default: the global provider.
	TracerProvider trace.TracerProvider

	// Logger receives request logs. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:             "localhost:8080",
		Dialect:          markup.HTML,
		MaxBodyBytes:     1 << 20,
		ReadTimeout:      10 * time.Second,
		WriteTimeout:     10 * time.Second,
		ShutdownTimeout:  10 * time.Second,
		MetricsNamespace: "markup",
		TracerName:       "markup",
	}
}

// withDefaults returns a copy of c with unset fields filled in.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	cfg := *c
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.Dialect == nil {
		cfg.Dialect = defaults.Dialect
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if cfg.MetricsNamespace == "" {
		cfg.MetricsNamespace = defaults.MetricsNamespace
	}
	if cfg.TracerName == "" {
		cfg.TracerName = defaults.TracerName
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &cfg
}
