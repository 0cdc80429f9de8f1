package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "markup.json"

	// DefaultDialect is the dialect used when none is configured.
	DefaultDialect = "html"

	// DefaultAddr is the default render service listen address.
	DefaultAddr = "localhost:8080"

	// DefaultReadTimeout bounds how long the service waits for a request.
	DefaultReadTimeout = "10s"

	// DefaultWriteTimeout bounds how long the service spends on a response.
	DefaultWriteTimeout = "10s"

	// DefaultMaxBodyBytes caps the size of an outline sent to the service.
	DefaultMaxBodyBytes = 1 << 20

	// DefaultMetricsNamespace prefixes every exported metric.
	DefaultMetricsNamespace = "markup"

	// DefaultTracerName names the OpenTelemetry tracer.
	DefaultTracerName = "markup"
)

// Config represents the complete markup.json configuration.
type Config struct {
	// Dialect is the default dialect: html, xhtml or xml.
	Dialect string `json:"dialect,omitempty"`

	// Newlines is the document newline default. Nil means enabled.
	Newlines *bool `json:"newlines,omitempty"`

	// NewlineTags replaces the container tags that get newlines by default.
	NewlineTags []string `json:"newlineTags,omitempty"`

	// Server contains render service configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains render service settings.
type ServerConfig struct {
	// Addr is the host:port to listen on.
	Addr string `json:"addr,omitempty"`

	// ReadTimeout is the request read timeout (e.g., "10s").
	ReadTimeout string `json:"readTimeout,omitempty"`

	// WriteTimeout is the response write timeout (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `json:"maxBodyBytes,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Disabled turns off the /metrics endpoint and collection.
	Disabled bool `json:"disabled,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Disabled turns off request spans.
	Disabled bool `json:"disabled,omitempty"`

	// TracerName is the name passed to otel.Tracer.
	TracerName string `json:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It looks for markup.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("M040").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Create markup.json or run without --config to use defaults")
		}
		return nil, errors.New("M041").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("M041").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("M041").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("M022").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Dialect == "" {
		c.Dialect = DefaultDialect
	}

	// Server
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// Observability
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := markup.ParseDialect(c.Dialect); err != nil {
		return errors.New("M042").
			WithDetail("Unknown dialect " + `"` + c.Dialect + `"`).
			WithSuggestion("Use one of: html, xhtml, xml").
			Wrap(err)
	}
	for _, field := range []struct{ name, value string }{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
	} {
		if d, err := time.ParseDuration(field.value); err != nil || d <= 0 {
			return errors.New("M042").
				WithDetail(field.name + " must be a positive duration, got " + `"` + field.value + `"`).
				WithSuggestion(`Use a Go duration such as "10s" or "500ms"`)
		}
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("M042").
			WithDetail("server.maxBodyBytes must not be negative")
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return errors.New("M042").
			WithDetail("log.level must be debug, info, warn or error, got " + `"` + c.Log.Level + `"`)
	}
	return nil
}

// DialectValue returns the configured dialect. Validate must have passed.
func (c *Config) DialectValue() markup.Dialect {
	d, err := markup.ParseDialect(c.Dialect)
	if err != nil {
		return markup.HTML
	}
	return d
}

// NewlinesEnabled returns the document newline default.
func (c *Config) NewlinesEnabled() bool {
	return c.Newlines == nil || *c.Newlines
}

// DocOptions returns the document options implied by the configuration.
func (c *Config) DocOptions() []markup.DocOption {
	opts := []markup.DocOption{markup.WithNewlines(c.NewlinesEnabled())}
	if c.NewlineTags != nil {
		opts = append(opts, markup.WithNewlineTags(c.NewlineTags...))
	}
	return opts
}

// ReadTimeout returns the parsed server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, DefaultReadTimeout)
}

// WriteTimeout returns the parsed server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, DefaultWriteTimeout)
}

// LogLevel returns the configured slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseDuration(s, fallback string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the nearest markup.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("M040").
				WithDetail("No markup.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest markup.json above the working
// directory, or returns defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}

	return Load(root)
}
