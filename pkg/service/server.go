package service

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
	"github.com/vango-dev/markup/pkg/middleware"
	"github.com/vango-dev/markup/pkg/outline"
)

// Server renders outlines over HTTP.
type Server struct {
	config   *Config
	router   chi.Router
	metrics  *middleware.Metrics
	registry *prometheus.Registry
	logger   *slog.Logger

	httpServer *http.Server
}

// New creates a Server. A nil config uses DefaultConfig.
func New(config *Config) *Server {
	cfg := config.withDefaults()

	s := &Server{
		config: cfg,
		logger: cfg.Logger.With("component", "service"),
	}

	if !cfg.DisableMetrics {
		s.registry = cfg.Registry
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
			s.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		s.metrics = middleware.NewMetrics(
			middleware.WithRegistry(s.registry),
			middleware.WithNamespace(cfg.MetricsNamespace),
		)
	}

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)
	if s.metrics != nil {
		r.Use(s.metrics.Handler)
	}
	if !s.config.DisableTracing {
		r.Use(middleware.OpenTelemetry(
			middleware.WithTracerName(s.config.TracerName),
			middleware.WithTracerProvider(s.config.TracerProvider),
			middleware.WithRequestFilter(func(r *http.Request) bool {
				return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
			}),
		))
	}

	r.Post("/render", s.handleRender)
	r.Get("/healthz", s.handleHealth)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the service's http.Handler for mounting in another
// router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Registry returns the metrics registry, or nil when metrics are disabled.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return errors.New("M060").WithDetail(err.Error()).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return errors.New("M060").WithDetail(err.Error()).Wrap(err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok\n")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	dialectLabel, size := "", 0
	var renderErr error
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordRender(dialectLabel, size, time.Since(start), renderErr)
		}
	}()

	opts, me := s.buildOptions(r)
	if me != nil {
		renderErr = me
		writeError(w, http.StatusBadRequest, me)
		return
	}

	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		renderErr = err
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, errors.New("M062").
				WithDetail("limit is "+strconv.FormatInt(maxErr.Limit, 10)+" bytes"))
			return
		}
		writeError(w, http.StatusBadRequest, errors.New("M021").WithDetail(err.Error()).Wrap(err))
		return
	}

	o, err := outline.Parse(src)
	if err == nil {
		var doc *markup.Node
		if doc, err = o.Build(opts...); err == nil {
			dialectLabel = doc.Dialect().Name()
			out := doc.Bytes()
			size = len(out)

			if span := middleware.SpanFromContext(r.Context()); span != nil {
				span.SetAttributes(
					attribute.String("markup.dialect", dialectLabel),
					attribute.Int("markup.bytes", len(out)),
				)
			}

			w.Header().Set("Content-Type", ContentType(doc.Dialect()))
			w.Header().Set("Content-Length", strconv.Itoa(len(out)))
			w.WriteHeader(http.StatusOK)
			w.Write(out)
			return
		}
	}

	renderErr = err
	s.logger.Debug("render rejected", "error", err, "request_id", chimw.GetReqID(r.Context()))
	writeError(w, http.StatusBadRequest, errors.FromOutlineSource(err, "request", src))
}

// buildOptions turns the request's query parameters into build options.
func (s *Server) buildOptions(r *http.Request) ([]outline.BuildOption, *errors.MarkupError) {
	opts := []outline.BuildOption{
		outline.WithDefaultDialect(s.config.Dialect),
		outline.WithDocOptions(s.config.DocOptions...),
	}

	q := r.URL.Query()
	if name := q.Get("dialect"); name != "" {
		d, err := markup.ParseDialect(name)
		if err != nil {
			return nil, errors.New("M061").
				WithDetail(`unknown dialect "` + name + `"`).
				WithSuggestion("Use one of: html, xhtml, xml").
				Wrap(err)
		}
		opts = append(opts, outline.WithDialect(d))
	}
	if v := q.Get("newlines"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("M061").
				WithDetail(`newlines must be true or false, got "` + v + `"`).
				Wrap(err)
		}
		opts = append(opts, outline.WithNewlines(enabled))
	}
	return opts, nil
}

// ContentType returns the response media type for documents in d.
func ContentType(d markup.Dialect) string {
	switch d.Name() {
	case "xhtml":
		return "application/xhtml+xml; charset=utf-8"
	case "xml":
		return "application/xml; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

func writeError(w http.ResponseWriter, status int, e *errors.MarkupError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	io.WriteString(w, e.FormatJSON())
	io.WriteString(w, "\n")
}

// logRequests logs one line per request at info level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.LogAttrs(r.Context(), level, "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", chimw.GetReqID(r.Context())),
		)
	})
}
