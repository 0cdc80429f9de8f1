package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/pkg/service"
)

func serveCmd(global *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP render API",
		Long: `Start an HTTP server that renders outlines.

Routes:
  POST /render   render the outline in the request body
  GET  /healthz  liveness probe
  GET  /metrics  Prometheus metrics

Examples:
  markup serve
  markup serve --addr=:9000
  curl --data-binary @page.yaml 'localhost:8080/render?dialect=xhtml'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				global.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return service.New(serviceConfig(global.cfg)).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from markup.json)")

	return cmd
}

// serviceConfig maps markup.json settings onto the service.
func serviceConfig(cfg *config.Config) *service.Config {
	return &service.Config{
		Addr:             cfg.Server.Addr,
		Dialect:          cfg.DialectValue(),
		DocOptions:       cfg.DocOptions(),
		MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		ReadTimeout:      cfg.ReadTimeout(),
		WriteTimeout:     cfg.WriteTimeout(),
		DisableMetrics:   cfg.Metrics.Disabled,
		MetricsNamespace: cfg.Metrics.Namespace,
		DisableTracing:   cfg.Tracing.Disabled,
		TracerName:       cfg.Tracing.TracerName,
		Logger:           slog.Default(),
	}
}
