package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	jsonErrors bool

	cfg *config.Config
}

func main() {
	opts := &globalOptions{}
	rootCmd := newRootCmd(opts)

	if err := rootCmd.Execute(); err != nil {
		if opts.jsonErrors {
			fmt.Fprintln(os.Stderr, diagnostic(err).FormatJSON())
		} else {
			errors.PrintError(err)
		}
		os.Exit(1)
	}
}

// diagnostic returns err as a MarkupError, keeping its code when it has one.
func diagnostic(err error) *errors.MarkupError {
	var me *errors.MarkupError
	if stderrors.As(err, &me) {
		return me
	}
	return &errors.MarkupError{Message: err.Error(), Wrapped: err}
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "markup",
		Short: "Render HTML, XHTML and XML documents from outlines",
		Long: `markup renders documents described by YAML or JSON outlines.

An outline lists elements with their attributes, text and children.
markup escapes text and attribute values, applies the void and empty
element rules of the chosen dialect, and lays container elements out
one child per line.

Settings are read from the nearest markup.json; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: nearest markup.json)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonErrors, "json-errors", false, "Print diagnostics as JSON")

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// setup loads configuration and installs the default logger.
func (o *globalOptions) setup(stderr io.Writer) error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.LoadFile(o.configPath)
	} else {
		o.cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		o.cfg.Log.Level = o.logLevel
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	slog.SetDefault(newLogger(stderr, o.cfg.LogLevel()))
	return nil
}

// newLogger returns a tint logger, colored only when w is a terminal.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	if noColor {
		errors.DisableColors()
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}
