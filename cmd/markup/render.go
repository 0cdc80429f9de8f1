package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
	"github.com/vango-dev/markup/pkg/outline"
)

type renderOptions struct {
	dialect  string
	newlines bool
	output   string

	// newlinesSet records whether --newlines was given.
	newlinesSet bool
}

func renderCmd(global *globalOptions) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an outline to markup",
		Long: `Render a YAML or JSON outline and print the document.

The outline is read from file, or from stdin when file is omitted or "-".
--dialect and --newlines override both markup.json and the outline.

Examples:
  markup render page.yaml
  markup render --dialect=xhtml -o page.xhtml page.yaml
  echo 'children: [{tag: br}]' | markup render --newlines=false`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.newlinesSet = cmd.Flags().Changed("newlines")
			file := ""
			if len(args) == 1 && args[0] != "-" {
				file = args[0]
			}
			return runRender(global.cfg, opts, file, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "", "Dialect: html, xhtml or xml (default from markup.json)")
	cmd.Flags().BoolVar(&opts.newlines, "newlines", true, "Put container children on separate lines")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func runRender(cfg *config.Config, opts renderOptions, file string, stdin io.Reader, stdout io.Writer) error {
	if cfg == nil {
		cfg = config.New()
	}

	buildOpts := []outline.BuildOption{
		outline.WithDefaultDialect(cfg.DialectValue()),
		outline.WithDocOptions(cfg.DocOptions()...),
	}
	if opts.dialect != "" {
		d, err := markup.ParseDialect(opts.dialect)
		if err != nil {
			return errors.New("M003").
				WithDetail(`unknown dialect "` + opts.dialect + `" given to --dialect`).
				WithSuggestion("Use one of: html, xhtml, xml").
				Wrap(err)
		}
		buildOpts = append(buildOpts, outline.WithDialect(d))
	}
	if opts.newlinesSet {
		buildOpts = append(buildOpts, outline.WithNewlines(opts.newlines))
	}

	src, err := readInput(file, stdin)
	if err != nil {
		return err
	}

	start := time.Now()
	o, err := outline.Parse(src)
	if err != nil {
		return errors.FromOutlineSource(err, file, src)
	}
	doc, err := o.Build(buildOpts...)
	if err != nil {
		return errors.FromOutlineSource(err, file, src)
	}

	out := append(doc.Bytes(), '\n')
	slog.Debug("rendered",
		"input", inputName(file),
		"dialect", doc.Dialect().Name(),
		"bytes", len(out),
		"duration", time.Since(start),
	)

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0644); err != nil {
			return errors.New("M022").WithDetail(err.Error()).Wrap(err)
		}
		slog.Info("wrote", "path", opts.output, "bytes", len(out))
		return nil
	}
	if _, err := stdout.Write(out); err != nil {
		return errors.New("M022").WithDetail(err.Error()).Wrap(err)
	}
	return nil
}

func readInput(file string, stdin io.Reader) ([]byte, error) {
	if file == "" {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.New("M021").WithDetail(err.Error()).Wrap(err)
		}
		return src, nil
	}

	src, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("M020").
				WithDetail(file + " does not exist").
				Wrap(err)
		}
		return nil, errors.New("M021").WithDetail(err.Error()).Wrap(err)
	}
	return src, nil
}

func inputName(file string) string {
	if file == "" {
		return "<stdin>"
	}
	return file
}
