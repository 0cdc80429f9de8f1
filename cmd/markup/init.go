package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/internal/templates"
)

type initOptions struct {
	template    string
	title       string
	description string
}

func initCmd() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter outline and markup.json",
		Long: `Write a starter outline into dir (default: the current directory).

markup.json is created with the template's dialect unless one already
exists. Existing outlines are never overwritten.

Templates:
  page    An HTML page with a heading, a paragraph and a list (default)
  table   A table laid out one row per line
  feed    An Atom feed in the XML dialect

Examples:
  markup init
  markup init site --title="My Site"
  markup init feeds --template=feed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "page", "Starter template ("+strings.Join(templates.List(), ", ")+")")
	cmd.Flags().StringVar(&opts.title, "title", "", "Document title (default: directory name)")
	cmd.Flags().StringVar(&opts.description, "description", "", "Document description")

	return cmd
}

func runInit(dir string, opts initOptions, stdout io.Writer) error {
	tmpl, err := templates.Get(opts.template)
	if err != nil {
		return err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return errors.New("M022").WithDetail(err.Error()).Wrap(err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return errors.New("M022").WithDetail(err.Error()).Wrap(err)
	}

	cfg := templates.Config{
		Title:       opts.title,
		Description: opts.description,
	}
	if cfg.Title == "" {
		cfg.Title = filepath.Base(absDir)
	}
	if cfg.Description == "" {
		cfg.Description = "Rendered with markup"
	}

	if err := tmpl.Create(absDir, cfg); err != nil {
		return err
	}

	if config.Exists(absDir) {
		slog.Debug("keeping existing config", "dir", absDir)
	} else {
		c := config.New()
		c.Dialect = tmpl.Dialect
		if err := c.SaveTo(filepath.Join(absDir, config.ConfigFileName)); err != nil {
			return err
		}
	}

	for _, name := range fileNames(tmpl) {
		fmt.Fprintf(stdout, "created %s\n", filepath.Join(dir, name))
	}
	fmt.Fprintf(stdout, "\nRender it with:\n\n  cd %s && markup render %s\n", dir, fileNames(tmpl)[0])
	return nil
}

func fileNames(tmpl *templates.Template) []string {
	names := make([]string, 0, len(tmpl.Files))
	for name := range tmpl.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
