package outline

import (
	"fmt"
	"unicode"

	"github.com/vango-dev/markup/pkg/markup"
)

// BuildOption overrides settings from the outline itself.
type BuildOption func(*buildConfig)

type buildConfig struct {
	dialect        markup.Dialect
	defaultDialect markup.Dialect
	newlines       *bool
	docOpts        []markup.DocOption
}

// WithDialect renders with d regardless of the outline's dialect field.
func WithDialect(d markup.Dialect) BuildOption {
	return func(c *buildConfig) {
		c.dialect = d
	}
}

// WithNewlines overrides the outline's document newline default.
func WithNewlines(enabled bool) BuildOption {
	return func(c *buildConfig) {
		c.newlines = &enabled
	}
}

// WithDefaultDialect is used when the outline names no dialect.
func WithDefaultDialect(d markup.Dialect) BuildOption {
	return func(c *buildConfig) {
		c.defaultDialect = d
	}
}

// WithDocOptions applies opts to the document before the outline's own
// newline settings, so the outline can still override them.
func WithDocOptions(opts ...markup.DocOption) BuildOption {
	return func(c *buildConfig) {
		c.docOpts = append(c.docOpts, opts...)
	}
}

// Build creates the markup document described by o.
func (o *Outline) Build(opts ...BuildOption) (*markup.Node, error) {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	d := cfg.dialect
	switch {
	case d != nil:
	case o.Dialect != "":
		var err error
		if d, err = markup.ParseDialect(o.Dialect); err != nil {
			return nil, &Error{Msg: fmt.Sprintf("unknown dialect %q", o.Dialect), Err: err}
		}
	case cfg.defaultDialect != nil:
		d = cfg.defaultDialect
	default:
		d = markup.HTML
	}

	docOpts := append([]markup.DocOption(nil), cfg.docOpts...)
	if o.Newlines != nil {
		docOpts = append(docOpts, markup.WithNewlines(*o.Newlines))
	}
	if o.NewlineTags != nil {
		docOpts = append(docOpts, markup.WithNewlineTags(o.NewlineTags...))
	}
	if cfg.newlines != nil {
		docOpts = append(docOpts, markup.WithNewlines(*cfg.newlines))
	}

	doc := markup.New(d, docOpts...)
	for i := range o.Children {
		if err := build(doc, &o.Children[i]); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func build(parent *markup.Node, e *Element) error {
	if e.IsText() {
		if e.Raw {
			parent.RawText(e.Text)
		} else {
			parent.Text(e.Text)
		}
		return nil
	}

	if !validName(e.Tag) {
		return e.errorf(ErrInvalidName, "invalid tag name %q", e.Tag)
	}

	content := make([]any, 0, len(e.Attrs)+2)
	for _, a := range e.Attrs {
		if !validName(a.Name) {
			return e.errorf(ErrInvalidName, "invalid attribute name %q on <%s>", a.Name, e.Tag)
		}
		content = append(content, markup.WithAttr(a.Name, a.Value))
	}
	if e.Newlines != nil {
		content = append(content, markup.WithNewlines(*e.Newlines))
	}
	if e.Text != "" {
		content = append(content, markup.Text{Value: e.Text, Raw: e.Raw})
	}

	n, err := parent.Elem(e.Tag, content...)
	if err != nil {
		return &Error{Line: e.Line, Column: e.Column, Msg: err.Error(), Err: err}
	}
	for i := range e.Children {
		if err := build(n, &e.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Element) errorf(err error, format string, args ...any) *Error {
	return &Error{Line: e.Line, Column: e.Column, Msg: fmt.Sprintf(format, args...), Err: err}
}

// validName accepts XML-style names: a letter, '_' or ':' followed by
// letters, digits, '-', '_', '.' or ':'.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_', r == ':':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
