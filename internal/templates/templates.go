package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"text/template"

	"github.com/vango-dev/markup/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// Title is the document title.
	Title string

	// Description is a short document description.
	Description string
}

// Template represents a starter outline.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Dialect is the dialect the outline is written for.
	Dialect string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"page":  pageTemplate(),
	"table": tableTemplate(),
	"feed":  feedTemplate(),
}

var funcs = template.FuncMap{
	// quote renders s as a YAML double-quoted scalar.
	"quote": strconv.Quote,
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("M080").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: feed, page, table")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the template's files into dir. Existing files are never
// overwritten.
func (t *Template) Create(dir string, cfg Config) error {
	rendered := make(map[string][]byte, len(t.Files))
	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Funcs(funcs).Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if _, err := os.Stat(fullPath); err == nil {
			return errors.New("M081").
				WithDetail(fullPath + " already exists").
				WithSuggestion("Choose another directory or remove the file")
		}
		rendered[fullPath] = buf.Bytes()
	}

	for fullPath, data := range rendered {
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return errors.New("M022").Wrap(err)
		}
		if err := os.WriteFile(fullPath, data, 0644); err != nil {
			return errors.New("M022").Wrap(err)
		}
	}

	return nil
}

// pageTemplate returns an HTML page skeleton.
func pageTemplate() *Template {
	return &Template{
		Name:        "page",
		Description: "An HTML page with a heading, a paragraph and a list",
		Dialect:     "html",
		Files: map[string]string{
			"page.yaml": `# Render with: markup render page.yaml
dialect: html
children:
  - tag: html
    newlines: true
    attrs: {lang: en}
    children:
      - tag: head
        newlines: true
        children:
          - tag: meta
            attrs: {charset: utf-8}
          - {tag: title, text: {{quote .Title}}}
      - tag: body
        newlines: true
        children:
          - {tag: h1, text: {{quote .Title}}}
          - {tag: p, text: {{quote .Description}}}
          - tag: ul
            children:
              - {tag: li, text: First item}
              - {tag: li, text: Second item}
`,
		},
	}
}

// tableTemplate returns a bordered table outline.
func tableTemplate() *Template {
	return &Template{
		Name:        "table",
		Description: "A table laid out one row per line",
		Dialect:     "html",
		Files: map[string]string{
			"table.yaml": `# Render with: markup render table.yaml
dialect: html
children:
  - tag: table
    attrs: {border: 1, summary: {{quote .Description}}}
    children:
      - tag: caption
        text: {{quote .Title}}
      - tag: tr
        children:
          - {tag: th, text: Name}
          - {tag: th, text: Value}
      - tag: tr
        children:
          - {tag: td, text: alpha}
          - {tag: td, text: "1"}
`,
		},
	}
}

// feedTemplate returns an Atom feed outline.
func feedTemplate() *Template {
	return &Template{
		Name:        "feed",
		Description: "An Atom feed in the XML dialect",
		Dialect:     "xml",
		Files: map[string]string{
			"feed.yaml": `# Render with: markup render feed.yaml
dialect: xml
newline_tags: [feed, entry]
children:
  - tag: feed
    attrs: {xmlns: "http://www.w3.org/2005/Atom"}
    children:
      - {tag: title, text: {{quote .Title}}}
      - {tag: subtitle, text: {{quote .Description}}}
      - tag: entry
        children:
          - {tag: title, text: First entry}
          - tag: link
            attrs: {href: "https://example.com/first"}
`,
		},
	}
}
