// Package templates provides starter outlines for markup init.
//
// # Available Templates
//
//   - page: An HTML page with a heading, a paragraph and a list
//   - table: A table laid out one row per line
//   - feed: An Atom feed in the XML dialect
//
// # Usage
//
//	tmpl, err := templates.Get("page")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tmpl.Create(dir, templates.Config{Title: "Home"}); err != nil {
//	    log.Fatal(err)
//	}
//
// # Template Variables
//
//	{{.Title}}        - Document title
//	{{.Description}}  - Short description
//
// Values are inserted with the quote function so they stay valid YAML
// whatever they contain.
package templates
