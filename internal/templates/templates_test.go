package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/markup/pkg/outline"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"page", false},
		{"table", false},
		{"feed", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
			}
		})
	}
}

func TestList(t *testing.T) {
	if got := strings.Join(List(), ","); got != "feed,page,table" {
		t.Errorf("List() = %s, want feed,page,table", got)
	}
}

func TestTemplate_Create(t *testing.T) {
	cfg := Config{
		Title:       `Tom & "Jerry"`,
		Description: "cats <and> mice",
	}

	tests := []struct {
		name     string
		file     string
		contains []string
	}{
		{
			name: "page",
			file: "page.yaml",
			contains: []string{
				"<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n",
				"<title>Tom &amp; \"Jerry\"</title>",
				"<p>cats &lt;and&gt; mice</p>",
				"<ul>\n<li>First item</li>\n<li>Second item</li>\n</ul>",
			},
		},
		{
			name: "table",
			file: "table.yaml",
			contains: []string{
				`<table border="1" summary="cats &lt;and&gt; mice">`,
				"\n<tr><th>Name</th><th>Value</th></tr>\n",
			},
		},
		{
			name: "feed",
			file: "feed.yaml",
			contains: []string{
				`<feed xmlns="http://www.w3.org/2005/Atom">`,
				"<entry>\n<title>First entry</title>\n<link href=\"https://example.com/first\" />\n</entry>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tmpl, err := Get(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if err := tmpl.Create(dir, cfg); err != nil {
				t.Fatalf("Create error: %v", err)
			}

			data, err := os.ReadFile(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatalf("%s not created: %v", tt.file, err)
			}
			o, err := outline.Parse(data)
			if err != nil {
				t.Fatalf("generated outline does not parse: %v\n%s", err, data)
			}
			if o.Dialect != tmpl.Dialect {
				t.Errorf("outline dialect = %q, want %q", o.Dialect, tmpl.Dialect)
			}
			doc, err := o.Build()
			if err != nil {
				t.Fatalf("generated outline does not build: %v", err)
			}
			out := doc.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestTemplate_CreateRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "page.yaml")
	if err := os.WriteFile(existing, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}

	tmpl, _ := Get("page")
	if err := tmpl.Create(dir, Config{Title: "x"}); err == nil {
		t.Fatal("expected an error for an existing file")
	}

	data, _ := os.ReadFile(existing)
	if string(data) != "keep me" {
		t.Errorf("existing file was modified: %q", data)
	}
}
