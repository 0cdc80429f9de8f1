package markup

import (
	"errors"
	"testing"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		input string
		want  Dialect
	}{
		{"html", HTML},
		{"HTML", HTML},
		{" xhtml ", XHTML},
		{"Xml", XML},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDialect(tt.input)
			if err != nil {
				t.Fatalf("ParseDialect(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDialect(%q) = %v, want %v", tt.input, got.Name(), tt.want.Name())
			}
		})
	}

	if _, err := ParseDialect("sgml"); !errors.Is(err, ErrUnknownDialect) {
		t.Errorf("ParseDialect(sgml) err = %v, want ErrUnknownDialect", err)
	}
}

func TestIsVoidTag(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"br", true},
		{"img", true},
		{"input", true},
		{"Hr", true},
		{"isindex", true},
		{"p", false},
		{"div", false},
		{"colgroup", false},
	}

	for _, d := range []Dialect{HTML, XHTML} {
		for _, tt := range tests {
			got, err := d.IsVoidTag(tt.tag)
			if err != nil {
				t.Fatalf("%s.IsVoidTag(%q): %v", d.Name(), tt.tag, err)
			}
			if got != tt.want {
				t.Errorf("%s.IsVoidTag(%q) = %v, want %v", d.Name(), tt.tag, got, tt.want)
			}
		}
	}
}

func TestXMLHasNoVoidTags(t *testing.T) {
	void, err := XML.IsVoidTag("br")
	if void {
		t.Error("XML should not report void tags")
	}
	if !errors.Is(err, ErrUnknownDialectFeature) {
		t.Errorf("err = %v, want ErrUnknownDialectFeature", err)
	}
}

func TestEmptyForm(t *testing.T) {
	tests := []struct {
		dialect Dialect
		tag     string
		want    TagForm
	}{
		{HTML, "br", FormVoid},
		{HTML, "p", FormPaired},
		{XHTML, "br", FormSelfClosing},
		{XHTML, "p", FormPaired},
		{XML, "br", FormSelfClosing},
		{XML, "p", FormSelfClosing},
	}

	for _, tt := range tests {
		if got := emptyForm(tt.dialect, tt.tag); got != tt.want {
			t.Errorf("emptyForm(%s, %q) = %v, want %v", tt.dialect.Name(), tt.tag, got, tt.want)
		}
	}
}

func TestTagFormString(t *testing.T) {
	tests := []struct {
		form TagForm
		want string
	}{
		{FormPaired, "Paired"},
		{FormVoid, "Void"},
		{FormSelfClosing, "SelfClosing"},
		{TagForm(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.form.String(); got != tt.want {
			t.Errorf("TagForm(%d).String() = %q, want %q", tt.form, got, tt.want)
		}
	}
}
