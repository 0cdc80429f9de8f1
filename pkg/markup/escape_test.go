package markup

import (
	"html"
	"strings"
	"testing"
)

func TestEscapeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hello, World!",
			expected: "Hello, World!",
		},
		{
			name:     "ampersand",
			input:    "Tom & Jerry",
			expected: "Tom &amp; Jerry",
		},
		{
			name:     "angle brackets",
			input:    "<>&",
			expected: "&lt;&gt;&amp;",
		},
		{
			name:     "quotes left alone",
			input:    `say "hello" it's`,
			expected: `say "hello" it's`,
		},
		{
			name:     "existing entity is escaped once",
			input:    "&amp;",
			expected: "&amp;amp;",
		},
		{
			name:     "unicode preserved",
			input:    "euro € 世界 🌍",
			expected: "euro € 世界 🌍",
		},
		{
			name:     "invalid utf-8 passes through",
			input:    "a\xffb<",
			expected: "a\xffb&lt;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := escapeText(tt.input)
			if result != tt.expected {
				t.Errorf("escapeText(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "all specials",
			input:    `<>&"`,
			expected: "&lt;&gt;&amp;&quot;",
		},
		{
			name:     "url query",
			input:    "/search?q=a&page=2",
			expected: "/search?q=a&amp;page=2",
		},
		{
			name:     "single quote left alone",
			input:    "it's",
			expected: "it's",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := escapeAttr(tt.input)
			if result != tt.expected {
				t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEscapeTextRoundTrip(t *testing.T) {
	inputs := []string{
		"<script>alert('xss')</script>",
		"a < b && c > d",
		"&lt; is already an entity",
		"<<<&&&>>>",
		"plain",
	}

	for _, in := range inputs {
		escaped := escapeText(in)
		stripped := strings.NewReplacer("&amp;", "", "&lt;", "", "&gt;", "").Replace(escaped)
		if strings.ContainsAny(stripped, "<>&") {
			t.Errorf("escapeText(%q) = %q leaves raw special characters", in, escaped)
		}
		if got := html.UnescapeString(escaped); got != in {
			t.Errorf("unescape(escapeText(%q)) = %q", in, got)
		}
	}
}

func TestEscapeAttrRoundTrip(t *testing.T) {
	in := `x="1" & y<2>`
	escaped := escapeAttr(in)
	if strings.Contains(escaped, `"`) {
		t.Errorf("escapeAttr(%q) = %q contains a raw quote", in, escaped)
	}
	if got := html.UnescapeString(escaped); got != in {
		t.Errorf("unescape(escapeAttr(%q)) = %q", in, got)
	}
}
