package markup

import "strings"

// escapeText escapes character data. Ampersands are handled in the same
// pass as the angle brackets, so entities are never escaped twice. Input is
// scanned byte by byte and non-ASCII bytes pass through untouched.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 8)

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteByte(c)
		}
	}

	return buf.String()
}

// escapeAttr escapes a value for use inside a double-quoted attribute.
func escapeAttr(s string) string {
	if !strings.ContainsAny(s, `&<>"`) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 8)

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteByte(c)
		}
	}

	return buf.String()
}
