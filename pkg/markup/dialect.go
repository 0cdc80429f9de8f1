package markup

import "strings"

// TagForm is the shape a childless tag renders in.
type TagForm uint8

const (
	FormPaired      TagForm = iota // <p></p>
	FormVoid                       // <br>
	FormSelfClosing                // <br />
)

// String returns the string representation of the TagForm.
func (f TagForm) String() string {
	switch f {
	case FormPaired:
		return "Paired"
	case FormVoid:
		return "Void"
	case FormSelfClosing:
		return "SelfClosing"
	default:
		return "Unknown"
	}
}

// Dialect holds the serialization rules of a markup language.
//
// A Dialect is chosen when a document is created and shared by every node
// in it. Implementations must be safe to call concurrently.
type Dialect interface {
	// Name identifies the dialect, e.g. "html".
	Name() string

	// IsVoidTag reports whether tag never has content. Dialects without a
	// notion of void tags return ErrUnknownDialectFeature, which callers
	// treat as "not void".
	IsVoidTag(tag string) (bool, error)

	// EmptyForm returns the form of tag when it has no children.
	EmptyForm(tag string, void bool) TagForm

	// EscapeText escapes character data.
	EscapeText(s string) string

	// EscapeAttr escapes a double-quoted attribute value.
	EscapeAttr(s string) string
}

// Built-in dialects.
var (
	HTML  Dialect = htmlDialect{}
	XHTML Dialect = xhtmlDialect{}
	XML   Dialect = xmlDialect{}
)

// ParseDialect returns the built-in dialect with the given name. Matching
// ignores case.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html":
		return HTML, nil
	case "xhtml":
		return XHTML, nil
	case "xml":
		return XML, nil
	default:
		return nil, &Error{Op: "parse dialect", Tag: name, Err: ErrUnknownDialect}
	}
}

// voidElements cannot have content and have no closing tag in HTML.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,

	// Obsolete, still recognized by browsers.
	"basefont": true,
	"frame":    true,
	"isindex":  true,
	"keygen":   true,
}

// isVoidElement returns true if the tag is an HTML void element. HTML tag
// names are case-insensitive.
func isVoidElement(tag string) bool {
	if voidElements[tag] {
		return true
	}
	return voidElements[strings.ToLower(tag)]
}

type htmlDialect struct{}

func (htmlDialect) Name() string { return "html" }

func (htmlDialect) IsVoidTag(tag string) (bool, error) {
	return isVoidElement(tag), nil
}

func (htmlDialect) EmptyForm(_ string, void bool) TagForm {
	if void {
		return FormVoid
	}
	return FormPaired
}

func (htmlDialect) EscapeText(s string) string { return escapeText(s) }
func (htmlDialect) EscapeAttr(s string) string { return escapeAttr(s) }

// xhtmlDialect never leaves a tag open: void tags use the empty-element
// form, everything else gets a matching close tag.
type xhtmlDialect struct{}

func (xhtmlDialect) Name() string { return "xhtml" }

func (xhtmlDialect) IsVoidTag(tag string) (bool, error) {
	return isVoidElement(tag), nil
}

func (xhtmlDialect) EmptyForm(_ string, void bool) TagForm {
	if void {
		return FormSelfClosing
	}
	return FormPaired
}

func (xhtmlDialect) EscapeText(s string) string { return escapeText(s) }
func (xhtmlDialect) EscapeAttr(s string) string { return escapeAttr(s) }

type xmlDialect struct{}

func (xmlDialect) Name() string { return "xml" }

func (xmlDialect) IsVoidTag(string) (bool, error) {
	return false, ErrUnknownDialectFeature
}

func (xmlDialect) EmptyForm(string, bool) TagForm {
	return FormSelfClosing
}

func (xmlDialect) EscapeText(s string) string { return escapeText(s) }
func (xmlDialect) EscapeAttr(s string) string { return escapeAttr(s) }

// emptyForm asks d how to render tag without children. Missing void rules
// and unknown forms degrade to a paired tag.
func emptyForm(d Dialect, tag string) TagForm {
	void, err := d.IsVoidTag(tag)
	if err != nil {
		void = false
	}
	switch form := d.EmptyForm(tag, void); form {
	case FormPaired, FormVoid, FormSelfClosing:
		return form
	default:
		return FormPaired
	}
}

// defaultNewlineTags are containers whose children go on separate lines
// unless the document turns newlines off.
var defaultNewlineTags = []string{"table", "ol", "ul", "dl"}
