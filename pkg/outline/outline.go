package outline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Outline is a decoded document description.
type Outline struct {
	// Dialect is "html", "xhtml" or "xml". Empty means html.
	Dialect string `yaml:"dialect"`

	// Newlines sets the document newline default. Nil means enabled.
	Newlines *bool `yaml:"newlines"`

	// NewlineTags replaces the default newline container tags when set.
	NewlineTags []string `yaml:"newline_tags"`

	// Children are the top-level items of the document.
	Children []Element `yaml:"children"`
}

// Element is an element or, when Tag is empty, a text leaf.
type Element struct {
	Tag      string
	Attrs    []Attribute
	Newlines *bool
	Text     string
	Raw      bool
	Children []Element

	// Line and Column locate the element in the source, 1-based.
	Line   int
	Column int
}

// Attribute is one name/value pair in source order.
type Attribute struct {
	Name  string
	Value string
}

// IsText reports whether e is a text leaf rather than an element.
func (e *Element) IsText() bool {
	return e.Tag == ""
}

// Error is a problem found while decoding or building an outline.
type Error struct {
	Line   int
	Column int
	Msg    string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("outline:%d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return "outline: " + e.Msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

func errorAt(n *yaml.Node, format string, args ...any) *Error {
	return &Error{Line: n.Line, Column: n.Column, Msg: fmt.Sprintf(format, args...)}
}

var (
	// ErrEmpty is returned when the input holds no document.
	ErrEmpty = errors.New("outline: empty document")

	// ErrSyntax marks input that is not valid YAML or JSON.
	ErrSyntax = errors.New("outline: syntax error")

	// ErrInvalidName marks a tag or attribute name that cannot be rendered
	// safely.
	ErrInvalidName = errors.New("outline: invalid name")
)

// Parse decodes an outline from YAML or JSON.
func Parse(data []byte) (*Outline, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one outline from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Outline, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var o Outline
	if err := dec.Decode(&o); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		var oerr *Error
		if errors.As(err, &oerr) {
			return nil, oerr
		}
		var terr *yaml.TypeError
		if errors.As(err, &terr) {
			return nil, typeError(terr)
		}
		return nil, syntaxError(err)
	}
	return &o, nil
}

var (
	yamlLine = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)
	typeLine = regexp.MustCompile(`^line (\d+): (.*)$`)
)

// typeError reports the first field the decoder could not place.
func typeError(terr *yaml.TypeError) *Error {
	if len(terr.Errors) > 0 {
		if m := typeLine.FindStringSubmatch(terr.Errors[0]); m != nil {
			line, _ := strconv.Atoi(m[1])
			return &Error{Line: line, Column: 1, Msg: m[2], Err: terr}
		}
	}
	return &Error{Msg: terr.Error(), Err: terr}
}

// syntaxError lifts the line number out of a yaml parser message.
func syntaxError(err error) *Error {
	msg := err.Error()
	if m := yamlLine.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &Error{Line: line, Column: 1, Msg: m[2], Err: errors.Join(ErrSyntax, err)}
	}
	return &Error{Msg: strings.TrimPrefix(msg, "yaml: "), Err: errors.Join(ErrSyntax, err)}
}

// UnmarshalYAML decodes an element from a mapping, or a text leaf from a
// bare scalar.
func (e *Element) UnmarshalYAML(value *yaml.Node) error {
	e.Line, e.Column = value.Line, value.Column

	switch value.Kind {
	case yaml.ScalarNode:
		e.Text = value.Value
		return nil
	case yaml.MappingNode:
	default:
		return errorAt(value, "element must be a mapping or a string")
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "tag":
			if err := decodeScalar(val, &e.Tag); err != nil {
				return err
			}
		case "text":
			if err := decodeScalar(val, &e.Text); err != nil {
				return err
			}
		case "raw":
			if err := decodeBool(val, &e.Raw); err != nil {
				return err
			}
		case "newlines":
			var b bool
			if err := decodeBool(val, &b); err != nil {
				return err
			}
			e.Newlines = &b
		case "attrs":
			attrs, err := decodeAttrs(val)
			if err != nil {
				return err
			}
			e.Attrs = attrs
		case "children":
			if val.Kind != yaml.SequenceNode {
				return errorAt(val, "children must be a list")
			}
			e.Children = make([]Element, len(val.Content))
			for j, child := range val.Content {
				if err := e.Children[j].UnmarshalYAML(child); err != nil {
					return err
				}
			}
		default:
			return errorAt(key, "unknown field %q", key.Value)
		}
	}

	if e.Tag == "" && (len(e.Attrs) > 0 || len(e.Children) > 0 || e.Newlines != nil) {
		return errorAt(value, "element with attributes or children needs a tag")
	}
	return nil
}

// decodeAttrs reads a mapping while keeping its key order.
func decodeAttrs(n *yaml.Node) ([]Attribute, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "attrs must be a mapping")
	}
	attrs := make([]Attribute, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, errorAt(key, "attribute name must be a string")
		}
		var v string
		if err := decodeScalar(val, &v); err != nil {
			return nil, err
		}
		attrs = append(attrs, Attribute{Name: key.Value, Value: v})
	}
	return attrs, nil
}

func decodeScalar(n *yaml.Node, out *string) error {
	if n.Kind != yaml.ScalarNode {
		return errorAt(n, "expected a scalar value")
	}
	if n.Tag == "!!null" {
		*out = ""
		return nil
	}
	*out = n.Value
	return nil
}

func decodeBool(n *yaml.Node, out *bool) error {
	if n.Kind != yaml.ScalarNode {
		return errorAt(n, "expected true or false")
	}
	b, err := strconv.ParseBool(n.Value)
	if err != nil {
		return errorAt(n, "expected true or false, got %q", n.Value)
	}
	*out = b
	return nil
}
