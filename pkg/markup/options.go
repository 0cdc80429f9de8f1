package markup

import (
	"encoding"
	"fmt"
	"strconv"
)

// Option configures an element created by Elem, NewElement or Configure.
type Option interface {
	applyElem(*plan) error
}

// NewlinesOption turns newline joining on or off. It works both as an
// Option for a single element and as a DocOption for a whole document.
type NewlinesOption bool

// WithNewlines sets whether children are put on separate lines. Given to
// New it sets the document default; given to Elem it overrides the default
// for that element only.
func WithNewlines(enabled bool) NewlinesOption {
	return NewlinesOption(enabled)
}

func (o NewlinesOption) applyDoc(d *document) {
	d.newlines = bool(o)
}

func (o NewlinesOption) applyElem(p *plan) error {
	enabled := bool(o)
	p.newlines = &enabled
	return nil
}

type attrOption struct {
	key   string
	value any
}

// WithAttr sets an attribute on the element. The value must have a textual
// form; see SetAttr.
func WithAttr(key string, value any) Option {
	return attrOption{key: key, value: value}
}

func (o attrOption) applyElem(p *plan) error {
	s, err := attrToString(o.value)
	if err != nil {
		return &Error{Op: "set attribute", Tag: o.key, Err: err}
	}
	p.attrs = append(p.attrs, Attr{Key: o.key, Value: s})
	return nil
}

// plan is validated content waiting to be applied to a node.
type plan struct {
	items    []item
	attrs    []Attr
	newlines *bool
}

// prepare validates content for a node that is n itself (Configure) or a
// new child of n (Elem). Nothing is mutated.
func (n *Node) prepare(tag string, content []any) (*plan, error) {
	p := &plan{}
	seen := make(map[*Node]bool)
	for _, v := range content {
		switch v := v.(type) {
		case nil:
			continue
		case Option:
			if err := v.applyElem(p); err != nil {
				return nil, err
			}
		case *Node:
			if seen[v] {
				return nil, &Error{Op: "append", Tag: v.tag, Err: ErrInvalidOperation}
			}
			seen[v] = true
			it, err := n.toItem("append", v)
			if err != nil {
				return nil, err
			}
			p.items = append(p.items, it)
		case string, Text:
			it, err := n.toItem("append", v)
			if err != nil {
				return nil, err
			}
			p.items = append(p.items, it)
		case fmt.Stringer:
			p.items = append(p.items, Text{Value: v.String()})
		default:
			return nil, &Error{Op: "add content to", Tag: tag, Err: ErrInvalidOperation}
		}
	}
	return p, nil
}

func (p *plan) commit(n *Node) {
	for _, a := range p.attrs {
		n.setAttr(a.Key, a.Value)
	}
	if p.newlines != nil {
		n.newlines = *p.newlines
	}
	for _, it := range p.items {
		n.appendItem(it)
	}
}

// attrToString converts an attribute value to text.
func attrToString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidAttributeValue, err)
		}
		return string(b), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return "", ErrInvalidAttributeValue
	}
}
