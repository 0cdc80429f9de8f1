package markup

import (
	"bytes"
	"strings"
)

// Text is a leaf of character data. Raw text is written verbatim, anything
// else is escaped by the document's dialect when rendered.
type Text struct {
	Value string
	Raw   bool
}

// Raw returns a text leaf that is not escaped. Use it only with trusted
// content.
func Raw(s string) Text {
	return Text{Value: s, Raw: true}
}

// Attr is a single attribute as it will be rendered.
type Attr struct {
	Key   string
	Value string
}

// item is a child of a Node: either a *Node or a Text.
type item interface {
	render(buf *bytes.Buffer, d Dialect)
}

// document holds the settings shared by every node of one tree.
type document struct {
	dialect     Dialect
	newlines    bool
	newlineTags map[string]bool
}

// Node is an element of a markup tree, or the tagless root of a document.
//
// Nodes are created through a parent (Child, Elem) or as tree roots (New,
// NewElement). A node has at most one parent and is never moved once
// attached.
type Node struct {
	tag      string
	attrs    []Attr
	children []item
	parent   *Node
	doc      *document
	newlines bool
}

// DocOption configures a document.
type DocOption interface {
	applyDoc(*document)
}

type docOptionFunc func(*document)

func (f docOptionFunc) applyDoc(d *document) { f(d) }

// WithNewlineTags replaces the set of tags that put their children on
// separate lines by default. Matching ignores case.
func WithNewlineTags(tags ...string) DocOption {
	return docOptionFunc(func(d *document) {
		d.newlineTags = make(map[string]bool, len(tags))
		for _, tag := range tags {
			d.newlineTags[strings.ToLower(tag)] = true
		}
	})
}

func newDocument(d Dialect, opts []DocOption) *document {
	if d == nil {
		d = HTML
	}
	doc := &document{dialect: d, newlines: true}
	WithNewlineTags(defaultNewlineTags...).applyDoc(doc)
	for _, opt := range opts {
		if opt != nil {
			opt.applyDoc(doc)
		}
	}
	return doc
}

// New creates an empty document and returns its root. A nil dialect
// selects HTML. Newlines are enabled unless WithNewlines(false) is given.
func New(d Dialect, opts ...DocOption) *Node {
	doc := newDocument(d, opts)
	return &Node{doc: doc, newlines: doc.newlines}
}

// HTMLDoc creates an empty HTML document.
func HTMLDoc(opts ...DocOption) *Node { return New(HTML, opts...) }

// XHTMLDoc creates an empty XHTML document.
func XHTMLDoc(opts ...DocOption) *Node { return New(XHTML, opts...) }

// XMLDoc creates an empty XML document.
func XMLDoc(opts ...DocOption) *Node { return New(XML, opts...) }

// NewElement creates a parentless element that can later be appended to a
// node of the same dialect. Its newline behavior defaults to on and can be
// changed with WithNewlines in content; content is handled as in Elem.
func NewElement(d Dialect, tag string, content ...any) (*Node, error) {
	doc := newDocument(d, nil)
	n := &Node{tag: tag, doc: doc, newlines: doc.newlines}
	if err := n.Configure(content...); err != nil {
		return nil, err
	}
	return n, nil
}

// Child creates a new element named tag, appends it to n and returns it.
// Every call creates a new sibling, so calling Child("li") twice yields two
// list items.
func (n *Node) Child(tag string) *Node {
	c := &Node{
		tag:      tag,
		parent:   n,
		doc:      n.doc,
		newlines: n.doc.newlines && n.doc.newlineTags[strings.ToLower(tag)],
	}
	n.children = append(n.children, c)
	return c
}

// Elem creates a child named tag and fills it from content. Each content
// value is one of:
//
//   - string: escaped text
//   - Text: a text leaf as given (see Raw)
//   - *Node: a parentless node, appended as a child
//   - Option: an attribute (WithAttr) or newline override (WithNewlines)
//   - fmt.Stringer: escaped text of its String method
//
// Content is validated before anything is created; on error n is left
// unchanged.
func (n *Node) Elem(tag string, content ...any) (*Node, error) {
	p, err := n.prepare(tag, content)
	if err != nil {
		return nil, err
	}
	c := n.Child(tag)
	p.commit(c)
	return c, nil
}

// MustElem is like Elem but panics if content is invalid.
func (n *Node) MustElem(tag string, content ...any) *Node {
	c, err := n.Elem(tag, content...)
	if err != nil {
		panic(err)
	}
	return c
}

// Configure adds content to n the way Elem does for a new child. It may be
// called on an existing node to add attributes or change its newline
// behavior after creation.
func (n *Node) Configure(content ...any) error {
	p, err := n.prepare(n.tag, content)
	if err != nil {
		return err
	}
	p.commit(n)
	return nil
}

// Append adds a *Node, a string (escaped) or a Text to n's children. A node
// must have no parent, must use the same dialect, and must not contain n.
func (n *Node) Append(v any) error {
	it, err := n.toItem("append", v)
	if err != nil {
		return err
	}
	n.appendItem(it)
	return nil
}

// Text appends escaped text and returns n.
func (n *Node) Text(value string) *Node {
	n.children = append(n.children, Text{Value: value})
	return n
}

// RawText appends text that is written without escaping and returns n.
func (n *Node) RawText(value string) *Node {
	n.children = append(n.children, Raw(value))
	return n
}

// Newline appends a literal line break and returns n.
func (n *Node) Newline() *Node {
	return n.RawText("\n")
}

// SetAttr sets an attribute. Setting an existing key replaces the value and
// keeps the attribute's original position.
func (n *Node) SetAttr(key string, value any) error {
	s, err := attrToString(value)
	if err != nil {
		return &Error{Op: "set attribute", Tag: key, Err: err}
	}
	n.setAttr(key, s)
	return nil
}

// Scope calls fn with n and returns n. It exists to group the code that
// fills a subtree; n is already attached, and nothing happens when fn
// returns.
func (n *Node) Scope(fn func(*Node)) *Node {
	if fn != nil {
		fn(n)
	}
	return n
}

// Tag returns the element name, or "" for a document root.
func (n *Node) Tag() string { return n.tag }

// Parent returns the node n was created under or appended to.
func (n *Node) Parent() *Node { return n.parent }

// Dialect returns the dialect n renders with.
func (n *Node) Dialect() Dialect { return n.doc.dialect }

// Newlines reports whether n renders its children on separate lines.
func (n *Node) Newlines() bool { return n.newlines }

// Len returns the number of children, text leaves included.
func (n *Node) Len() int { return len(n.children) }

// Attr returns the value of the attribute key.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns a copy of n's attributes in insertion order.
func (n *Node) Attrs() []Attr {
	if len(n.attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

func (n *Node) setAttr(key, value string) {
	for i := range n.attrs {
		if n.attrs[i].Key == key {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Value: value})
}

func (n *Node) appendItem(it item) {
	if c, ok := it.(*Node); ok {
		c.parent = n
	}
	n.children = append(n.children, it)
}

// toItem converts an appendable value and checks ownership rules.
func (n *Node) toItem(op string, v any) (item, error) {
	switch v := v.(type) {
	case *Node:
		if v == nil {
			return nil, &Error{Op: op, Err: ErrInvalidOperation}
		}
		if err := n.canAdopt(v); err != nil {
			return nil, &Error{Op: op, Tag: v.tag, Err: err}
		}
		return v, nil
	case string:
		return Text{Value: v}, nil
	case Text:
		return v, nil
	default:
		return nil, &Error{Op: op, Err: ErrInvalidOperation}
	}
}

// canAdopt reports whether c may become a child of n.
func (n *Node) canAdopt(c *Node) error {
	if c.parent != nil {
		return ErrInvalidOperation
	}
	if c.doc.dialect.Name() != n.doc.dialect.Name() {
		return ErrInvalidOperation
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return ErrInvalidOperation
		}
	}
	return nil
}
