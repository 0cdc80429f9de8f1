package markup

import (
	"bytes"
	"io"
)

// String renders n and its subtree.
func (n *Node) String() string {
	var buf bytes.Buffer
	n.render(&buf, n.doc.dialect)
	return buf.String()
}

// Bytes renders n and its subtree. Text is copied byte for byte, so
// non-ASCII content comes out exactly as it went in.
func (n *Node) Bytes() []byte {
	var buf bytes.Buffer
	n.render(&buf, n.doc.dialect)
	return buf.Bytes()
}

// WriteTo renders n to w. It implements io.WriterTo.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	n.render(&buf, n.doc.dialect)
	return buf.WriteTo(w)
}

// render writes a text leaf.
func (t Text) render(buf *bytes.Buffer, d Dialect) {
	if t.Raw {
		buf.WriteString(t.Value)
		return
	}
	buf.WriteString(d.EscapeText(t.Value))
}

// render writes a root or an element.
func (n *Node) render(buf *bytes.Buffer, d Dialect) {
	if n.tag == "" {
		n.renderChildren(buf, d)
		return
	}

	buf.WriteByte('<')
	buf.WriteString(n.tag)
	n.renderAttributes(buf, d)

	if len(n.children) == 0 {
		switch emptyForm(d, n.tag) {
		case FormVoid:
			buf.WriteByte('>')
			return
		case FormSelfClosing:
			buf.WriteString(" />")
			return
		}
		buf.WriteString("></")
		buf.WriteString(n.tag)
		buf.WriteByte('>')
		return
	}

	buf.WriteByte('>')
	if n.newlines {
		buf.WriteByte('\n')
	}
	n.renderChildren(buf, d)
	if n.newlines {
		buf.WriteByte('\n')
	}
	buf.WriteString("</")
	buf.WriteString(n.tag)
	buf.WriteByte('>')
}

// renderChildren writes the children, separated by newlines if enabled.
func (n *Node) renderChildren(buf *bytes.Buffer, d Dialect) {
	for i, child := range n.children {
		if i > 0 && n.newlines {
			buf.WriteByte('\n')
		}
		child.render(buf, d)
	}
}

// renderAttributes writes attributes in insertion order.
func (n *Node) renderAttributes(buf *bytes.Buffer, d Dialect) {
	for _, a := range n.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteString(`="`)
		buf.WriteString(d.EscapeAttr(a.Value))
		buf.WriteByte('"')
	}
}
