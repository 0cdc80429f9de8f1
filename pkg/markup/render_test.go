package markup

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRenderEmptyTags(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		tag      string
		expected string
	}{
		{"html void", HTML, "br", "<br>"},
		{"html void uppercase", HTML, "BR", "<BR>"},
		{"html non-void", HTML, "p", "<p></p>"},
		{"xhtml void", XHTML, "br", "<br />"},
		{"xhtml legacy void", XHTML, "frame", "<frame />"},
		{"xhtml non-void", XHTML, "p", "<p></p>"},
		{"xml br", XML, "br", "<br />"},
		{"xml p", XML, "p", "<p />"},
		{"xml custom", XML, "some-tag", "<some-tag />"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := New(tt.dialect)
			doc.Child(tt.tag)
			if got := doc.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRenderJustTag(t *testing.T) {
	if got := HTMLDoc().Child("br").String(); got != "<br>" {
		t.Errorf("html br = %q, want %q", got, "<br>")
	}
	if got := XHTMLDoc().Child("br").String(); got != "<br />" {
		t.Errorf("xhtml br = %q, want %q", got, "<br />")
	}
}

func TestRenderTagWithContent(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		expected string
	}{
		{"html", HTML, "<br>text</br>"},
		{"xhtml", XHTML, "<br>text</br>"},
		{"xml", XML, "<br>text</br>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := New(tt.dialect)
			doc.MustElem("br", "text")
			if got := doc.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRenderParagraph(t *testing.T) {
	h := HTMLDoc()
	h.MustElem("p", "hello")
	if got, want := h.String(), "<p>hello</p>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderTopLevelElement(t *testing.T) {
	h, err := NewElement(HTML, "html", "text")
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	if got, want := h.String(), "<html>\ntext\n</html>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	h, err = NewElement(HTML, "html", "text", WithNewlines(false))
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	if got, want := h.String(), "<html>text</html>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAppendElement(t *testing.T) {
	h, _ := NewElement(XML, "xml")
	someTag, _ := NewElement(XML, "some-tag", "spam", WithNewlines(false))
	text, _ := NewElement(XML, "text", "spam", WithNewlines(false))

	if err := h.Append(someTag); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := h.Append(text); err != nil {
		t.Fatalf("Append: %v", err)
	}

	want := "<xml>\n<some-tag>spam</some-tag>\n<text>spam</text>\n</xml>"
	if got := h.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAppendText(t *testing.T) {
	h, _ := NewElement(HTML, "html", WithNewlines(false))
	_ = h.Append("text")
	_ = h.Append("text")
	if got, want := h.String(), "<html>texttext</html>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderEscaping(t *testing.T) {
	h := HTMLDoc()
	h.Text("<>&")
	if got, want := h.String(), "&lt;&gt;&amp;"; got != want {
		t.Errorf("escaped text = %q, want %q", got, want)
	}

	h = HTMLDoc()
	h.RawText("<>&")
	if got, want := h.String(), "<>&"; got != want {
		t.Errorf("raw text = %q, want %q", got, want)
	}

	h = HTMLDoc()
	h.MustElem("br", WithAttr("id", `<>&"`))
	if got, want := h.String(), `<br id="&lt;&gt;&amp;&quot;">`; got != want {
		t.Errorf("attribute = %q, want %q", got, want)
	}

	h = HTMLDoc()
	h.MustElem("p", Raw("<b>bold</b>"), " & more")
	if got, want := h.String(), "<p><b>bold</b> &amp; more</p>"; got != want {
		t.Errorf("mixed content = %q, want %q", got, want)
	}
}

func TestRenderSubtags(t *testing.T) {
	want := "<ol>\n<li>foo</li>\n<li><b>bar</b></li>\n</ol>"

	t.Run("direct", func(t *testing.T) {
		h := HTMLDoc()
		l := h.Child("ol")
		l.MustElem("li", "foo")
		l.Child("li").MustElem("b", "bar")
		if got := h.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("scope", func(t *testing.T) {
		h := HTMLDoc()
		h.Child("ol").Scope(func(l *Node) {
			l.MustElem("li", "foo")
			l.Child("li").MustElem("b", "bar")
		})
		if got := h.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("no newlines", func(t *testing.T) {
		h := HTMLDoc()
		l := h.MustElem("ol", WithNewlines(false))
		l.MustElem("li", "foo")
		l.MustElem("li", "bar")
		if got, want := h.String(), "<ol><li>foo</li><li>bar</li></ol>"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestRenderAddText(t *testing.T) {
	h := HTMLDoc()
	p := h.MustElem("p", "hello, world!\n")
	p.Text("more text")
	if got, want := h.String(), "<p>hello, world!\nmore text</p>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	h = HTMLDoc()
	p = h.MustElem("p", "hello, world!", WithNewlines(true))
	p.Text("more text")
	if got, want := h.String(), "<p>\nhello, world!\nmore text\n</p>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderDocumentNewlines(t *testing.T) {
	h := HTMLDoc()
	h.Child("br")
	h.Child("br")
	if got, want := h.String(), "<br>\n<br>"; got != want {
		t.Errorf("default = %q, want %q", got, want)
	}

	h = HTMLDoc(WithNewlines(false))
	h.Child("br")
	h.Child("br")
	if got, want := h.String(), "<br><br>"; got != want {
		t.Errorf("newlines off = %q, want %q", got, want)
	}
}

func TestRenderDocumentNewlinesOffReachesContainers(t *testing.T) {
	h := HTMLDoc(WithNewlines(false))
	l := h.Child("ul")
	l.MustElem("li", "a")
	l.MustElem("li", "b")
	if got, want := h.String(), "<ul><li>a</li><li>b</li></ul>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderNewlinesNotInherited(t *testing.T) {
	h := HTMLDoc()
	outer := h.MustElem("div", WithNewlines(true))
	inner := outer.Child("div")
	inner.MustElem("span", "a")
	inner.MustElem("span", "b")

	want := "<div>\n<div><span>a</span><span>b</span></div>\n</div>"
	if got := h.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderNewlineTags(t *testing.T) {
	h := HTMLDoc(WithNewlineTags("section"))
	s := h.Child("section")
	s.MustElem("p", "x")
	l := h.Child("ol")
	l.MustElem("li", "y")

	want := "<section>\n<p>x</p>\n</section>\n<ol><li>y</li></ol>"
	if got := h.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderNewlineMethod(t *testing.T) {
	h := HTMLDoc(WithNewlines(false))
	p := h.Child("p")
	p.Text("a").Newline().Text("b")
	if got, want := h.String(), "<p>a\nb</p>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderTable(t *testing.T) {
	h := HTMLDoc()
	h.MustElem("table", WithAttr("border", "1")).Scope(func(table *Node) {
		for i := 0; i < 2; i++ {
			table.Child("tr").Scope(func(tr *Node) {
				tr.MustElem("td", "column 1")
				tr.MustElem("td", "column 2")
			})
		}
	})

	want := `<table border="1">
<tr><td>column 1</td><td>column 2</td></tr>
<tr><td>column 1</td><td>column 2</td></tr>
</table>`
	if got := h.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderTableExplicitRowNewlines(t *testing.T) {
	h := HTMLDoc(WithNewlineTags())
	table := h.MustElem("table", WithNewlines(true))
	for i := 0; i < 2; i++ {
		tr := table.MustElem("tr", WithNewlines(false))
		tr.MustElem("td", "a")
		tr.MustElem("td", "b")
	}

	want := "<table>\n<tr><td>a</td><td>b</td></tr>\n<tr><td>a</td><td>b</td></tr>\n</table>"
	if got := h.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributesInOrder(t *testing.T) {
	h := HTMLDoc()
	a := h.MustElem("a",
		WithAttr("href", "/x"),
		WithAttr("class", "link"),
		WithAttr("data-n", 3),
		"go",
	)
	if err := a.SetAttr("href", "/y"); err != nil {
		t.Fatalf("SetAttr: %v", err)
	}

	want := `<a href="/y" class="link" data-n="3">go</a>`
	if got := h.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderUnicode(t *testing.T) {
	const text = "euro € 世界"
	h := HTMLDoc(WithNewlines(false))
	h.MustElem("p", text)

	want := "<p>" + text + "</p>"
	if got := h.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := h.Bytes(); !bytes.Equal(got, []byte(want)) {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
}

func TestRenderIdempotent(t *testing.T) {
	h := HTMLDoc()
	h.MustElem("ul").Scope(func(ul *Node) {
		ul.MustElem("li", "<one>")
		ul.MustElem("li", WithAttr("title", `"two"`), "two")
	})

	first := h.String()
	second := h.String()
	if first != second {
		t.Errorf("renders differ:\n%q\n%q", first, second)
	}
}

func TestWriteTo(t *testing.T) {
	h := XMLDoc()
	h.MustElem("item", "a & b")

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if want := "<item>a &amp; b</item>"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo returned %d, wrote %d bytes", n, buf.Len())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteToPropagatesWriterError(t *testing.T) {
	h := HTMLDoc()
	h.Child("br")
	if _, err := h.WriteTo(failingWriter{}); err == nil {
		t.Fatal("expected writer error")
	}
}

type oddDialect struct{ htmlDialect }

func (oddDialect) Name() string { return "odd" }

func (oddDialect) EmptyForm(string, bool) TagForm { return TagForm(42) }

func TestRenderUnknownFormFallsBackToPaired(t *testing.T) {
	h := New(oddDialect{})
	h.Child("br")
	if got, want := h.String(), "<br></br>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderLargeTree(t *testing.T) {
	h := HTMLDoc(WithNewlines(false))
	ul := h.Child("ul")
	for i := 0; i < 1000; i++ {
		ul.MustElem("li", "x")
	}
	got := h.String()
	if c := strings.Count(got, "<li>x</li>"); c != 1000 {
		t.Errorf("rendered %d items, want 1000", c)
	}
}
