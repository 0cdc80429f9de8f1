// Package markup builds HTML, XHTML and XML documents in memory and
// renders them to text.
//
// A document is a tree of Nodes rooted at a tagless root. Children are
// created by name and appended in call order, so the structure of the
// building code mirrors the structure of the output:
//
//	doc := markup.New(markup.HTML)
//	list := doc.Child("ol")
//	list.MustElem("li", "foo")
//	list.Child("li").MustElem("b", "bar")
//
//	fmt.Println(doc)
//	// <ol>
//	// <li>foo</li>
//	// <li><b>bar</b></li>
//	// </ol>
//
// # Dialects
//
// The Dialect chosen at document creation decides how childless tags are
// closed and how text is escaped:
//
//   - HTML renders void tags bare (<br>) and other empty tags paired (<p></p>)
//   - XHTML closes void tags explicitly (<br />) and pairs everything else
//   - XML self-closes every empty tag (<p />)
//
// Tags with children always render as an open/close pair, in every dialect.
// Custom dialects implement the Dialect interface.
//
// # Newlines
//
// A node with newlines enabled puts each child on its own line and wraps
// them in newlines. The root follows the document's WithNewlines option.
// Other nodes default to newlines only for container tags (table, ol, ul,
// dl) and only while the document allows newlines; Newlines overrides the
// default for a single node.
//
// # Escaping
//
// Text added with Text, Append or as string content is escaped when
// rendered. RawText and Raw bypass escaping and must only carry trusted
// content.
//
// # Concurrency
//
// A document is not safe for concurrent mutation. Rendering does not
// modify the tree.
package markup
