// Package markdown parses CommonMark with GitHub extensions into a
// document tree using goldmark.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/jmylchreest/mdsee/internal/document"
)

// Parser converts markdown source into document trees.
// A Parser is safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a parser with the GFM extension set enabled
// (tables, strikethrough, task lists, linkify).
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

var defaultParser = NewParser()

// Parse parses source with the default parser. It never fails; input that
// is not valid markdown structure is treated as paragraph text.
func Parse(source []byte) *document.Node {
	return defaultParser.Parse(source)
}

// Parse parses source into a document tree.
func (p *Parser) Parse(source []byte) *document.Node {
	root := p.md.Parser().Parse(text.NewReader(source))
	c := converter{src: source}
	doc := document.Document()
	doc.Children = c.children(root)
	return doc
}

type converter struct {
	src []byte
}

func (c *converter) children(n ast.Node) []*document.Node {
	var out []*document.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.convert(child)...)
	}
	return out
}

// convert maps one goldmark node to zero or more document nodes. Text nodes
// can expand into a literal followed by a break.
func (c *converter) convert(n ast.Node) []*document.Node {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return one(document.Paragraph(c.children(n)...))

	case *ast.Heading:
		return one(document.Heading(n.Level, c.children(n)...))

	case *ast.Text:
		return c.text(n)

	case *ast.String:
		value := string(n.Value)
		if !n.IsRaw() {
			value = unescape(n.Value)
		}
		return one(document.Text(value))

	case *ast.Emphasis:
		if n.Level >= 2 {
			return one(document.Strong(c.children(n)...))
		}
		return one(document.Emphasis(c.children(n)...))

	case *extast.Strikethrough:
		return one(document.Strikethrough(c.children(n)...))

	case *ast.CodeSpan:
		return one(document.InlineCode(c.codeSpan(n)))

	case *ast.FencedCodeBlock:
		var lang string
		if n.Info != nil {
			lang = unescape(n.Language(c.src))
		}
		return one(document.CodeBlock(lang, c.lines(n.Lines())))

	case *ast.CodeBlock:
		return one(document.CodeBlock("", c.lines(n.Lines())))

	case *ast.HTMLBlock:
		raw := c.lines(n.Lines())
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(c.src))
		}
		return one(document.HTMLBlock(raw))

	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(c.src))
		}
		return one(document.InlineHTML(buf.String()))

	case *ast.Link:
		return one(document.Link(unescape(n.Destination), unescape(n.Title), c.children(n)...))

	case *ast.AutoLink:
		url := string(n.URL(c.src))
		if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(n.URL(c.src)), []byte("mailto:")) {
			url = "mailto:" + url
		}
		return one(document.Link(url, "", document.Text(string(n.Label(c.src)))))

	case *ast.Image:
		return one(document.Image(unescape(n.Destination), unescape(n.Title), c.children(n)...))

	case *ast.List:
		if n.IsOrdered() {
			return one(document.OrderedList(n.Start, c.children(n)...))
		}
		return one(document.UnorderedList(c.children(n)...))

	case *ast.ListItem:
		return one(c.listItem(n))

	case *ast.Blockquote:
		return one(document.BlockQuote(c.children(n)...))

	case *ast.ThematicBreak:
		return one(document.ThematicBreak())

	case *extast.Table:
		return one(c.table(n))

	case *extast.TableHeader, *extast.TableRow:
		return one(document.TableRow(c.children(n)...))

	case *extast.TableCell:
		return one(document.TableCell(c.children(n)...))

	case *extast.TaskCheckBox:
		// Consumed by listItem; stray boxes carry no content.
		return nil

	default:
		return one(document.Unknown(c.children(n)...))
	}
}

func one(n *document.Node) []*document.Node {
	return []*document.Node{n}
}

func (c *converter) text(n *ast.Text) []*document.Node {
	value := n.Segment.Value(c.src)
	var literal string
	if n.IsRaw() {
		literal = string(value)
	} else {
		literal = unescape(value)
	}

	out := make([]*document.Node, 0, 2)
	if literal != "" {
		out = append(out, document.Text(literal))
	}
	switch {
	case n.HardLineBreak():
		out = append(out, document.LineBreak())
	case n.SoftLineBreak():
		out = append(out, document.SoftBreak())
	}
	return out
}

// codeSpan joins the raw segments of an inline code span. Line endings
// inside a span collapse to spaces.
func (c *converter) codeSpan(n *ast.CodeSpan) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		t, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		value := t.Segment.Value(c.src)
		if len(value) > 0 && value[len(value)-1] == '\n' {
			buf.Write(value[:len(value)-1])
			buf.WriteByte(' ')
			continue
		}
		buf.Write(value)
	}
	return buf.String()
}

func (c *converter) lines(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.src))
	}
	return buf.String()
}

// listItem converts a list item, lifting a task checkbox from the start of
// its first text block onto the item itself.
func (c *converter) listItem(n *ast.ListItem) *document.Node {
	item := document.ListItem(c.children(n)...)

	first := n.FirstChild()
	if first == nil {
		return item
	}
	if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
		item.Checkbox = document.CheckboxUnchecked
		if box.IsChecked {
			item.Checkbox = document.CheckboxChecked
		}
	}
	return item
}

func (c *converter) table(n *extast.Table) *document.Node {
	aligns := make([]document.Alignment, len(n.Alignments))
	for i, a := range n.Alignments {
		switch a {
		case extast.AlignLeft:
			aligns[i] = document.AlignLeft
		case extast.AlignCenter:
			aligns[i] = document.AlignCenter
		case extast.AlignRight:
			aligns[i] = document.AlignRight
		default:
			aligns[i] = document.AlignNone
		}
	}
	return document.Table(aligns, c.children(n)...)
}

// unescape resolves backslash escapes and entity and numeric character
// references, yielding plain text.
func unescape(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	b = util.ResolveEntityNames(b)
	return string(b)
}
