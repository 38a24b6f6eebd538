// Package render turns a document tree into an HTML fragment.
package render

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/mdsee/internal/document"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes & < > " and ' for use in text and attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// HTML renders a document tree. Rendering is a pure function of the tree.
// Raw HTML nodes are emitted verbatim; all other text is escaped.
func HTML(root *document.Node) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	writeNode(&sb, root)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *document.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case document.KindDocument:
		writeChildren(sb, n)

	case document.KindParagraph:
		sb.WriteString("<p>")
		writeChildren(sb, n)
		sb.WriteString("</p>\n")

	case document.KindHeading:
		tag := "h" + strconv.Itoa(min(max(n.Level, 1), 6))
		sb.WriteString("<" + tag + ">")
		writeChildren(sb, n)
		sb.WriteString("</" + tag + ">\n")

	case document.KindText:
		sb.WriteString(EscapeHTML(n.Literal))

	case document.KindEmphasis:
		wrap(sb, "em", n)

	case document.KindStrong:
		wrap(sb, "strong", n)

	case document.KindStrikethrough:
		wrap(sb, "del", n)

	case document.KindInlineCode:
		sb.WriteString("<code>" + EscapeHTML(n.Literal) + "</code>")

	case document.KindCodeBlock:
		sb.WriteString("<pre><code")
		if n.Language != "" {
			sb.WriteString(` class="language-` + EscapeHTML(n.Language) + `"`)
		}
		sb.WriteString(">" + EscapeHTML(n.Literal) + "</code></pre>\n")

	case document.KindLink:
		sb.WriteString(`<a href="` + EscapeHTML(n.Destination) + `"`)
		if n.Title != "" {
			sb.WriteString(` title="` + EscapeHTML(n.Title) + `"`)
		}
		sb.WriteString(">")
		writeChildren(sb, n)
		sb.WriteString("</a>")

	case document.KindImage:
		sb.WriteString(`<img src="` + EscapeHTML(n.Destination) + `" alt="` + EscapeHTML(n.PlainText()) + `"`)
		if n.Title != "" {
			sb.WriteString(` title="` + EscapeHTML(n.Title) + `"`)
		}
		sb.WriteString(">")

	case document.KindUnorderedList:
		sb.WriteString("<ul>\n")
		writeChildren(sb, n)
		sb.WriteString("</ul>\n")

	case document.KindOrderedList:
		sb.WriteString("<ol")
		if n.Start != 1 {
			sb.WriteString(` start="` + strconv.Itoa(n.Start) + `"`)
		}
		sb.WriteString(">\n")
		writeChildren(sb, n)
		sb.WriteString("</ol>\n")

	case document.KindListItem:
		writeListItem(sb, n)

	case document.KindBlockQuote:
		sb.WriteString("<blockquote>\n")
		writeChildren(sb, n)
		sb.WriteString("</blockquote>\n")

	case document.KindThematicBreak:
		sb.WriteString("<hr>\n")

	case document.KindSoftBreak:
		sb.WriteString("\n")

	case document.KindLineBreak:
		sb.WriteString("<br>\n")

	case document.KindHTMLBlock, document.KindInlineHTML:
		sb.WriteString(n.Literal)

	case document.KindTable:
		writeTable(sb, n)

	default:
		// Unknown, and rows or cells outside a table.
		writeChildren(sb, n)
	}
}

func writeChildren(sb *strings.Builder, n *document.Node) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		writeNode(sb, c)
	}
}

func wrap(sb *strings.Builder, tag string, n *document.Node) {
	sb.WriteString("<" + tag + ">")
	writeChildren(sb, n)
	sb.WriteString("</" + tag + ">")
}

// writeListItem renders a list item. Task items get a disabled checkbox, and
// an item holding a single paragraph is unwrapped so the box and its text
// share a line.
func writeListItem(sb *strings.Builder, n *document.Node) {
	sb.WriteString("<li>")

	if n.Checkbox == document.CheckboxNone {
		writeChildren(sb, n)
		sb.WriteString("</li>\n")
		return
	}

	sb.WriteString(`<input type="checkbox"`)
	if n.Checkbox == document.CheckboxChecked {
		sb.WriteString(" checked")
	}
	sb.WriteString(" disabled> ")

	if len(n.Children) == 1 && n.Children[0] != nil && n.Children[0].Kind == document.KindParagraph {
		writeChildren(sb, n.Children[0])
	} else {
		writeChildren(sb, n)
	}
	sb.WriteString("</li>\n")
}

func writeTable(sb *strings.Builder, n *document.Node) {
	sb.WriteString("<table>\n")

	var head *document.Node
	body := n.Children
	if len(body) > 0 {
		head, body = body[0], body[1:]
	}

	sb.WriteString("<thead>\n<tr>\n")
	if head != nil {
		writeCells(sb, "th", head, n.Alignments)
	}
	sb.WriteString("</tr>\n</thead>\n")

	if len(body) > 0 {
		sb.WriteString("<tbody>\n")
		for _, row := range body {
			sb.WriteString("<tr>\n")
			writeCells(sb, "td", row, n.Alignments)
			sb.WriteString("</tr>\n")
		}
		sb.WriteString("</tbody>\n")
	}

	sb.WriteString("</table>\n")
}

func writeCells(sb *strings.Builder, tag string, row *document.Node, alignments []document.Alignment) {
	if row == nil {
		return
	}
	for i, cell := range row.Children {
		sb.WriteString("<" + tag)
		if i < len(alignments) {
			sb.WriteString(alignAttr(alignments[i]))
		}
		sb.WriteString(">")
		writeChildren(sb, cell)
		sb.WriteString("</" + tag + ">\n")
	}
}

func alignAttr(a document.Alignment) string {
	switch a {
	case document.AlignLeft, document.AlignCenter, document.AlignRight:
		return ` style="text-align: ` + a.String() + `"`
	default:
		return ""
	}
}
