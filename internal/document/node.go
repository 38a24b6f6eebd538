// Package document defines the parsed markdown tree consumed by the renderer.
//
// The set of node kinds is closed; parsers map anything they cannot
// represent to KindUnknown, which renderers treat as a transparent container.
package document

import "strings"

// Kind identifies which markdown construct a node represents.
type Kind int

const (
	KindUnknown Kind = iota
	KindDocument
	KindParagraph
	KindHeading
	KindText
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindInlineCode
	KindCodeBlock
	KindLink
	KindImage
	KindOrderedList
	KindUnorderedList
	KindListItem
	KindBlockQuote
	KindThematicBreak
	KindSoftBreak
	KindLineBreak
	KindHTMLBlock
	KindInlineHTML
	KindTable
	KindTableRow
	KindTableCell
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindDocument:      "document",
	KindParagraph:     "paragraph",
	KindHeading:       "heading",
	KindText:          "text",
	KindEmphasis:      "emphasis",
	KindStrong:        "strong",
	KindStrikethrough: "strikethrough",
	KindInlineCode:    "inline-code",
	KindCodeBlock:     "code-block",
	KindLink:          "link",
	KindImage:         "image",
	KindOrderedList:   "ordered-list",
	KindUnorderedList: "unordered-list",
	KindListItem:      "list-item",
	KindBlockQuote:    "block-quote",
	KindThematicBreak: "thematic-break",
	KindSoftBreak:     "soft-break",
	KindLineBreak:     "line-break",
	KindHTMLBlock:     "html-block",
	KindInlineHTML:    "inline-html",
	KindTable:         "table",
	KindTableRow:      "table-row",
	KindTableCell:     "table-cell",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Checkbox is the task-list state of a list item.
type Checkbox int

const (
	CheckboxNone Checkbox = iota
	CheckboxUnchecked
	CheckboxChecked
)

// Alignment is the text alignment of a table column.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return ""
	}
}

// Node is one element of the document tree. Which fields are meaningful
// depends on Kind.
type Node struct {
	Kind     Kind
	Children []*Node

	// Literal is the content of Text, InlineCode, CodeBlock, HTMLBlock and
	// InlineHTML nodes. Text literals are unescaped plain text.
	Literal string

	Level    int    // Heading: 1-6
	Language string // CodeBlock info string language, may be empty

	Destination string // Link href, Image src
	Title       string // Link and Image title, may be empty

	Start    int      // OrderedList first index
	Checkbox Checkbox // ListItem task state

	// Alignments holds per-column alignment for Table nodes.
	Alignments []Alignment
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// PlainText concatenates the literals of the direct Text children of n.
// Nested formatting is not descended into.
func (n *Node) PlainText() string {
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Kind == KindText {
			sb.WriteString(c.Literal)
		}
	}
	return sb.String()
}

// Constructors for each kind.

func Document(children ...*Node) *Node {
	return &Node{Kind: KindDocument, Children: children}
}

func Paragraph(children ...*Node) *Node {
	return &Node{Kind: KindParagraph, Children: children}
}

func Heading(level int, children ...*Node) *Node {
	return &Node{Kind: KindHeading, Level: level, Children: children}
}

func Text(s string) *Node {
	return &Node{Kind: KindText, Literal: s}
}

func Emphasis(children ...*Node) *Node {
	return &Node{Kind: KindEmphasis, Children: children}
}

func Strong(children ...*Node) *Node {
	return &Node{Kind: KindStrong, Children: children}
}

func Strikethrough(children ...*Node) *Node {
	return &Node{Kind: KindStrikethrough, Children: children}
}

func InlineCode(code string) *Node {
	return &Node{Kind: KindInlineCode, Literal: code}
}

func CodeBlock(language, code string) *Node {
	return &Node{Kind: KindCodeBlock, Language: language, Literal: code}
}

func Link(href, title string, children ...*Node) *Node {
	return &Node{Kind: KindLink, Destination: href, Title: title, Children: children}
}

func Image(src, title string, alt ...*Node) *Node {
	return &Node{Kind: KindImage, Destination: src, Title: title, Children: alt}
}

func OrderedList(start int, items ...*Node) *Node {
	return &Node{Kind: KindOrderedList, Start: start, Children: items}
}

func UnorderedList(items ...*Node) *Node {
	return &Node{Kind: KindUnorderedList, Children: items}
}

func ListItem(children ...*Node) *Node {
	return &Node{Kind: KindListItem, Children: children}
}

func TaskItem(checked bool, children ...*Node) *Node {
	state := CheckboxUnchecked
	if checked {
		state = CheckboxChecked
	}
	return &Node{Kind: KindListItem, Checkbox: state, Children: children}
}

func BlockQuote(children ...*Node) *Node {
	return &Node{Kind: KindBlockQuote, Children: children}
}

func ThematicBreak() *Node {
	return &Node{Kind: KindThematicBreak}
}

func SoftBreak() *Node {
	return &Node{Kind: KindSoftBreak}
}

func LineBreak() *Node {
	return &Node{Kind: KindLineBreak}
}

func HTMLBlock(raw string) *Node {
	return &Node{Kind: KindHTMLBlock, Literal: raw}
}

func InlineHTML(raw string) *Node {
	return &Node{Kind: KindInlineHTML, Literal: raw}
}

// Table builds a table whose first row is the header.
func Table(alignments []Alignment, rows ...*Node) *Node {
	return &Node{Kind: KindTable, Alignments: alignments, Children: rows}
}

func TableRow(cells ...*Node) *Node {
	return &Node{Kind: KindTableRow, Children: cells}
}

func TableCell(children ...*Node) *Node {
	return &Node{Kind: KindTableCell, Children: children}
}

// Unknown wraps children in a node the renderer passes through transparently.
func Unknown(children ...*Node) *Node {
	return &Node{Kind: KindUnknown, Children: children}
}
