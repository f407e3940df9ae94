// Package doctree defines the node vocabulary for parsed documents.
//
// A Document is an ordered tree of Nodes owned top-down: each container
// exclusively owns its children, with no sharing between subtrees. The
// vocabulary is closed: every kind a producer may emit is declared here,
// and consumers dispatch over it with a type switch.
package doctree

import "strings"

// Node is a block-level or inline-level element of a document tree.
type Node interface {
	node()
}

// Document is the root of a parsed document.
type Document struct {
	Children []Node
}

// Heading is a section heading at a given level (1 = top).
type Heading struct {
	Level    int
	Children []Node // inline content
}

// Paragraph is ordinary body text.
type Paragraph struct {
	Children []Node // inline content
}

// LooseText is block content not wrapped in a paragraph, such as the
// body of a tight list item.
type LooseText struct {
	Children []Node // inline content
}

// Table is structured tabular content. Its cells are opaque here; the
// narration filter removes tables whole.
type Table struct {
	Children []Node
}

// Figure is a captioned figure block.
type Figure struct {
	Children []Node
}

// Image is a reference to image content.
type Image struct {
	Target string
	Alt    string
}

// Footnote is a footnote body.
type Footnote struct {
	Children []Node
}

// RawBlock is verbatim block content (code blocks, embedded markup).
type RawBlock struct {
	Literal string
}

// Math is math content. Display selects block layout; inline otherwise.
type Math struct {
	Literal string
	Display bool
}

// BlockContainer groups a sequence of block nodes (list items, quotes).
type BlockContainer struct {
	Children []Node
}

// TextRun is a run of plain text.
type TextRun struct {
	Text string
}

// Link wraps inline content with a target.
type Link struct {
	Children []Node
	Target   string
}

// InlineContainer groups inline nodes (emphasis, spans).
type InlineContainer struct {
	Children []Node
}

// RawInline is verbatim inline content (code spans, embedded markup).
type RawInline struct {
	Literal string
}

func (*Heading) node()         {}
func (*Paragraph) node()       {}
func (*LooseText) node()       {}
func (*Table) node()           {}
func (*Figure) node()          {}
func (*Image) node()           {}
func (*Footnote) node()        {}
func (*RawBlock) node()        {}
func (*Math) node()            {}
func (*BlockContainer) node()  {}
func (*TextRun) node()         {}
func (*Link) node()            {}
func (*InlineContainer) node() {}
func (*RawInline) node()       {}

// FlattenText returns the concatenated TextRun content of n in document
// order. Raw, math and image payloads carry no narratable text and
// contribute nothing.
func FlattenText(n Node) string {
	var b strings.Builder
	flatten(n, &b)
	return b.String()
}

// FlattenAll is FlattenText over a node sequence.
func FlattenAll(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		flatten(n, &b)
	}
	return b.String()
}

func flatten(n Node, b *strings.Builder) {
	switch node := n.(type) {
	case *TextRun:
		b.WriteString(node.Text)
	case *Heading:
		flattenChildren(node.Children, b)
	case *Paragraph:
		flattenChildren(node.Children, b)
	case *LooseText:
		flattenChildren(node.Children, b)
	case *Table:
		flattenChildren(node.Children, b)
	case *Figure:
		flattenChildren(node.Children, b)
	case *Footnote:
		flattenChildren(node.Children, b)
	case *BlockContainer:
		flattenChildren(node.Children, b)
	case *Link:
		flattenChildren(node.Children, b)
	case *InlineContainer:
		flattenChildren(node.Children, b)
	}
}

func flattenChildren(nodes []Node, b *strings.Builder) {
	for _, n := range nodes {
		flatten(n, b)
	}
}

// Clone returns a deep copy of n. Trees are owned top-down, so callers
// that hand a tree to a transform and still need the original must copy
// it first.
func Clone(n Node) Node {
	switch node := n.(type) {
	case *Heading:
		return &Heading{Level: node.Level, Children: cloneAll(node.Children)}
	case *Paragraph:
		return &Paragraph{Children: cloneAll(node.Children)}
	case *LooseText:
		return &LooseText{Children: cloneAll(node.Children)}
	case *Table:
		return &Table{Children: cloneAll(node.Children)}
	case *Figure:
		return &Figure{Children: cloneAll(node.Children)}
	case *Image:
		return &Image{Target: node.Target, Alt: node.Alt}
	case *Footnote:
		return &Footnote{Children: cloneAll(node.Children)}
	case *RawBlock:
		return &RawBlock{Literal: node.Literal}
	case *Math:
		return &Math{Literal: node.Literal, Display: node.Display}
	case *BlockContainer:
		return &BlockContainer{Children: cloneAll(node.Children)}
	case *TextRun:
		return &TextRun{Text: node.Text}
	case *Link:
		return &Link{Children: cloneAll(node.Children), Target: node.Target}
	case *InlineContainer:
		return &InlineContainer{Children: cloneAll(node.Children)}
	case *RawInline:
		return &RawInline{Literal: node.Literal}
	default:
		return n
	}
}

// CloneDocument returns a deep copy of doc.
func CloneDocument(doc *Document) *Document {
	return &Document{Children: cloneAll(doc.Children)}
}

func cloneAll(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

// Equal reports deep structural equality of two nodes.
func Equal(a, b Node) bool {
	switch an := a.(type) {
	case *Heading:
		bn, ok := b.(*Heading)
		return ok && an.Level == bn.Level && equalAll(an.Children, bn.Children)
	case *Paragraph:
		bn, ok := b.(*Paragraph)
		return ok && equalAll(an.Children, bn.Children)
	case *LooseText:
		bn, ok := b.(*LooseText)
		return ok && equalAll(an.Children, bn.Children)
	case *Table:
		bn, ok := b.(*Table)
		return ok && equalAll(an.Children, bn.Children)
	case *Figure:
		bn, ok := b.(*Figure)
		return ok && equalAll(an.Children, bn.Children)
	case *Image:
		bn, ok := b.(*Image)
		return ok && an.Target == bn.Target && an.Alt == bn.Alt
	case *Footnote:
		bn, ok := b.(*Footnote)
		return ok && equalAll(an.Children, bn.Children)
	case *RawBlock:
		bn, ok := b.(*RawBlock)
		return ok && an.Literal == bn.Literal
	case *Math:
		bn, ok := b.(*Math)
		return ok && an.Literal == bn.Literal && an.Display == bn.Display
	case *BlockContainer:
		bn, ok := b.(*BlockContainer)
		return ok && equalAll(an.Children, bn.Children)
	case *TextRun:
		bn, ok := b.(*TextRun)
		return ok && an.Text == bn.Text
	case *Link:
		bn, ok := b.(*Link)
		return ok && an.Target == bn.Target && equalAll(an.Children, bn.Children)
	case *InlineContainer:
		bn, ok := b.(*InlineContainer)
		return ok && equalAll(an.Children, bn.Children)
	case *RawInline:
		bn, ok := b.(*RawInline)
		return ok && an.Literal == bn.Literal
	default:
		return a == b
	}
}

// EqualDocuments reports deep structural equality of two documents.
func EqualDocuments(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equalAll(a.Children, b.Children)
}

func equalAll(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
