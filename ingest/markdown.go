// Package ingest converts externally parsed trees into the doctree
// vocabulary. The adapters never touch raw markup bytes themselves; they
// receive trees that goldmark or x/net/html already parsed, which keeps
// the narration filter's input contract intact.
package ingest

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/dgallion1/speechtree/doctree"
)

// Markdown maps a goldmark AST rooted at root into a Document. source
// must be the byte slice the AST was parsed from; goldmark nodes carry
// segments into it rather than copies.
func Markdown(root ast.Node, source []byte) *doctree.Document {
	return &doctree.Document{Children: mdBlocks(root, source)}
}

func mdBlocks(parent ast.Node, src []byte) []doctree.Node {
	var out []doctree.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, mdBlock(n, src)...)
	}
	return out
}

func mdBlock(n ast.Node, src []byte) []doctree.Node {
	switch node := n.(type) {
	case *ast.Heading:
		return []doctree.Node{&doctree.Heading{Level: node.Level, Children: mdInlines(node, src)}}

	case *ast.Paragraph:
		return []doctree.Node{&doctree.Paragraph{Children: mdInlines(node, src)}}

	case *ast.TextBlock:
		// Tight list items hold bare text blocks rather than paragraphs.
		return []doctree.Node{&doctree.LooseText{Children: mdInlines(node, src)}}

	case *ast.Blockquote:
		return []doctree.Node{&doctree.BlockContainer{Children: mdBlocks(node, src)}}

	case *ast.List:
		return []doctree.Node{&doctree.BlockContainer{Children: mdBlocks(node, src)}}

	case *ast.ListItem:
		return []doctree.Node{&doctree.BlockContainer{Children: mdBlocks(node, src)}}

	case *ast.FencedCodeBlock:
		return []doctree.Node{&doctree.RawBlock{Literal: blockLines(node, src)}}

	case *ast.CodeBlock:
		return []doctree.Node{&doctree.RawBlock{Literal: blockLines(node, src)}}

	case *ast.HTMLBlock:
		return []doctree.Node{&doctree.RawBlock{Literal: blockLines(node, src)}}

	case *ast.ThematicBreak:
		return nil

	default:
		// Unrecognized block: keep its raw text so nothing narratable is
		// silently lost.
		if n.Type() == ast.TypeBlock {
			if t := strings.TrimSpace(blockLines(n, src)); t != "" {
				return []doctree.Node{&doctree.LooseText{
					Children: []doctree.Node{&doctree.TextRun{Text: t}},
				}}
			}
		}
		return nil
	}
}

func mdInlines(parent ast.Node, src []byte) []doctree.Node {
	var out []doctree.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, mdInline(n, src)...)
	}
	return out
}

func mdInline(n ast.Node, src []byte) []doctree.Node {
	switch node := n.(type) {
	case *ast.Text:
		t := string(node.Value(src))
		if node.HardLineBreak() || node.SoftLineBreak() {
			t += "\n"
		}
		return []doctree.Node{&doctree.TextRun{Text: t}}

	case *ast.String:
		return []doctree.Node{&doctree.TextRun{Text: string(node.Value)}}

	case *ast.Link:
		return []doctree.Node{&doctree.Link{
			Children: mdInlines(node, src),
			Target:   string(node.Destination),
		}}

	case *ast.AutoLink:
		url := string(node.URL(src))
		return []doctree.Node{&doctree.Link{
			Children: []doctree.Node{&doctree.TextRun{Text: string(node.Label(src))}},
			Target:   url,
		}}

	case *ast.Image:
		return []doctree.Node{&doctree.Image{
			Target: string(node.Destination),
			Alt:    inlineText(node, src),
		}}

	case *ast.CodeSpan:
		return []doctree.Node{&doctree.RawInline{Literal: inlineText(node, src)}}

	case *ast.RawHTML:
		return []doctree.Node{&doctree.RawInline{Literal: segmentsText(node.Segments, src)}}

	case *ast.Emphasis:
		return []doctree.Node{&doctree.InlineContainer{Children: mdInlines(node, src)}}

	default:
		// Unrecognized inline: keep its children if it has any, otherwise
		// fall back to its text content.
		if n.HasChildren() {
			return []doctree.Node{&doctree.InlineContainer{Children: mdInlines(n, src)}}
		}
		if t := inlineText(n, src); t != "" {
			return []doctree.Node{&doctree.TextRun{Text: t}}
		}
		return nil
	}
}

// blockLines assembles the source lines a block node spans.
func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

// inlineText collects the plain text beneath an inline node.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Value(src))
		} else {
			b.WriteString(inlineText(c, src))
		}
	}
	return b.String()
}

func segmentsText(segments *gtext.Segments, src []byte) string {
	if segments == nil {
		return ""
	}
	var b strings.Builder
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
