// Package filter rewrites a parsed document tree into a form fit for
// speech narration. Structure that cannot be meaningfully read aloud
// (tables, figures, images, footnotes, raw markup, math, decorative rule
// art, table-of-contents runs, stub markers) is deleted or flattened in
// a single deterministic pass. The output uses the same node vocabulary
// as the input and is handed to an external stringifier.
//
// The transform is intentionally lossy: a body paragraph that happens to
// match one of the drop heuristics is removed silently. There is no
// error path and no reporting; favoring narratable text over literal
// fidelity is the contract.
package filter

import (
	"strings"

	"github.com/dgallion1/speechtree/doctree"
	"github.com/dgallion1/speechtree/textmatch"
)

// state carries the per-invocation skip flag. It is created fresh for
// every Apply call and discarded when the call returns, so concurrent
// documents never observe each other's TOC runs.
type state struct {
	insideTOC bool
}

// Apply transforms doc and returns the filtered result. The input tree
// is not modified. Applying the filter to its own output yields an
// identical tree.
func Apply(doc *doctree.Document) *doctree.Document {
	st := &state{}
	return &doctree.Document{Children: st.transformAll(doc.Children)}
}

func (st *state) transformAll(nodes []doctree.Node) []doctree.Node {
	var out []doctree.Node
	for _, n := range nodes {
		out = append(out, st.transform(n)...)
	}
	return out
}

// transform applies the per-kind rule to one node, children first, and
// returns the node's replacement sequence (empty for deletion). Kinds
// without a rule pass through untouched so future vocabulary additions
// survive the filter.
func (st *state) transform(n doctree.Node) []doctree.Node {
	switch node := n.(type) {
	case *doctree.Table, *doctree.Figure, *doctree.Image, *doctree.Footnote,
		*doctree.RawBlock, *doctree.RawInline, *doctree.Math:
		return nil

	case *doctree.Link:
		// Keep the visible text, discard the target.
		return st.transformAll(node.Children)

	case *doctree.BlockContainer:
		return st.transformAll(node.Children)

	case *doctree.InlineContainer:
		return st.transformAll(node.Children)

	case *doctree.TextRun:
		if textmatch.IsStubMarker(node.Text) {
			return nil
		}
		return []doctree.Node{&doctree.TextRun{Text: node.Text}}

	case *doctree.Heading:
		children := st.transformAll(node.Children)
		if textmatch.IsTOCLabel(doctree.FlattenAll(children)) {
			st.insideTOC = true
			return nil
		}
		// A heading never terminates an active TOC run; only a surviving
		// paragraph does.
		return []doctree.Node{&doctree.Heading{Level: node.Level, Children: children}}

	case *doctree.Paragraph:
		original := doctree.FlattenAll(node.Children)
		children := st.transformAll(node.Children)
		if !st.keepBlock(doctree.FlattenAll(children), original) {
			return nil
		}
		return []doctree.Node{&doctree.Paragraph{Children: children}}

	case *doctree.LooseText:
		original := doctree.FlattenAll(node.Children)
		children := st.transformAll(node.Children)
		if !st.keepBlock(doctree.FlattenAll(children), original) {
			return nil
		}
		return []doctree.Node{&doctree.LooseText{Children: children}}

	default:
		return []doctree.Node{n}
	}
}

// keepBlock runs the TOC skip machine for one paragraph-like block.
// text is the block's flattened content after inline rules ran; original
// is the content before (stub-marker runs are already gone from text, so
// a block that consisted only of a marker is judged on what it held).
// Rules are ordered; the first match decides.
func (st *state) keepBlock(text, original string) bool {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		if textmatch.IsStubMarker(original) {
			return false
		}
		// Collapse stray blank lines accumulated while skipping a TOC
		// run; outside one, empty blocks are preserved.
		return !st.insideTOC
	}

	if textmatch.IsTOCLabel(trimmed) {
		// TOC heading expressed as body text rather than a heading.
		st.insideTOC = true
		return false
	}

	if textmatch.IsStubMarker(trimmed) {
		return false
	}

	if st.insideTOC {
		if textmatch.ShouldDropASCIITableish(trimmed) || textmatch.LooksLikeTOCEntry(trimmed) {
			return false
		}
		// Genuine body text resumed. The block still has to clear the
		// final check below.
		st.insideTOC = false
	}

	return !textmatch.ShouldDropASCIITableish(trimmed)
}
