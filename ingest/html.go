package ingest

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/speechtree/doctree"
)

// HTML maps a parsed HTML tree into a Document. EPUB chapters arrive as
// XHTML, so this is the main intake path for book content. Content is
// taken from <body> when present, otherwise from the whole tree.
func HTML(root *html.Node) *doctree.Document {
	body := findBody(root)
	if body == nil {
		body = root
	}
	return &doctree.Document{Children: htmlBlocks(body)}
}

func htmlBlocks(parent *html.Node) []doctree.Node {
	var out []doctree.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, htmlBlock(c)...)
	}
	return out
}

func htmlBlock(n *html.Node) []doctree.Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return []doctree.Node{&doctree.LooseText{
			Children: []doctree.Node{&doctree.TextRun{Text: n.Data}},
		}}

	case html.ElementNode:
		if level := headingLevel(n.Data); level > 0 {
			return []doctree.Node{&doctree.Heading{Level: level, Children: htmlInlines(n)}}
		}

		switch n.Data {
		case "script", "style", "nav", "head":
			return nil
		case "p":
			return []doctree.Node{&doctree.Paragraph{Children: htmlInlines(n)}}
		case "li", "td", "th", "dt", "dd", "caption":
			if hasBlockChild(n) {
				return []doctree.Node{&doctree.BlockContainer{Children: htmlBlocks(n)}}
			}
			return []doctree.Node{&doctree.LooseText{Children: htmlInlines(n)}}
		case "blockquote", "ul", "ol", "dl", "tr", "thead", "tbody", "tfoot",
			"div", "section", "article", "main", "aside", "header", "footer", "body":
			return []doctree.Node{&doctree.BlockContainer{Children: htmlBlocks(n)}}
		case "table":
			return []doctree.Node{&doctree.Table{Children: htmlBlocks(n)}}
		case "figure":
			return []doctree.Node{&doctree.Figure{Children: htmlBlocks(n)}}
		case "img":
			return []doctree.Node{&doctree.Image{Target: attr(n, "src"), Alt: attr(n, "alt")}}
		case "pre":
			return []doctree.Node{&doctree.RawBlock{Literal: textContent(n)}}
		case "hr", "br":
			return nil
		default:
			// Unknown element: treat as a transparent wrapper.
			return htmlBlocks(n)
		}
	}
	return nil
}

func htmlInlines(parent *html.Node) []doctree.Node {
	var out []doctree.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, htmlInline(c)...)
	}
	return out
}

func htmlInline(n *html.Node) []doctree.Node {
	switch n.Type {
	case html.TextNode:
		return []doctree.Node{&doctree.TextRun{Text: n.Data}}

	case html.ElementNode:
		switch n.Data {
		case "a":
			return []doctree.Node{&doctree.Link{
				Children: htmlInlines(n),
				Target:   attr(n, "href"),
			}}
		case "img":
			return []doctree.Node{&doctree.Image{Target: attr(n, "src"), Alt: attr(n, "alt")}}
		case "code", "kbd", "samp":
			return []doctree.Node{&doctree.RawInline{Literal: textContent(n)}}
		case "br":
			return []doctree.Node{&doctree.TextRun{Text: "\n"}}
		case "script", "style":
			return nil
		default:
			return []doctree.Node{&doctree.InlineContainer{Children: htmlInlines(n)}}
		}
	}
	return nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "p", "ul", "ol", "dl", "blockquote", "table", "figure", "pre", "div":
			return true
		}
		if headingLevel(c.Data) > 0 {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(b.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
