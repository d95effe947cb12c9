package htmldoc

import (
	"fmt"
	"strings"

	"github.com/pourover/soup"
	"github.com/pourover/soup/internal/dom"
	"golang.org/x/net/html"
)

// Parse parses src leniently, working through malformed markup the way a
// browser would (implicit html/head/body, recovered tags).
func Parse(src string) (*soup.Soup, error) {
	d, err := ParseDocument(src)
	if err != nil {
		return nil, err
	}
	return d.Soup(), nil
}

// ParseDocument is Parse returning the underlying arena.
func ParseDocument(src string) (*dom.Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("htmldoc: lenient parse: %w", err)
	}
	b := dom.NewBuilder()
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		convertLenient(b, dom.Root, c)
	}
	return b.Document(), nil
}

func convertLenient(b *dom.Builder, parent dom.NodeID, n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		attrs := make([]soup.Attr, 0, len(n.Attr))
		for _, a := range n.Attr {
			attrs = append(attrs, soup.Attr{Name: a.Key, Value: a.Val})
		}
		if rawElements[n.Data] {
			var body strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					body.WriteString(c.Data)
				}
			}
			b.RawElement(parent, n.Data, attrs, strings.TrimSpace(body.String()))
			return
		}
		el := b.Element(parent, n.Data, attrs)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			convertLenient(b, el, c)
		}
	case html.TextNode:
		b.Text(parent, n.Data)
	case html.CommentNode:
		b.Comment(parent, n.Data)
	case html.DoctypeNode:
		b.Doctype(parent, n.Data)
	}
}
