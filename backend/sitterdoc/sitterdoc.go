// Package sitterdoc makes tree-sitter parse trees queryable. Named syntax
// nodes become elements tagged with the node type; a node's field name in
// its parent becomes a "field" attribute; leaves carry their source text.
package sitterdoc

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pourover/soup"
	"github.com/pourover/soup/internal/dom"
)

// Convert snapshots the named nodes of a parse tree into a queryable
// document. Anonymous tokens (punctuation, keywords) are skipped.
func Convert(root *sitter.Node, source []byte) *soup.Soup {
	return ConvertDocument(root, source).Soup()
}

// ConvertDocument is Convert returning the underlying arena.
func ConvertDocument(root *sitter.Node, source []byte) *dom.Document {
	b := dom.NewBuilder()
	appendNode(b, dom.Root, root, "", source)
	return b.Document()
}

func appendNode(b *dom.Builder, parent dom.NodeID, n *sitter.Node, field string, source []byte) {
	var attrs []soup.Attr
	if field != "" {
		attrs = append(attrs, soup.Attr{Name: "field", Value: field})
	}
	if n.NamedChildCount() == 0 {
		b.RawElement(parent, n.Type(), attrs, n.Content(source))
		return
	}
	el := b.Element(parent, n.Type(), attrs)
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		appendNode(b, el, child, n.FieldNameForChild(i), source)
	}
}
