// Package soup is a query engine for tree-shaped documents. It searches a
// parsed document for nodes matching structural and attribute predicates,
// in the style of BeautifulSoup.
//
// The engine is backend-agnostic: any parser whose tree satisfies the Node
// interface is queryable. Concrete backends live under backend/ (strict and
// lenient HTML, XML, JSON, YAML, HCL, tree-sitter); selectors are built with
// the selector package.
package soup

import "strings"

// Attr is a single attribute name/value pair. Attribute names are unique
// within a node and keep their document (insertion) order.
type Attr struct {
	Name  string
	Value string
}

// Node is the read-only capability a tree backend must expose to be
// queryable. Every accessor is O(1) or O(local fan-out); no accessor may
// traverse the tree.
//
// A Node value is a borrowed view into a position in a tree owned by its
// parser. The engine never mutates it and never outlives the owning tree.
// Implementations must be comparable values (a handle struct or a pointer):
// the engine relies on node equality to deduplicate chained query results
// and to locate siblings.
type Node interface {
	// Tag returns the element name. ok is false for non-element nodes
	// (text, comments and the like).
	Tag() (name string, ok bool)

	// Attr looks up an attribute by name. A missing attribute is a normal
	// "does not match" outcome, never an error.
	Attr(name string) (value string, ok bool)

	// Attrs returns the attributes in document order. Callers must not
	// modify the returned slice.
	Attrs() []Attr

	// Parent returns the parent node; ok is false at a root. The parent
	// link is a lookup relation only, never ownership.
	Parent() (Node, bool)

	// Children returns the ordered child nodes.
	Children() []Node

	// Text returns the node's text payload, if it has one.
	Text() (string, bool)
}

// AllText concatenates the text payloads of n and all of its descendants in
// document order. Traversal is bounded by DefaultMaxDepth so a misbehaving
// backend cannot loop it forever.
func AllText(n Node) string {
	var sb strings.Builder
	collectText(n, &sb, 0)
	return sb.String()
}

func collectText(n Node, sb *strings.Builder, depth int) {
	if depth > DefaultMaxDepth {
		return
	}
	if t, ok := n.Text(); ok {
		sb.WriteString(t)
	}
	for _, c := range n.Children() {
		collectText(c, sb, depth+1)
	}
}
