// Package dom is the index-based arena document shared by the tree-building
// backends. Nodes are stored flat and addressed by uint32 handles; parent and
// child links are indices, never pointers, so a document can be dropped as a
// whole and no reference cycles exist.
package dom

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
	"github.com/pourover/soup"
)

// Kind classifies a stored node.
type Kind uint8

const (
	KindElement Kind = iota
	// KindRawElement is an element whose body is an opaque text payload
	// (script/style-like); it never has children.
	KindRawElement
	KindText
	KindComment
	KindDoctype
)

// noParent marks root nodes.
const noParent = int32(-1)

type nodeData struct {
	kind     Kind
	tag      string
	attrs    []soup.Attr
	text     string
	parent   int32
	children []uint32
}

// Document owns the arena. It is immutable once the Builder is done.
type Document struct {
	nodes []nodeData
	roots []uint32
}

// Len returns the total number of stored nodes.
func (d *Document) Len() int { return len(d.nodes) }

// Roots returns the top-level nodes in document order.
func (d *Document) Roots() []soup.Node {
	out := make([]soup.Node, len(d.roots))
	for i, id := range d.roots {
		out[i] = Node{doc: d, id: id}
	}
	return out
}

// Soup wraps the document's roots as a queryable soup.Soup.
func (d *Document) Soup() *soup.Soup {
	return soup.New(d.Roots()...)
}

// Validate checks the rooted-acyclic contract: every node is reachable from
// exactly one place, children agree with parent links, and no node is
// orphaned. Node handles are uint32, so the visited set is a roaring bitmap.
func (d *Document) Validate() error {
	visited := roaring.New()
	var visit func(id uint32, parent int32) error
	visit = func(id uint32, parent int32) error {
		if int(id) >= len(d.nodes) {
			return fmt.Errorf("dom: child handle %d out of range", id)
		}
		if !visited.CheckedAdd(id) {
			return fmt.Errorf("dom: node %d reachable twice (cycle or shared child)", id)
		}
		if d.nodes[id].parent != parent {
			return fmt.Errorf("dom: node %d parent link %d, reached from %d", id, d.nodes[id].parent, parent)
		}
		for _, c := range d.nodes[id].children {
			if err := visit(c, int32(id)); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range d.roots {
		if err := visit(r, noParent); err != nil {
			return err
		}
	}
	if got, want := visited.GetCardinality(), uint64(len(d.nodes)); got != want {
		return fmt.Errorf("dom: %d of %d nodes reachable from roots", got, want)
	}
	return nil
}

// Node is a handle into a Document. It implements soup.Node and is
// comparable, as the engine requires.
type Node struct {
	doc *Document
	id  uint32
}

func (n Node) data() *nodeData { return &n.doc.nodes[n.id] }

// Kind returns the stored node kind.
func (n Node) Kind() Kind { return n.data().kind }

// ID returns the node's arena handle.
func (n Node) ID() uint32 { return n.id }

// Tag implements soup.Node.
func (n Node) Tag() (string, bool) {
	switch n.data().kind {
	case KindElement, KindRawElement:
		return n.data().tag, true
	default:
		return "", false
	}
}

// Attr implements soup.Node.
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.data().attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs implements soup.Node.
func (n Node) Attrs() []soup.Attr { return n.data().attrs }

// Parent implements soup.Node.
func (n Node) Parent() (soup.Node, bool) {
	p := n.data().parent
	if p == noParent {
		return nil, false
	}
	return Node{doc: n.doc, id: uint32(p)}, true
}

// Children implements soup.Node.
func (n Node) Children() []soup.Node {
	ids := n.data().children
	if len(ids) == 0 {
		return nil
	}
	out := make([]soup.Node, len(ids))
	for i, id := range ids {
		out[i] = Node{doc: n.doc, id: id}
	}
	return out
}

// Text implements soup.Node. Text nodes and raw elements carry a payload;
// comments and doctypes do not contribute text.
func (n Node) Text() (string, bool) {
	switch n.data().kind {
	case KindText, KindRawElement:
		return n.data().text, true
	default:
		return "", false
	}
}

// Comment returns the payload of a comment or doctype node.
func (n Node) Comment() (string, bool) {
	switch n.data().kind {
	case KindComment, KindDoctype:
		return n.data().text, true
	default:
		return "", false
	}
}
