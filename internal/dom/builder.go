package dom

import "github.com/pourover/soup"

// NodeID addresses a node during building. Root is the synthetic parent of
// top-level nodes.
type NodeID = int32

// Root is the parent ID for top-level nodes.
const Root NodeID = noParent

// Builder appends nodes to a fresh Document. It is append-only: the arena
// grows monotonically and parent links are fixed at append time, which makes
// cycles unconstructible through this API.
type Builder struct {
	doc *Document
}

func NewBuilder() *Builder {
	return &Builder{doc: &Document{}}
}

func (b *Builder) append(parent NodeID, nd nodeData) NodeID {
	id := uint32(len(b.doc.nodes))
	nd.parent = parent
	b.doc.nodes = append(b.doc.nodes, nd)
	if parent == Root {
		b.doc.roots = append(b.doc.roots, id)
	} else {
		p := &b.doc.nodes[parent]
		p.children = append(p.children, id)
	}
	return NodeID(id)
}

// Element appends an element node under parent.
func (b *Builder) Element(parent NodeID, tag string, attrs []soup.Attr) NodeID {
	return b.append(parent, nodeData{kind: KindElement, tag: tag, attrs: attrs})
}

// RawElement appends a raw element (opaque text body, no children).
func (b *Builder) RawElement(parent NodeID, tag string, attrs []soup.Attr, content string) NodeID {
	return b.append(parent, nodeData{kind: KindRawElement, tag: tag, attrs: attrs, text: content})
}

// Text appends a text node under parent.
func (b *Builder) Text(parent NodeID, text string) NodeID {
	return b.append(parent, nodeData{kind: KindText, text: text})
}

// Comment appends a comment node under parent.
func (b *Builder) Comment(parent NodeID, text string) NodeID {
	return b.append(parent, nodeData{kind: KindComment, text: text})
}

// Doctype appends a doctype node under parent.
func (b *Builder) Doctype(parent NodeID, text string) NodeID {
	return b.append(parent, nodeData{kind: KindDoctype, text: text})
}

// Document finishes building and returns the arena. The Builder must not be
// used afterwards.
func (b *Builder) Document() *Document {
	d := b.doc
	b.doc = nil
	return d
}
