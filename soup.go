package soup

import "errors"

// ErrNoMatch is returned by First when nothing matches.
var ErrNoMatch = errors.New("soup: no match")

// Soup holds the ordered roots of a parsed document and is the usual entry
// point for queries. Backends construct it via New; see backend/htmldoc,
// backend/xmldoc and friends for document constructors.
type Soup struct {
	roots []Node
}

// New wraps the given roots, in order, as a queryable document.
func New(roots ...Node) *Soup {
	return &Soup{roots: roots}
}

// Roots returns the document's top-level nodes in order.
func (s *Soup) Roots() []Node {
	out := make([]Node, len(s.roots))
	copy(out, s.roots)
	return out
}

// Find searches the whole document recursively with no limit.
func (s *Soup) Find(sel Selector) (*MatchSet, error) {
	return Evaluate(s.roots, sel, Query{Scope: ScopeRecursive, Limit: NoLimit})
}

// FindWith searches with an explicit scope and limit.
func (s *Soup) FindWith(sel Selector, q Query) (*MatchSet, error) {
	return Evaluate(s.roots, sel, q)
}

// First returns the earliest match in document order, or ErrNoMatch.
func (s *Soup) First(sel Selector) (Node, error) {
	ms, err := Evaluate(s.roots, sel, Query{Scope: ScopeRecursive, Limit: 1})
	if err != nil {
		return nil, err
	}
	if n, ok := ms.First(); ok {
		return n, nil
	}
	return nil, ErrNoMatch
}
