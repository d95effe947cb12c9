package soup

import (
	"errors"
	"fmt"
)

// ErrStructuralFault reports a backend tree that violates the rooted-acyclic
// contract (for example a cycle reachable through children links). Traversal
// is bounded by a depth ceiling instead of looping forever.
var ErrStructuralFault = errors.New("soup: structural fault in backend tree")

// Selector decides whether a single node matches. Selector values are
// immutable: they are built once (see the selector package), never touch a
// tree during construction, and may be shared across trees and goroutines.
//
// A nil Selector matches every node.
type Selector interface {
	Match(Node) bool
}

// Scope controls which nodes of the starting set are candidates.
type Scope int

const (
	// ScopeRecursive makes each start node and all of its descendants
	// candidates, visited in pre-order.
	ScopeRecursive Scope = iota
	// ScopeChildren restricts candidates to the start nodes themselves,
	// in order. A Soup's start nodes are the document's immediate children.
	ScopeChildren
)

// NoLimit disables the result limit.
const NoLimit = -1

// DefaultMaxDepth bounds tree depth during traversal and ancestor walks.
// Trees deeper than this are treated as structurally faulty.
const DefaultMaxDepth = 4096

// Query bundles the traversal scope with optional bounds.
type Query struct {
	Scope Scope
	// Limit stops the search once this many matches are collected. The
	// result is exactly the first Limit matches of the unbounded result.
	// Negative means unbounded; zero yields an empty set.
	Limit int
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

func (q Query) maxDepth() int {
	if q.MaxDepth > 0 {
		return q.MaxDepth
	}
	return DefaultMaxDepth
}

func (q Query) limited() bool { return q.Limit >= 0 }

// Evaluate runs sel over the start nodes and returns the matches in document
// order. It is the single evaluation primitive; Soup.Find and MatchSet.Query
// are built on it.
//
// Evaluation is total for contract-respecting trees: the only possible error
// is ErrStructuralFault from the depth ceiling.
func Evaluate(starts []Node, sel Selector, q Query) (*MatchSet, error) {
	ms := &MatchSet{}
	if q.Scope == ScopeChildren {
		for _, n := range starts {
			if q.limited() && len(ms.nodes) >= q.Limit {
				break
			}
			if sel == nil || sel.Match(n) {
				ms.nodes = append(ms.nodes, n)
			}
		}
		if q.limited() && len(ms.nodes) > q.Limit {
			ms.nodes = ms.nodes[:q.Limit]
		}
		return ms, nil
	}

	for _, n := range starts {
		done, err := walk(n, sel, q, 0, ms)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return ms, nil
}

// walk visits n and its subtree in pre-order, appending matches to ms.
// It reports done once the limit is reached.
func walk(n Node, sel Selector, q Query, depth int, ms *MatchSet) (bool, error) {
	if depth > q.maxDepth() {
		return false, fmt.Errorf("%w: depth ceiling %d exceeded", ErrStructuralFault, q.maxDepth())
	}
	if q.limited() && len(ms.nodes) >= q.Limit {
		return true, nil
	}
	if sel == nil || sel.Match(n) {
		ms.nodes = append(ms.nodes, n)
		if q.limited() && len(ms.nodes) >= q.Limit {
			return true, nil
		}
	}
	for _, c := range n.Children() {
		done, err := walk(c, sel, q, depth+1, ms)
		if err != nil || done {
			return done, err
		}
	}
	return false, nil
}
