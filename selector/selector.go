// Package selector builds the immutable predicate values evaluated by the
// soup engine. Constructors are pure: they never touch a tree, and the values
// they return are freely shared across trees and goroutines.
package selector

import "github.com/pourover/soup"

// Any returns a selector matching every node regardless of kind.
func Any() soup.Selector { return anySel{} }

type anySel struct{}

func (anySel) Match(soup.Node) bool { return true }

// Tag matches elements with the given name.
func Tag(name string) soup.Selector { return tagSel{name: name} }

type tagSel struct{ name string }

func (s tagSel) Match(n soup.Node) bool {
	tag, ok := n.Tag()
	return ok && tag == s.name
}

// ID matches elements whose "id" attribute equals value exactly.
func ID(value string) soup.Selector { return Attr("id", value) }

// Class matches elements whose "class" attribute contains token as a
// whitespace-separated member: class="a b" matches Class("a") and Class("b")
// but not Class("ab").
func Class(token string) soup.Selector { return classSel{token: token} }

type classSel struct{ token string }

func (s classSel) Match(n soup.Node) bool {
	v, ok := n.Attr("class")
	return matchToken(v, ok, s.token)
}

// Attr matches nodes carrying the named attribute with exactly the given
// value. An absent attribute never matches.
func Attr(name, value string) soup.Selector { return attrSel{name: name, value: value} }

type attrSel struct{ name, value string }

func (s attrSel) Match(n soup.Node) bool {
	v, ok := n.Attr(s.name)
	return matchExact(v, ok, s.value)
}

// AttrPresent matches nodes carrying the named attribute with any value.
func AttrPresent(name string) soup.Selector { return attrPresentSel{name: name} }

type attrPresentSel struct{ name string }

func (s attrPresentSel) Match(n soup.Node) bool {
	_, ok := n.Attr(s.name)
	return ok
}

// AttrValue matches nodes carrying any attribute whose value equals value
// exactly, regardless of the attribute's name.
func AttrValue(value string) soup.Selector { return attrValueSel{value: value} }

type attrValueSel struct{ value string }

func (s attrValueSel) Match(n soup.Node) bool {
	for _, a := range n.Attrs() {
		if a.Value == s.value {
			return true
		}
	}
	return false
}

// Text matches nodes whose text payload equals value exactly.
func Text(value string) soup.Selector { return textSel{value: value} }

type textSel struct{ value string }

func (s textSel) Match(n soup.Node) bool {
	t, ok := n.Text()
	return matchExact(t, ok, s.value)
}

// And matches when every operand matches; it stops at the first false
// branch. And() with no operands matches everything.
func And(ss ...soup.Selector) soup.Selector { return andSel{ss: ss} }

type andSel struct{ ss []soup.Selector }

func (s andSel) Match(n soup.Node) bool {
	for _, sub := range s.ss {
		if !sub.Match(n) {
			return false
		}
	}
	return true
}

// Or matches when any operand matches; it stops at the first true branch.
func Or(ss ...soup.Selector) soup.Selector { return orSel{ss: ss} }

type orSel struct{ ss []soup.Selector }

func (s orSel) Match(n soup.Node) bool {
	for _, sub := range s.ss {
		if sub.Match(n) {
			return true
		}
	}
	return false
}

// Not inverts a selector.
func Not(s soup.Selector) soup.Selector { return notSel{s: s} }

type notSel struct{ s soup.Selector }

func (s notSel) Match(n soup.Node) bool { return !s.s.Match(n) }

// Descendant matches a node n when n matches target and at least one proper
// ancestor of n matches ancestor. A node never satisfies it through itself.
//
// The ancestor walk is bounded by soup.DefaultMaxDepth: Match returns only a
// bool and carries no query context, so a parent-link cycle (a structurally
// faulty backend) fails the match after that many steps instead of surfacing
// soup.ErrStructuralFault, and a per-query MaxDepth override does not apply
// here. Faults in children links are still reported by the engine itself.
func Descendant(ancestor, target soup.Selector) soup.Selector {
	return descendantSel{ancestor: ancestor, target: target}
}

type descendantSel struct{ ancestor, target soup.Selector }

func (s descendantSel) Match(n soup.Node) bool {
	if !s.target.Match(n) {
		return false
	}
	cur, ok := n.Parent()
	for steps := 0; ok && steps < soup.DefaultMaxDepth; steps++ {
		if s.ancestor.Match(cur) {
			return true
		}
		cur, ok = cur.Parent()
	}
	return false
}

// Child matches a node when it matches target and its immediate parent
// matches parent.
func Child(parent, target soup.Selector) soup.Selector {
	return childSel{parent: parent, target: target}
}

type childSel struct{ parent, target soup.Selector }

func (s childSel) Match(n soup.Node) bool {
	if !s.target.Match(n) {
		return false
	}
	p, ok := n.Parent()
	return ok && s.parent.Match(p)
}

// AdjacentTo matches a node when it matches target and its strictly
// preceding sibling matches preceding. The first child of a parent has no
// preceding sibling and never matches.
func AdjacentTo(preceding, target soup.Selector) soup.Selector {
	return adjacentSel{preceding: preceding, target: target}
}

type adjacentSel struct{ preceding, target soup.Selector }

func (s adjacentSel) Match(n soup.Node) bool {
	if !s.target.Match(n) {
		return false
	}
	prev, ok := precedingSibling(n)
	return ok && s.preceding.Match(prev)
}

// precedingSibling locates n in its parent's child list by node identity.
func precedingSibling(n soup.Node) (soup.Node, bool) {
	p, ok := n.Parent()
	if !ok {
		return nil, false
	}
	kids := p.Children()
	for i, c := range kids {
		if c == n {
			if i == 0 {
				return nil, false
			}
			return kids[i-1], true
		}
	}
	return nil, false
}
