package soup

// MatchSet is the materialized, document-ordered result of one evaluation.
// It is immutable once produced: iterating it repeatedly or re-querying it
// never re-parses the document and never mutates the source tree.
type MatchSet struct {
	nodes []Node
}

// Len returns the number of matches.
func (m *MatchSet) Len() int { return len(m.nodes) }

// At returns the i-th match in document order.
func (m *MatchSet) At(i int) Node { return m.nodes[i] }

// Nodes returns the matches as a fresh slice in document order.
func (m *MatchSet) Nodes() []Node {
	out := make([]Node, len(m.nodes))
	copy(out, m.nodes)
	return out
}

// First returns the first match, if any.
func (m *MatchSet) First() (Node, bool) {
	if len(m.nodes) == 0 {
		return nil, false
	}
	return m.nodes[0], true
}

// Query evaluates a further selector with each member as an independent
// scope root, searching only inside the subtree below that member. The
// flattened result is deduplicated (nested members would otherwise yield
// their shared descendants twice) and stays in document order: a duplicate's
// first occurrence always comes from the earliest, outermost member.
func (m *MatchSet) Query(sel Selector, q Query) (*MatchSet, error) {
	if q.Limit == 0 {
		return &MatchSet{}, nil
	}
	sub := q
	sub.Limit = NoLimit

	out := &MatchSet{}
	seen := make(map[Node]struct{})
	for _, member := range m.nodes {
		res, err := Evaluate(member.Children(), sel, sub)
		if err != nil {
			return nil, err
		}
		for _, n := range res.nodes {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out.nodes = append(out.nodes, n)
			if q.limited() && len(out.nodes) >= q.Limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// Tags projects the element name of every member that has one.
func (m *MatchSet) Tags() []string {
	var out []string
	for _, n := range m.nodes {
		if tag, ok := n.Tag(); ok {
			out = append(out, tag)
		}
	}
	return out
}

// AttrValues projects the named attribute of every member that carries it.
func (m *MatchSet) AttrValues(name string) []string {
	var out []string
	for _, n := range m.nodes {
		if v, ok := n.Attr(name); ok {
			out = append(out, v)
		}
	}
	return out
}

// Texts projects AllText of every member.
func (m *MatchSet) Texts() []string {
	out := make([]string, len(m.nodes))
	for i, n := range m.nodes {
		out[i] = AllText(n)
	}
	return out
}
