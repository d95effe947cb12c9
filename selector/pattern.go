package selector

import (
	"errors"

	"github.com/pourover/soup"
)

// ErrBadPattern reports an invalid regular expression, detected at selector
// construction so a malformed selector can never reach the engine.
var ErrBadPattern = errors.New("selector: invalid pattern")

// ErrPatternUnavailable reports that the regex capability was compiled out
// (the soupnoregex build tag). Pattern selectors are unconstructible then;
// absence is a construction-time error, never a silent no-match.
var ErrPatternUnavailable = errors.New("selector: pattern matching not compiled in")

// AttrPattern matches nodes whose named attribute matches the regular
// expression expr. The pattern is compiled once here and cached on the
// returned value, so repeated evaluations never recompile.
func AttrPattern(name, expr string) (soup.Selector, error) {
	p, err := compilePattern(expr)
	if err != nil {
		return nil, err
	}
	return attrPatternSel{name: name, p: p}, nil
}

type attrPatternSel struct {
	name string
	p    pattern
}

func (s attrPatternSel) Match(n soup.Node) bool {
	v, ok := n.Attr(s.name)
	return ok && s.p.match(v)
}

// TextPattern matches nodes whose text payload matches the regular
// expression expr.
func TextPattern(expr string) (soup.Selector, error) {
	p, err := compilePattern(expr)
	if err != nil {
		return nil, err
	}
	return textPatternSel{p: p}, nil
}

type textPatternSel struct{ p pattern }

func (s textPatternSel) Match(n soup.Node) bool {
	t, ok := n.Text()
	return ok && s.p.match(t)
}
