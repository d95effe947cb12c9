//go:build soupnoregex

package selector

// PatternAvailable reports whether the regex capability is compiled in.
const PatternAvailable = false

type pattern struct{}

func compilePattern(string) (pattern, error) {
	return pattern{}, ErrPatternUnavailable
}

func (pattern) match(string) bool { return false }
