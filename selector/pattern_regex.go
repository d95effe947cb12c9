//go:build !soupnoregex

package selector

import (
	"fmt"
	"regexp"
)

// PatternAvailable reports whether the regex capability is compiled in.
const PatternAvailable = true

type pattern struct {
	re *regexp.Regexp
}

func compilePattern(expr string) (pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return pattern{}, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	return pattern{re: re}, nil
}

func (p pattern) match(s string) bool { return p.re.MatchString(s) }
