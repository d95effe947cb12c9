package selector

import "strings"

// Attribute value comparison modes. Each is a pure function of the looked-up
// value (plus its presence) and the rule; an absent value never matches.

func matchExact(value string, present bool, want string) bool {
	return present && value == want
}

// matchToken splits the value on whitespace and tests set membership.
func matchToken(value string, present bool, token string) bool {
	if !present || token == "" {
		return false
	}
	for _, f := range strings.Fields(value) {
		if f == token {
			return true
		}
	}
	return false
}
