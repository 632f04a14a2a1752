// Package slug turns display names into URL-safe identifiers.
package slug

import "strings"

// DefaultToken is used when a name reduces to nothing.
const DefaultToken = "company"

// Make produces a lowercase token containing only [a-z0-9-]: disallowed
// characters are dropped, whitespace runs become a single hyphen, hyphen
// runs collapse, and leading/trailing hyphens are trimmed. Deterministic
// for a given input.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	prevHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		case r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	s := strings.Trim(b.String(), "-")
	if s == "" {
		return DefaultToken
	}
	return s
}
