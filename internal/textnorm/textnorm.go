// Package textnorm folds free text into the lowercase alphanumeric form used for
// search matching, record ids, and state labels.
package textnorm

import (
	"strings"
)

// Normalize lowercases s and collapses every run of characters outside
// [a-z0-9] into a single space, trimming the ends. Normalize is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteByte(c)
			continue
		}
		pendingSpace = true
	}

	return b.String()
}

// Slugify returns the hyphenated form of Normalize(s).
func Slugify(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "-")
}

// stateAliases maps spellings that refer to the same state section.
var stateAliases = map[string]string{
	"NEW YORK STATE": "NEW YORK",
	"NEW YORK CITY":  "NEW YORK",
}

// NormalizeState canonicalizes a state heading: upper case, periods removed,
// hyphens treated as spaces, whitespace collapsed.
func NormalizeState(name string) string {
	value := strings.ToUpper(strings.TrimSpace(name))
	value = strings.ReplaceAll(value, ".", "")
	value = strings.ReplaceAll(value, "-", " ")
	value = strings.Join(strings.Fields(value), " ")

	if alias, ok := stateAliases[value]; ok {
		return alias
	}
	return value
}
