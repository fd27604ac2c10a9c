package domain

import (
	"strings"
	"unicode"
)

// NormalizeName prepares a contributor or user name for use as a key:
//   - trims leading/trailing whitespace
//   - compresses any run of whitespace into a single space
//
// Case is preserved, so "sarah chen" and "Sarah Chen" stay distinct.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	prevSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeText is NormalizeName folded to lower case. Keyword matching
// runs over normalized text.
func NormalizeText(text string) string {
	return strings.ToLower(NormalizeName(text))
}
