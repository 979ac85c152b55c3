// Package normalize provides canonicalization of user-supplied tag names.
//
// Tags are matched case-insensitively: "React", "react", and "REACT" are the
// same tag. The stored display name keeps whatever casing the first author
// typed; matching and uniqueness use the canonical key.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// TagName trims and collapses whitespace in a user-supplied tag name,
// preserving its casing for display. "  Next.js " -> "Next.js".
func TagName(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// TagKey converts a tag name to its canonical matching key.
// The key is lowercase with accents folded, so "Réact" and "react"
// resolve to the same tag.
//
//	"React"     → "react"
//	"  Node JS" → "node js"
//	"Café"      → "cafe"
func TagKey(input string) string {
	// Decompose accented characters (é -> e + combining accent).
	s := norm.NFKD.String(TagName(input))

	// Drop combining marks left over from decomposition.
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)

	return strings.ToLower(s)
}
