// Package strings provides string manipulation utilities shared by the server
// and the embedded browser form.
package strings

import (
	"strings"
)

// IsSpace reports whether r belongs to the ECMAScript WhiteSpace or
// LineTerminator productions. This is the set matched by `\s` in a browser
// regular expression and stripped by String.prototype.trim, which differs
// from unicode.IsSpace (U+0085 is excluded, U+FEFF is included).
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// TrimSpace removes leading and trailing IsSpace runes.
//
// Example:
//
//	TrimSpace("  Jane\t")
//	// Returns: "Jane"
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// ContainsSpace reports whether any rune of s satisfies IsSpace.
func ContainsSpace(s string) bool {
	return strings.IndexFunc(s, IsSpace) >= 0
}
