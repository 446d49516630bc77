// Package pattern turns a raw search term into a case-insensitive literal matcher.
package pattern

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// IsBlank reports whether the term is empty or whitespace only.
func IsBlank(term string) bool {
	return strings.TrimSpace(term) == ""
}

// Compile returns a case-insensitive matcher for term as a literal string.
// Returns nil for a blank term. The raw term is used untrimmed.
func Compile(term string) *regexp.Regexp {
	if IsBlank(term) {
		return nil
	}
	if !utf8.ValidString(term) {
		term = strings.ToValidUTF8(term, string(utf8.RuneError))
	}
	// QuoteMeta output is always a valid expression.
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
}
