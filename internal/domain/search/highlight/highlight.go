// Package highlight splits field text into matched and unmatched segments.
package highlight

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/studentdir/internal/domain/search/pattern"
)

// Segment is a fragment of field text. Concatenating the segments of a
// field reproduces the field text exactly.
type Segment struct {
	Text  string
	Match bool
}

// Split segments text around literal, case-insensitive occurrences of term.
func Split(text, term string) []Segment {
	return SplitWith(text, pattern.Compile(term))
}

// SplitWith segments text using a matcher built by pattern.Compile.
// A nil matcher or empty text yields one unmatched segment.
// Matches are taken left to right without overlap.
func SplitWith(text string, re *regexp.Regexp) []Segment {
	if re == nil || text == "" {
		return []Segment{{Text: text}}
	}

	spans := re.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, 2*len(spans)+1)
	pos := 0
	for _, span := range spans {
		start, end := span[0], span[1]
		if start > pos {
			segments = append(segments, Segment{Text: text[pos:start]})
		}
		segments = append(segments, Segment{Text: text[start:end], Match: true})
		pos = end
	}
	if pos < len(text) {
		segments = append(segments, Segment{Text: text[pos:]})
	}
	return segments
}

// Join concatenates segment texts.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// HasMatch reports whether any segment is a match.
func HasMatch(segments []Segment) bool {
	for _, s := range segments {
		if s.Match {
			return true
		}
	}
	return false
}
