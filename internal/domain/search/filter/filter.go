package filter

import (
	"regexp"

	"github.com/kailas-cloud/studentdir/internal/domain/record"
	"github.com/kailas-cloud/studentdir/internal/domain/search/pattern"
)

// Apply returns the records whose name, email or major contains term,
// case-insensitively and literally. Order is preserved.
// A blank term returns records itself.
func Apply(records []record.Record, term string) []record.Record {
	return ApplyWith(records, pattern.Compile(term))
}

// ApplyWith filters with a matcher built by pattern.Compile.
// A nil matcher returns records itself.
func ApplyWith(records []record.Record, re *regexp.Regexp) []record.Record {
	if re == nil {
		return records
	}
	out := make([]record.Record, 0, len(records))
	for i := range records {
		if MatchesWith(&records[i], re) {
			out = append(out, records[i])
		}
	}
	return out
}

// Matches reports whether r matches term.
func Matches(r *record.Record, term string) bool {
	re := pattern.Compile(term)
	if re == nil {
		return true
	}
	return MatchesWith(r, re)
}

// MatchesWith reports whether any searchable field of r contains a match.
// Empty fields never match.
func MatchesWith(r *record.Record, re *regexp.Regexp) bool {
	for _, v := range SearchableFields(r) {
		if v != "" && re.MatchString(v) {
			return true
		}
	}
	return false
}

// SearchableFields returns name, email and major in that order.
func SearchableFields(r *record.Record) [3]string {
	return [3]string{r.Name(), r.Email(), r.Major()}
}
