package result

import (
	"github.com/kailas-cloud/studentdir/internal/domain/record"
	"github.com/kailas-cloud/studentdir/internal/domain/search/highlight"
)

// Match is a record that passed the filter, with its searchable fields segmented.
type Match struct {
	record record.Record
	name   []highlight.Segment
	email  []highlight.Segment
	major  []highlight.Segment
}

// New creates a search match.
func New(r record.Record, name, email, major []highlight.Segment) Match {
	return Match{record: r, name: name, email: email, major: major}
}

// Record returns the matched record.
func (m *Match) Record() record.Record { return m.record }

// Name returns the segmented name.
func (m *Match) Name() []highlight.Segment { return m.name }

// Email returns the segmented email.
func (m *Match) Email() []highlight.Segment { return m.email }

// Major returns the segmented major.
func (m *Match) Major() []highlight.Segment { return m.major }
