package studentdir

import (
	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
	"github.com/kailas-cloud/studentdir/internal/domain/record"
	"github.com/kailas-cloud/studentdir/internal/domain/search/highlight"
	"github.com/kailas-cloud/studentdir/internal/domain/search/result"
)

func stateFromDomain(st loadstate.State) State {
	out := State{
		Status:   Status(st.Kind().String()),
		Revision: st.Revision(),
	}
	switch st.Kind() {
	case loadstate.Loaded:
		recs := st.Records()
		out.Records = make([]Record, len(recs))
		for i := range recs {
			out.Records[i] = recordFromDomain(&recs[i])
		}
	case loadstate.Failed:
		f := st.Failure()
		out.Err = &LoadError{
			Kind:       string(f.Kind),
			Message:    f.Message,
			StatusCode: f.StatusCode,
		}
	}
	return out
}

func recordFromDomain(r *record.Record) Record {
	return Record{
		ID:        r.ID(),
		Name:      r.Name(),
		Email:     r.Email(),
		Major:     r.Major(),
		Stage:     r.Stage(),
		Level:     r.Level(),
		AvatarURL: r.AvatarURL(),
		CreatedAt: r.CreatedAt(),
	}
}

func segmentsFromDomain(segs []highlight.Segment) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = Segment{Text: s.Text, Match: s.Match}
	}
	return out
}

func matchFromDomain(m *result.Match) Match {
	r := m.Record()
	return Match{
		Record: recordFromDomain(&r),
		Name:   segmentsFromDomain(m.Name()),
		Email:  segmentsFromDomain(m.Email()),
		Major:  segmentsFromDomain(m.Major()),
	}
}
