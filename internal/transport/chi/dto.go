package chi

import (
	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
	"github.com/kailas-cloud/studentdir/internal/domain/search/highlight"
	"github.com/kailas-cloud/studentdir/internal/domain/search/result"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type failureDTO struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
}

type stateDTO struct {
	State       string      `json:"state"`
	Revision    uint64      `json:"revision"`
	RecordCount int         `json:"record_count"`
	Error       *failureDTO `json:"error,omitempty"`
}

type segmentDTO struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

type highlightsDTO struct {
	Name  []segmentDTO `json:"name"`
	Email []segmentDTO `json:"email"`
	Major []segmentDTO `json:"major"`
}

type studentDTO struct {
	ID         string        `json:"id"`
	Name       string        `json:"name,omitempty"`
	Email      string        `json:"email,omitempty"`
	Major      string        `json:"major,omitempty"`
	Stage      string        `json:"stage,omitempty"`
	Level      string        `json:"level,omitempty"`
	AvatarURL  string        `json:"avatar_url,omitempty"`
	CreatedAt  string        `json:"created_at,omitempty"`
	Highlights highlightsDTO `json:"highlights"`
}

type searchResponse struct {
	Query    string       `json:"query"`
	Revision uint64       `json:"revision"`
	Total    int          `json:"total"`
	Items    []studentDTO `json:"items"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func stateToDTO(st loadstate.State) stateDTO {
	dto := stateDTO{
		State:       st.Kind().String(),
		Revision:    st.Revision(),
		RecordCount: len(st.Records()),
	}
	if st.Kind() == loadstate.Failed {
		f := st.Failure()
		dto.Error = &failureDTO{
			Kind:       string(f.Kind),
			Message:    f.Message,
			StatusCode: f.StatusCode,
		}
	}
	return dto
}

func segmentsToDTO(segs []highlight.Segment) []segmentDTO {
	out := make([]segmentDTO, len(segs))
	for i, s := range segs {
		out[i] = segmentDTO{Text: s.Text, Match: s.Match}
	}
	return out
}

func matchToDTO(m *result.Match) studentDTO {
	r := m.Record()
	return studentDTO{
		ID:        r.ID(),
		Name:      r.Name(),
		Email:     r.Email(),
		Major:     r.Major(),
		Stage:     r.Stage(),
		Level:     r.Level(),
		AvatarURL: r.AvatarURL(),
		CreatedAt: r.CreatedAt(),
		Highlights: highlightsDTO{
			Name:  segmentsToDTO(m.Name()),
			Email: segmentsToDTO(m.Email()),
			Major: segmentsToDTO(m.Major()),
		},
	}
}
