package loadstate

import (
	"github.com/kailas-cloud/studentdir/internal/domain"
	"github.com/kailas-cloud/studentdir/internal/domain/record"
)

// Kind is the lifecycle phase of the directory fetch.
type Kind int

// Exactly one kind is active at a time.
const (
	Idle Kind = iota
	Loading
	Loaded
	Failed
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Failure describes why the last load failed.
type Failure struct {
	Kind       domain.FailureKind
	Message    string
	StatusCode int
}

// State is an immutable snapshot of the loader.
type State struct {
	kind     Kind
	records  []record.Record
	revision uint64
	failure  Failure
}

// Initial returns the Idle state.
func Initial() State { return State{kind: Idle} }

// Kind returns the active phase.
func (s State) Kind() Kind { return s.kind }

// Records returns the loaded record set; nil unless Loaded.
func (s State) Records() []record.Record {
	if s.kind != Loaded {
		return nil
	}
	return s.records
}

// Revision counts successful loads. It identifies a loaded record set.
func (s State) Revision() uint64 { return s.revision }

// Failure returns the failure details; zero unless Failed.
func (s State) Failure() Failure {
	if s.kind != Failed {
		return Failure{}
	}
	return s.failure
}

// Message returns the failure message, empty unless Failed.
func (s State) Message() string { return s.Failure().Message }

// EventType enumerates loader events.
type EventType int

// Loader events.
const (
	EventStarted EventType = iota
	EventSucceeded
	EventFailed
)

// Event drives a transition.
type Event struct {
	typ     EventType
	records []record.Record
	err     error
}

// Started is emitted when a fetch begins.
func Started() Event { return Event{typ: EventStarted} }

// Succeeded is emitted with the decoded record set.
func Succeeded(records []record.Record) Event {
	return Event{typ: EventSucceeded, records: records}
}

// FailedWith is emitted when the fetch fails.
func FailedWith(err error) Event { return Event{typ: EventFailed, err: err} }

// Type returns the event type.
func (e Event) Type() EventType { return e.typ }

// Next returns the state after applying e to s.
// Completion events outside Loading are ignored, as is Started while Loading.
func Next(s State, e Event) State {
	switch e.typ {
	case EventStarted:
		if s.kind == Loading {
			return s
		}
		// Records from a previous load are dropped: Loading never exposes them.
		return State{kind: Loading, revision: s.revision}
	case EventSucceeded:
		if s.kind != Loading {
			return s
		}
		records := e.records
		if records == nil {
			records = []record.Record{}
		}
		return State{kind: Loaded, records: records, revision: s.revision + 1}
	case EventFailed:
		if s.kind != Loading {
			return s
		}
		fe := domain.ClassifyFetchError(e.err)
		return State{
			kind:     Failed,
			revision: s.revision,
			failure: Failure{
				Kind:       fe.Kind,
				Message:    fe.Message(),
				StatusCode: fe.StatusCode,
			},
		}
	default:
		return s
	}
}
