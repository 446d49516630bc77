package studentdir

// Status is the lifecycle phase of the directory.
type Status string

// Directory phases.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// State is a snapshot of the directory.
type State struct {
	Status   Status
	Revision uint64     // number of successful loads
	Records  []Record   // nil unless Status is StatusLoaded
	Err      *LoadError // nil unless Status is StatusFailed
}

// Record is one student.
type Record struct {
	ID        string
	Name      string
	Email     string
	Major     string
	Stage     string
	Level     string
	AvatarURL string
	CreatedAt string
}

// Segment is a contiguous piece of a field; Match marks the highlighted parts.
type Segment struct {
	Text  string
	Match bool
}

// Match is a record that satisfied a search, with its searchable fields segmented.
type Match struct {
	Record Record
	Name   []Segment
	Email  []Segment
	Major  []Segment
}
