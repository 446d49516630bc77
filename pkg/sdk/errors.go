package studentdir

import "github.com/kailas-cloud/studentdir/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNetwork    = domain.ErrNetwork
	ErrHTTPStatus = domain.ErrHTTPStatus
	ErrDecode     = domain.ErrDecode
	ErrNotLoaded  = domain.ErrNotLoaded
)

// LoadError describes why the last load failed.
type LoadError struct {
	Kind       string // "network", "http_status" or "decode"
	Message    string // human readable, starts with "Failed to fetch students"
	StatusCode int    // set for "http_status" only
}

func (e *LoadError) Error() string { return e.Message }

// Unwrap returns the sentinel for the failure kind.
func (e *LoadError) Unwrap() error {
	return domain.FailureKind(e.Kind).Sentinel()
}
