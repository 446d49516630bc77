package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork signals a transport-level failure reaching the source.
	ErrNetwork = errors.New("network failure")
	// ErrHTTPStatus signals a non-success response status from the source.
	ErrHTTPStatus = errors.New("unexpected response status")
	// ErrDecode signals a response body that is not a valid record array.
	ErrDecode = errors.New("malformed response")
	// ErrNotLoaded signals that the directory has no loaded record set.
	ErrNotLoaded = errors.New("directory not loaded")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// FailureKind classifies why a fetch failed.
type FailureKind string

// Failure kinds, one per sentinel.
const (
	FailureNetwork    FailureKind = "network"
	FailureHTTPStatus FailureKind = "http_status"
	FailureDecode     FailureKind = "decode"
)

// Sentinel returns the sentinel error for the kind.
func (k FailureKind) Sentinel() error {
	switch k {
	case FailureHTTPStatus:
		return ErrHTTPStatus
	case FailureDecode:
		return ErrDecode
	default:
		return ErrNetwork
	}
}

// FailureSummary prefixes every human-readable fetch failure.
const FailureSummary = "Failed to fetch students"

// FetchError is a classified source failure.
type FetchError struct {
	Kind       FailureKind
	StatusCode int // set for FailureHTTPStatus only
	Err        error
}

// NewNetworkError wraps a transport error.
func NewNetworkError(err error) *FetchError {
	return &FetchError{Kind: FailureNetwork, Err: err}
}

// NewStatusError records a non-success status code.
func NewStatusError(code int) *FetchError {
	return &FetchError{Kind: FailureHTTPStatus, StatusCode: code}
}

// NewDecodeError wraps a body decoding error.
func NewDecodeError(err error) *FetchError {
	return &FetchError{Kind: FailureDecode, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.Sentinel(), e.Err)
	}
	if e.Kind == FailureHTTPStatus {
		return fmt.Sprintf("%s %d", e.Kind.Sentinel(), e.StatusCode)
	}
	return e.Kind.Sentinel().Error()
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.Sentinel()}
	}
	return []error{e.Kind.Sentinel(), e.Err}
}

// Message renders the failure for display.
func (e *FetchError) Message() string {
	switch e.Kind {
	case FailureHTTPStatus:
		text := http.StatusText(e.StatusCode)
		if text == "" {
			return fmt.Sprintf("%s: server responded with status %d", FailureSummary, e.StatusCode)
		}
		return fmt.Sprintf("%s: server responded with status %d (%s)", FailureSummary, e.StatusCode, text)
	case FailureDecode:
		return FailureSummary + ": malformed response"
	default:
		return FailureSummary + ": network error"
	}
}

// ClassifyFetchError turns any error into a FetchError.
// Unclassified errors are treated as network failures.
func ClassifyFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return NewNetworkError(err)
}
