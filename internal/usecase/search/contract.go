package search

import "github.com/kailas-cloud/studentdir/internal/domain/loadstate"

// StateReader exposes the loader's current state.
type StateReader interface {
	State() loadstate.State
}
