package health

import (
	"context"

	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
)

// CachePinger checks snapshot cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// StateReader exposes the directory load state.
type StateReader interface {
	State() loadstate.State
}
