package directory

import (
	"context"

	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
	"github.com/kailas-cloud/studentdir/internal/domain/record"
)

// Fetcher retrieves the full record collection from the source.
// Errors should be *domain.FetchError; anything else counts as a network failure.
type Fetcher interface {
	Fetch(ctx context.Context) ([]record.Record, error)
}

// Listener observes state transitions. It runs synchronously under no lock
// and must not call back into Load.
type Listener func(from, to loadstate.State)
