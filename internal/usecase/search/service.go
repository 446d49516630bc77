package search

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/studentdir/internal/domain"
	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
	"github.com/kailas-cloud/studentdir/internal/domain/record"
	"github.com/kailas-cloud/studentdir/internal/domain/search/filter"
	"github.com/kailas-cloud/studentdir/internal/domain/search/highlight"
	"github.com/kailas-cloud/studentdir/internal/domain/search/pattern"
	"github.com/kailas-cloud/studentdir/internal/domain/search/result"
	"github.com/kailas-cloud/studentdir/internal/logger"
	"github.com/kailas-cloud/studentdir/internal/metrics"
)

// DefaultMemoSize is the number of (revision, term) derivations kept.
const DefaultMemoSize = 256

// NotLoadedError is returned when searching before a record set is loaded.
type NotLoadedError struct {
	State loadstate.State
}

func (e *NotLoadedError) Error() string {
	return fmt.Sprintf("%s: state is %s", domain.ErrNotLoaded, e.State.Kind())
}

func (e *NotLoadedError) Unwrap() error { return domain.ErrNotLoaded }

type memoKey struct {
	revision uint64
	term     string
}

// Service derives filtered, highlighted views of the loaded directory.
type Service struct {
	states StateReader
	memo   *lru.Cache[memoKey, []result.Match]
}

// New creates a search service. memoSize <= 0 uses DefaultMemoSize.
func New(states StateReader, memoSize int) *Service {
	if memoSize <= 0 {
		memoSize = DefaultMemoSize
	}
	memo, err := lru.New[memoKey, []result.Match](memoSize)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(fmt.Sprintf("failed to create search memo: %v", err))
	}
	return &Service{states: states, memo: memo}
}

// Page is the derived view of one record set revision.
type Page struct {
	Revision uint64
	Matches  []result.Match
}

// Search returns the matches for term in the current record set.
// The returned slice is shared with the memo and must not be modified.
func (s *Service) Search(ctx context.Context, term string) ([]result.Match, error) {
	page, err := s.Query(ctx, term)
	if err != nil {
		return nil, err
	}
	return page.Matches, nil
}

// Query is Search plus the revision the matches were derived from.
func (s *Service) Query(ctx context.Context, term string) (Page, error) {
	st := s.states.State()
	if st.Kind() != loadstate.Loaded {
		return Page{}, &NotLoadedError{State: st}
	}

	start := time.Now()
	key := memoKey{revision: st.Revision(), term: term}
	if pattern.IsBlank(term) {
		key.term = ""
	}

	if matches, ok := s.memo.Get(key); ok {
		metrics.SearchDuration.WithLabelValues("hit").Observe(time.Since(start).Seconds())
		return Page{Revision: st.Revision(), Matches: matches}, nil
	}

	matches := Derive(st.Records(), term)
	s.memo.Add(key, matches)

	elapsed := time.Since(start)
	metrics.SearchDuration.WithLabelValues("miss").Observe(elapsed.Seconds())
	logger.FromContext(ctx).Debug("search derived",
		zap.String("term", term),
		zap.Uint64("revision", st.Revision()),
		zap.Int("matches", len(matches)),
		zap.Duration("elapsed", elapsed),
	)
	return Page{Revision: st.Revision(), Matches: matches}, nil
}

// Derive filters records by term and segments the searchable fields of each match.
// It is a pure function of its inputs; output order equals input order.
func Derive(records []record.Record, term string) []result.Match {
	re := pattern.Compile(term)
	kept := filter.ApplyWith(records, re)

	matches := make([]result.Match, len(kept))
	for i := range kept {
		r := &kept[i]
		matches[i] = result.New(*r,
			highlight.SplitWith(r.Name(), re),
			highlight.SplitWith(r.Email(), re),
			highlight.SplitWith(r.Major(), re),
		)
	}
	return matches
}
