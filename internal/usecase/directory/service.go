package directory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
	"github.com/kailas-cloud/studentdir/internal/metrics"
)

// Service owns the directory LoadState and drives fetches from the source.
type Service struct {
	fetcher Fetcher
	logger  *zap.Logger
	timeout time.Duration

	group singleflight.Group

	mu        sync.RWMutex
	state     loadstate.State
	cycle     uint64
	listeners []Listener
}

// New creates a loader in the Idle state.
func New(fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		logger:  logger,
		state:   loadstate.Initial(),
	}
}

// WithTimeout bounds every fetch. Zero disables the bound.
func (s *Service) WithTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// Subscribe registers a transition listener.
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// State returns the current state.
func (s *Service) State() loadstate.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Load fetches the collection and returns the terminal state of the load.
// The state moves to Loading before Load blocks. A call made while another
// load is in flight joins it instead of starting a second fetch; all joined
// callers observe the same terminal state.
// The fetch is detached from ctx cancellation and bounded by the loader timeout.
func (s *Service) Load(ctx context.Context) loadstate.State {
	detached := context.WithoutCancel(ctx)
	for {
		cycle := s.start()
		ch := s.group.DoChan(strconv.FormatUint(cycle, 10), func() (any, error) {
			return s.run(detached, cycle), nil
		})

		select {
		case res := <-ch:
			st := res.Val.(loadstate.State) //nolint:forcetypeassert // run always returns a State
			if st.Kind() != loadstate.Loading {
				return st
			}
			// The joined cycle ended and a newer one is in flight; wait for it.
		case <-ctx.Done():
			// The caller stops waiting; the in-flight load still completes.
			return s.State()
		}
	}
}

// Retry reloads after a failure. It behaves exactly like Load.
func (s *Service) Retry(ctx context.Context) loadstate.State {
	if cur := s.State(); cur.Kind() == loadstate.Failed {
		s.logger.Info("Retrying directory load",
			zap.String("previous_error", cur.Message()),
		)
	}
	return s.Load(ctx)
}

// start enters Loading unless a load is already in flight and returns the
// cycle to join.
func (s *Service) start() uint64 {
	s.mu.Lock()
	from := s.state
	if from.Kind() != loadstate.Loading {
		s.cycle++
		s.state = loadstate.Next(from, loadstate.Started())
	}
	to, cycle := s.state, s.cycle
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	s.notify(from, to, listeners)
	return cycle
}

func (s *Service) run(ctx context.Context, cycle uint64) loadstate.State {
	s.mu.RLock()
	cur, stale := s.state, s.cycle != cycle || s.state.Kind() != loadstate.Loading
	s.mu.RUnlock()
	if stale {
		return cur
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	records, err := s.fetcher.Fetch(ctx)
	duration := time.Since(start)

	if err != nil {
		next := s.apply(loadstate.FailedWith(err))
		s.logger.Warn("Directory load failed",
			zap.String("kind", string(next.Failure().Kind)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return next
	}

	next := s.apply(loadstate.Succeeded(records))
	s.logger.Info("Directory loaded",
		zap.Int("records", len(records)),
		zap.Uint64("revision", next.Revision()),
		zap.Duration("duration", duration),
	)
	return next
}

func (s *Service) apply(e loadstate.Event) loadstate.State {
	s.mu.Lock()
	from := s.state
	to := loadstate.Next(from, e)
	s.state = to
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	s.notify(from, to, listeners)
	return to
}

func (s *Service) notify(from, to loadstate.State, listeners []Listener) {
	if from.Kind() != to.Kind() {
		metrics.LoadTransitionsTotal.WithLabelValues(from.Kind().String(), to.Kind().String()).Inc()
		if to.Kind() == loadstate.Loaded {
			metrics.DirectoryRecords.Set(float64(len(to.Records())))
		}
		for _, l := range listeners {
			l(from, to)
		}
	}
}
