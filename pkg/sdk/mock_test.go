package studentdir

import (
	"context"

	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
	"github.com/kailas-cloud/studentdir/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/studentdir/internal/usecase/health"
)

// --- loaderUseCase mock ---

type mockLoader struct {
	loadFn  func(ctx context.Context) loadstate.State
	retryFn func(ctx context.Context) loadstate.State
	state   loadstate.State
}

func (m *mockLoader) Load(ctx context.Context) loadstate.State  { return m.loadFn(ctx) }
func (m *mockLoader) Retry(ctx context.Context) loadstate.State { return m.retryFn(ctx) }
func (m *mockLoader) State() loadstate.State                    { return m.state }

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, term string) ([]result.Match, error)
}

func (m *mockSearchUC) Search(ctx context.Context, term string) ([]result.Match, error) {
	return m.searchFn(ctx, term)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
