package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/studentdir/internal/db"
	"github.com/kailas-cloud/studentdir/internal/domain/record"
)

type mockFetcher struct {
	records []record.Record
	err     error
	calls   int
}

func (m *mockFetcher) Fetch(_ context.Context) ([]record.Record, error) {
	m.calls++
	return m.records, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockKVStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_snapshot_cache_total",
		Help: "test",
	}, []string{"result"})
}

func newTestCachedFetcher(t *testing.T, inner *mockFetcher) (*CachedFetcher, *mockKVStore, *prometheus.CounterVec) {
	t.Helper()
	ms := newMockKVStore()
	counter := newTestCounter()
	cf := New(inner, ms, "https://example.test/users", time.Minute, counter, zap.NewNop())
	return cf, ms, counter
}

func sampleRecords() []record.Record {
	return []record.Record{
		record.Reconstruct("1", record.Fields{Name: "Alice Smith", Email: "alice@uni.edu", Major: "Physics"}),
		record.Reconstruct("2", record.Fields{Name: "Bob Jones", Email: "bob@uni.edu", Major: "Biology"}),
	}
}
