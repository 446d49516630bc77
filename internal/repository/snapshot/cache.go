package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/studentdir/internal/db"
	"github.com/kailas-cloud/studentdir/internal/domain"
	"github.com/kailas-cloud/studentdir/internal/domain/record"
)

var cacheKeyPrefix = domain.KeyPrefix + "snapshot:"

// DefaultTTL is used when New receives a non-positive ttl.
const DefaultTTL = 60 * time.Second

// fetcher is the decorated source.
type fetcher interface {
	Fetch(ctx context.Context) ([]record.Record, error)
}

// store is the consumer interface for the snapshot cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedFetcher keeps the last successful collection in a key-value store.
// Only the first Fetch may be served from the store; every later Fetch
// reaches the source.
type CachedFetcher struct {
	warmed     atomic.Bool
	inner      fetcher
	store      store
	key        string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. source identifies the upstream collection
// and scopes the cache key. cacheTotal has a single "result" label
// ("hit"/"miss") and may be nil.
func New(
	inner fetcher,
	s store,
	source string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher{
		inner:      inner,
		store:      s,
		key:        cacheKey(source),
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Fetch calls the inner fetcher and stores its result. The first call
// returns a stored snapshot instead when one is present.
// Errors from the inner fetcher pass through untouched.
func (c *CachedFetcher) Fetch(ctx context.Context) ([]record.Record, error) {
	if c.warmed.CompareAndSwap(false, true) {
		if recs, ok := c.getFromCache(ctx); ok {
			c.incCache("hit")
			return recs, nil
		}
		c.incCache("miss")
	}

	recs, err := c.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, recs)
	return recs, nil
}

// Key returns the store key used for this source.
func (c *CachedFetcher) Key() string { return c.key }

func (c *CachedFetcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(source string) string {
	h := sha256.Sum256([]byte(source))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedFetcher) getFromCache(ctx context.Context) ([]record.Record, bool) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached snapshot", zap.String("key", c.key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	recs, err := record.Decode(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached snapshot", zap.String("key", c.key), zap.Error(err))
		return nil, false
	}

	return recs, true
}

func (c *CachedFetcher) putToCache(ctx context.Context, recs []record.Record) {
	data, err := record.Encode(recs)
	if err != nil {
		c.logger.Warn("Failed to encode snapshot", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, c.key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache snapshot", zap.String("key", c.key), zap.Error(err))
	}
}
