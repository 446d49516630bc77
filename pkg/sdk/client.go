package studentdir

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/studentdir/internal/db"
	dbRedis "github.com/kailas-cloud/studentdir/internal/db/redis"
	"github.com/kailas-cloud/studentdir/internal/domain"
	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
	"github.com/kailas-cloud/studentdir/internal/domain/search/result"
	"github.com/kailas-cloud/studentdir/internal/repository/snapshot"
	"github.com/kailas-cloud/studentdir/internal/transport/remote"
	"github.com/kailas-cloud/studentdir/internal/usecase/directory"
	healthuc "github.com/kailas-cloud/studentdir/internal/usecase/health"
	searchuc "github.com/kailas-cloud/studentdir/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultTimeout          = 15 * time.Second
)

// Internal interfaces, swapped out in tests.
type loaderUseCase interface {
	Load(ctx context.Context) loadstate.State
	Retry(ctx context.Context) loadstate.State
	State() loadstate.State
}

type searchUseCase interface {
	Search(ctx context.Context, term string) ([]result.Match, error)
}

// Client is the studentdir SDK entry point.
type Client struct {
	store     db.Store
	loader    loaderUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client in the idle state. Nothing is fetched until Load.
// The provided context is used for the cache readiness check, if a cache is configured.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		endpoint: domain.DefaultSourceURL,
		timeout:  defaultTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.endpoint == "" {
		return nil, errors.New("studentdir: endpoint required")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.driver != "" {
		store, err = createStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
	default:
		return nil, fmt.Errorf("studentdir: unknown driver %q", cfg.driver)
	}

	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("studentdir: create %s store: %w", cfg.driver, err)
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("studentdir: %s not ready: %w", cfg.driver, err)
	}
	return s, nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{}
	}

	var fetcher directory.Fetcher = remote.NewFetcher(&remote.Config{
		URL:        cfg.endpoint,
		UserAgent:  "studentdir-sdk",
		HTTPClient: hc,
	})
	// Pass a nil interface (not a typed nil pointer) to health when the cache is off.
	var cachePinger healthuc.CachePinger
	if store != nil {
		fetcher = snapshot.New(fetcher, store, cfg.endpoint, cfg.cacheTTL, nil, zap.NewNop())
		cachePinger = store
	}

	loader := directory.New(fetcher, nil).WithTimeout(cfg.timeout)

	return &Client{
		store:     store,
		loader:    loader,
		searchSvc: searchuc.New(loader, cfg.memoSize),
		healthSvc: healthuc.New(loader, cachePinger),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Load fetches the collection. A call made while a load is in flight joins it.
// A failed load returns the state and its *LoadError. If ctx ends first the
// current (loading) state is returned with ctx.Err(); the load still completes.
func (c *Client) Load(ctx context.Context) (state State, err error) {
	start := time.Now()
	defer func() { c.obs.observe("load", start, err) }()

	return settle(ctx, c.loader.Load(ctx))
}

// Retry reloads after a failure. It behaves exactly like Load.
func (c *Client) Retry(ctx context.Context) (state State, err error) {
	start := time.Now()
	defer func() { c.obs.observe("retry", start, err) }()

	return settle(ctx, c.loader.Retry(ctx))
}

func settle(ctx context.Context, st loadstate.State) (State, error) {
	out := stateFromDomain(st)
	switch st.Kind() {
	case loadstate.Loaded:
		return out, nil
	case loadstate.Failed:
		return out, out.Err
	default:
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("load: %w", err)
		}
		return out, nil
	}
}

// State returns the current directory state without fetching.
func (c *Client) State() State {
	return stateFromDomain(c.loader.State())
}

// Search returns the loaded records matching term, in collection order.
// A blank term matches every record. Before a successful load it returns
// an error wrapping ErrNotLoaded.
func (c *Client) Search(ctx context.Context, term string) (matches []Match, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	found, err := c.searchSvc.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	matches = make([]Match, len(found))
	for i := range found {
		matches[i] = matchFromDomain(&found[i])
	}
	return matches, nil
}
