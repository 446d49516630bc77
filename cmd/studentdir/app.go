package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/studentdir/internal/config"
	"github.com/kailas-cloud/studentdir/internal/db"
	dbRedis "github.com/kailas-cloud/studentdir/internal/db/redis"
	"github.com/kailas-cloud/studentdir/internal/metrics"
	"github.com/kailas-cloud/studentdir/internal/repository/snapshot"
	"github.com/kailas-cloud/studentdir/internal/transport/remote"
	"github.com/kailas-cloud/studentdir/internal/usecase/directory"
)

// app is the composition root shared by serve and search.
type app struct {
	directory *directory.Service
	store     db.Store // nil when the snapshot cache is disabled
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// buildApp assembles the fetcher chain: remote -> snapshot cache -> loader.
func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	var fetcher directory.Fetcher = remote.NewFetcher(&remote.Config{
		URL:          cfg.Source.URL,
		UserAgent:    cfg.Source.UserAgent,
		MaxBodyBytes: cfg.Source.MaxBodyBytes,
		HTTPClient:   &http.Client{},
		Logger:       logger,
	})

	a := &app{}
	if cfg.Cache.Enabled {
		store, err := openStore(ctx, cfg.Cache, logger)
		if err != nil {
			return nil, err
		}
		a.store = store
		fetcher = snapshot.New(
			fetcher, store, cfg.Source.URL,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.SnapshotCacheTotal, logger,
		)
	}

	a.directory = directory.New(fetcher, logger).
		WithTimeout(time.Duration(cfg.Source.TimeoutSec) * time.Second)
	return a, nil
}

func openStore(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (db.Store, error) {
	switch cfg.Driver {
	case "valkey", "redis":
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	logger.Info("Connected to snapshot cache",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store, nil
}
