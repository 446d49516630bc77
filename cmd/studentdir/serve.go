package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
	"github.com/kailas-cloud/studentdir/internal/metrics"
	chiTransport "github.com/kailas-cloud/studentdir/internal/transport/chi"
	healthuc "github.com/kailas-cloud/studentdir/internal/usecase/health"
	searchuc "github.com/kailas-cloud/studentdir/internal/usecase/search"
	"github.com/kailas-cloud/studentdir/internal/version"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
}

func runServe(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(flags, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting studentdir API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", flags.env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source_url", cfg.Source.URL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Register directory metrics explicitly (no init())
	metrics.RegisterDirectoryMetrics()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	a.directory.Subscribe(func(from, to loadstate.State) {
		logger.Debug("Directory state changed",
			zap.Stringer("from", from.Kind()),
			zap.Stringer("to", to.Kind()),
		)
	})

	searchSvc := searchuc.New(a.directory, cfg.Search.MemoSize)

	// Pass a nil interface (not a typed nil pointer) when the cache is off.
	var cachePinger healthuc.CachePinger
	if a.store != nil {
		cachePinger = a.store
	}
	healthSvc := healthuc.New(a.directory, cachePinger)

	server := chiTransport.NewServer(a.directory, searchSvc, healthSvc, logger).
		WithReloadLimit(cfg.HTTP.ReloadPerMinute, cfg.HTTP.ReloadBurst)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Initial load runs in the background; the API reports "loading" until it settles.
	go a.directory.Load(ctx)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
