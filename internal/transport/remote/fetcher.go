package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/studentdir/internal/domain"
	"github.com/kailas-cloud/studentdir/internal/domain/record"
	"github.com/kailas-cloud/studentdir/internal/metrics"
)

// DefaultMaxBodyBytes caps the response body read from the source.
const DefaultMaxBodyBytes = 16 << 20

// errBodyTooLarge signals a body over the configured cap.
var errBodyTooLarge = errors.New("response body exceeds size limit")

// Fetcher retrieves the record collection with a single HTTP GET.
type Fetcher struct {
	client       *http.Client
	url          string
	userAgent    string
	maxBodyBytes int64
	logger       *zap.Logger
}

// Config holds the source endpoint settings.
type Config struct {
	URL          string
	UserAgent    string
	MaxBodyBytes int64
	HTTPClient   *http.Client // nil uses a client without its own timeout
	Logger       *zap.Logger
}

// NewFetcher creates a source fetcher.
func NewFetcher(cfg *Config) *Fetcher {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:       client,
		url:          cfg.URL,
		userAgent:    cfg.UserAgent,
		maxBodyBytes: maxBody,
		logger:       logger,
	}
}

// Fetch implements directory.Fetcher. Every error is a *domain.FetchError.
func (f *Fetcher) Fetch(ctx context.Context) ([]record.Record, error) {
	start := time.Now()
	records, err := f.fetch(ctx)
	duration := time.Since(start)

	if err != nil {
		fe := domain.ClassifyFetchError(err)
		metrics.FetchRequestsTotal.WithLabelValues(string(fe.Kind)).Inc()
		f.logger.Debug("source fetch failed",
			zap.String("url", f.url),
			zap.String("kind", string(fe.Kind)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fe
	}

	metrics.FetchRequestsTotal.WithLabelValues("success").Inc()
	metrics.FetchDuration.Observe(duration.Seconds())
	metrics.FetchRecords.Observe(float64(len(records)))
	return records, nil
}

func (f *Fetcher) fetch(ctx context.Context) ([]record.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, http.NoBody)
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("get %s: %w", f.url, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, domain.NewStatusError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, domain.NewDecodeError(errBodyTooLarge)
	}

	records, err := record.Decode(body)
	if err != nil {
		return nil, domain.NewDecodeError(err)
	}
	return records, nil
}
