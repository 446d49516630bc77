package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Directory Prometheus metrics.
var (
	FetchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studentdir",
			Name:      "fetch_requests_total",
			Help:      "Total number of source fetches by outcome",
		},
		[]string{"outcome"}, // "success" / "network" / "http_status" / "decode"
	)

	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "studentdir",
			Name:      "fetch_duration_seconds",
			Help:      "Source fetch duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	FetchRecords = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "studentdir",
			Name:      "fetch_records",
			Help:      "Number of records returned by a successful fetch",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	LoadTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studentdir",
			Name:      "load_transitions_total",
			Help:      "Directory load state transitions",
		},
		[]string{"from", "to"},
	)

	DirectoryRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "studentdir",
			Name:      "directory_records",
			Help:      "Records in the last loaded set",
		},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "studentdir",
			Name:      "search_duration_seconds",
			Help:      "Search derivation duration in seconds",
			Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"memo"}, // "hit" / "miss"
	)

	SnapshotCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studentdir",
			Name:      "snapshot_cache_total",
			Help:      "Snapshot cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerDirectoryOnce sync.Once

// RegisterDirectoryMetrics registers directory metrics with the default
// registry. Later calls are no-ops.
func RegisterDirectoryMetrics() {
	registerDirectoryOnce.Do(func() {
		prometheus.MustRegister(FetchRequestsTotal)
		prometheus.MustRegister(FetchDuration)
		prometheus.MustRegister(FetchRecords)
		prometheus.MustRegister(LoadTransitionsTotal)
		prometheus.MustRegister(DirectoryRecords)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SnapshotCacheTotal)
	})
}
