// Package version holds studentdir build metadata, injected via ldflags:
//
//	go build -ldflags "-X github.com/kailas-cloud/studentdir/internal/version.Version=v1.2.0"
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
