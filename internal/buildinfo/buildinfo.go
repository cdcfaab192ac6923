// Package buildinfo carries the version stamped in with
// -ldflags "-X geobox/internal/buildinfo.Version=...".
package buildinfo

import "go.uber.org/zap"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the release version, else the commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Fields returns the build stamp as log fields.
func Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", Version),
		zap.String("commit", Commit),
		zap.String("built", Date),
	}
}
