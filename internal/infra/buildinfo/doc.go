// Package buildinfo exposes build-time information injected via
// ldflags: Version, Commit, BuildTime, GoVersion.
//
// Usage:
//
//	go build -ldflags "-X github.com/yndnr/rekv-go/internal/infra/buildinfo.Version=1.0.0 -X github.com/yndnr/rekv-go/internal/infra/buildinfo.Commit=abc123"
package buildinfo
