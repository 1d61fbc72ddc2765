// Package build holds version information set at link time, e.g.
//
//	go build -ldflags "-X github.com/wcsim/macgen/internal/macgen/build.ReleaseVersion=v1.2.0"
package build

import "runtime"

var (
	ReleaseVersion = "UNKNOWN-VERSION"
	GitCommit      = "UNKNOWN-COMMIT"
	GoVersion      = runtime.Version()
	BuildTime      = "UNKNOWN-TIME"
)
