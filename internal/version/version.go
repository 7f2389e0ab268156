// Package version provides build information for designkit. Values are
// injected with ldflags by release builds; otherwise they are read from the
// module build info where the toolchain recorded it.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Injected at build time, e.g.
// -ldflags "-X github.com/jmylchreest/designkit/internal/version.Version=x.y.z".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info holds the resolved build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetInfo returns the build information, preferring injected values over the
// module build info.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "unknown":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
	return info
}

// String returns a human-readable version string.
func String() string {
	info := GetInfo()
	if info.Commit != "unknown" && info.Date != "unknown" {
		return fmt.Sprintf("designkit version %s (commit: %s, built: %s, %s, %s)",
			info.Version, shortCommit(info.Commit), info.Date, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("designkit version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
}

// Short returns the version alone.
func Short() string {
	return GetInfo().Version
}

// UserAgentProduct returns "designkit/<version>" for outbound requests.
func UserAgentProduct() string {
	return "designkit/" + Short()
}

func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
