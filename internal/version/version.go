// Package version provides build-time version information for promptctl.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
// Example: go build -ldflags="-X github.com/debendraoli/promptctl/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

// Get returns the build information. Values missing from ldflags are taken
// from the module and VCS stamps of "go install" builds.
func Get() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
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
		case s.Key == "vcs.time" && info.BuildDate == "unknown":
			info.BuildDate = s.Value
		}
	}
	return info
}

// Short returns the version string (e.g., "v1.2.3" or "dev").
func Short() string {
	return Get().Version
}

// Info returns a single-line version string.
// Format: "promptctl v1.2.3 (commit: abc1234, built: 2024-01-15T10:30:00Z, go: go1.24.x)"
func Info() string {
	bi := Get()
	commit := bi.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("promptctl %s (commit: %s, built: %s, go: %s)",
		bi.Version, commit, bi.BuildDate, bi.GoVersion)
}

// Full returns a multi-line verbose version output.
func Full() string {
	bi := Get()
	return fmt.Sprintf(`promptctl %s
  Commit:     %s
  Built:      %s
  Go version: %s
  OS/Arch:    %s`,
		bi.Version, bi.Commit, bi.BuildDate, bi.GoVersion, bi.Platform)
}
