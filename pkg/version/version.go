// Package version provides version information for timelyfile.
// The variables are set via ldflags during the build process; when they
// are not, module build info embedded by the Go toolchain is used.
package version

import (
	"runtime"
	"runtime/debug"
)

// Version is the current version of the binary.
// Set via -ldflags "-X github.com/timely-toolkit/timelyfile/pkg/version.Version=..."
var Version = "dev"

// BuildDate is the date when the binary was built.
// Set via -ldflags "-X github.com/timely-toolkit/timelyfile/pkg/version.BuildDate=..."
var BuildDate = "unknown"

// GitCommit is the git commit hash used to build the binary.
// Set via -ldflags "-X github.com/timely-toolkit/timelyfile/pkg/version.GitCommit=..."
var GitCommit = "unknown"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version, falling back to the module version.
func String() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}

// FullString returns a detailed version string including build info.
func FullString() string {
	v := String()
	if v == "dev" {
		return "timelyfile development version"
	}
	return "timelyfile " + v
}

// Info returns all version information as a map.
func Info() map[string]string {
	info := map[string]string{
		"version":   String(),
		"buildDate": BuildDate,
		"gitCommit": GitCommit,
		"goVersion": runtime.Version(),
	}

	if bi, ok := readBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if GitCommit == "unknown" {
					info["gitCommit"] = s.Value
				}
			case "vcs.time":
				if BuildDate == "unknown" {
					info["buildDate"] = s.Value
				}
			}
		}
	}
	return info
}
