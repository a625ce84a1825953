// Package version reports the qq build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time with -ldflags "-X github.com/connorhough/qq/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version, commit and build date. Binaries built with
// `go install module@version` carry no ldflags, so the module version and
// VCS stamp from the build info are used instead.
func String() string {
	version, commit, date := Version, GitCommit, BuildDate
	if version == "dev" {
		if info, ok := readBuildInfo(); ok {
			if v := info.Main.Version; v != "" && v != "(devel)" {
				version = v
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					if commit == "unknown" && len(s.Value) >= 7 {
						commit = s.Value[:7]
					}
				case "vcs.time":
					if date == "unknown" {
						date = s.Value
					}
				}
			}
		}
	}
	return fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date)
}
