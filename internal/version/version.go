// Package version reports build information for the cupcraft binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/cupcraft/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/cupcraft/internal/version.Commit=abc1234"
//
// Unset values are filled from VCS build info, then from "dev" placeholders.
var (
	Version = ""
	Commit  = ""
	// BuildDate is RFC 3339, taken from the VCS commit time when not set
	BuildDate = ""
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	Platform  string
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fillFromSettings(info.Settings)
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fillFromSettings copies VCS details into the unset variables.
func fillFromSettings(settings []debug.BuildSetting) {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if Commit == "" && vcs["vcs.revision"] != "" {
		Commit = vcs["vcs.revision"]
		if len(Commit) > 7 {
			Commit = Commit[:7]
		}
		if vcs["vcs.modified"] == "true" {
			Commit += "-dirty"
		}
	}

	if t, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
		if BuildDate == "" {
			BuildDate = t.UTC().Format(time.RFC3339)
		}
		if Version == "" {
			Version = "dev-" + t.Format("20060102")
		}
	}
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Full returns the version with its commit, e.g. "v0.3.0 (commit: abc1234)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// String renders the multi-line output of the version commands.
func (i Info) String() string {
	s := fmt.Sprintf("Version:    %s\nCommit:     %s\n", i.Version, i.Commit)
	if i.BuildDate != "" {
		s += fmt.Sprintf("Built:      %s\n", i.BuildDate)
	}
	return s + fmt.Sprintf("Go:         %s\nPlatform:   %s\n", i.GoVersion, i.Platform)
}
