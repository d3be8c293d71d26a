// Package buildinfo identifies the running binary. Version, Commit and Date
// are stamped with -ldflags "-X climviz/internal/buildinfo.Version=...";
// unstamped builds fall back to the VCS settings the go tool embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// vcs returns the embedded revision (short, "+dirty" when modified) and
// commit time, or empty strings.
func vcs() (rev, at string) {
	bi, ok := readBuildInfo()
	if !ok {
		return "", ""
	}
	dirty := false
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			at = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev != "" && dirty {
		rev += "+dirty"
	}
	return rev, at
}

func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	if rev, _ := vcs(); rev != "" {
		return rev
	}
	return "unknown"
}

func date() string {
	if Date != "" && Date != "unknown" {
		return Date
	}
	if _, at := vcs(); at != "" {
		return at
	}
	return "unknown"
}

// Short returns a compact build identifier for the window title.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "unknown" {
		return c
	}
	return "dev"
}

// String returns the full build line printed by the version command.
func String() string {
	return fmt.Sprintf("climviz %s (commit %s, built %s)", Version, commit(), date())
}
