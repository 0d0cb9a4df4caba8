// Package version holds the build metadata stamped into codescope binaries
// at release time via -ldflags.
package version

import "runtime"

// Version is the release tag, or "dev" for source builds.
var Version = "dev"

// Commit and Date identify the exact build; both stay empty for source
// builds.
var (
	Commit = ""
	Date   = ""
)

// Info is the version surface rendered by the version command.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get assembles the Info for the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
