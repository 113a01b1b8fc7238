package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

// Version information for the prim CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Semver parses Version.
func Semver() (*semver.Version, error) {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid build version %q: %w", Version, err)
	}
	return v, nil
}

// Colored renders Version with one color per component. Color output
// follows color.NoColor; an unparsable Version is returned as-is.
func Colored() string {
	v, err := Semver()
	if err != nil {
		return Version
	}
	var b strings.Builder
	b.WriteString(versionMajorColor.Sprint(v.Major()))
	b.WriteString(".")
	b.WriteString(versionMinorColor.Sprint(v.Minor()))
	b.WriteString(".")
	b.WriteString(versionPatchColor.Sprint(v.Patch()))
	if pre := v.Prerelease(); pre != "" {
		b.WriteString("-" + pre)
	}
	if meta := v.Metadata(); meta != "" {
		b.WriteString("+" + meta)
	}
	return b.String()
}

// Info is the JSON shape of `prim version --format json`.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

// Current snapshots the build metadata.
func Current() Info {
	return Info{
		Version:    Version,
		GitCommit:  GitCommit,
		GitMessage: GitMessage,
		BuildDate:  BuildDate,
	}
}
