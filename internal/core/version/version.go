// Package version reports build information for the pairmax commands
package version

import "fmt"

// BuildInfo holds version information about a command build
type BuildInfo struct {
	Command string
	Version string
	Commit  string
	Date    string
}

// String renders "cmd version (commit, date)"
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (%s, %s)", b.Command, b.Version, b.Commit, b.Date)
}

// Info returns the build information for command. version, commit and date
// are set at build time:
//
//	-ldflags "-X 'pairmax/internal/core/version.version=v0.1.0' -X 'pairmax/internal/core/version.commit=abcd'"
func Info(command string) BuildInfo {
	return BuildInfo{
		Command: command,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
