package version

import (
	"strings"

	"github.com/fatih/color"
)

const (
	major = "0"
	minor = "1"
	patch = "0"
	pre   = "dev"
)

// Overridable at build time via -ldflags.
var (
	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Version is the colorized semantic version of the CLI.
var Version = func() string {
	parts := []string{
		color.New(color.FgYellow, color.Bold).Sprint(major),
		color.New(color.FgGreen, color.Bold).Sprint(minor),
		color.New(color.FgBlue, color.Bold).Sprint(patch),
	}
	return strings.Join(parts, ".") + "-" + pre
}()
