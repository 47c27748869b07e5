// Package misc keeps build identity helpers used by logging and reporting.
package misc

import "runtime/debug"

const appName = "jtx"

// Overridden at link time for release builds.
var (
	version = "development"
	gitHash = ""
)

// GetAppName returns short program name used for log prefixes, temp files and
// report entries.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	if version != "development" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns vcs revision recorded in the build info, if any.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
