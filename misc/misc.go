// Package misc exposes build information: program name, version and vcs hash.
package misc

import "runtime/debug"

const appName = "scopecss"

var (
	// set by the linker: -X scopecss/misc.version=...
	version = "dev"
	gitHash = ""
)

// GetAppName returns program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns vcs revision either injected by the linker or recorded
// by go build.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
