// buildtime tells the version of the binary.
package buildtime

import (
	"runtime/debug"
)

// Version of the release. Set with:
//
//	-ldflags "-X github.com/bearnovel/bearnovel/pkg/buildtime.Version=v1.2.3"
var Version = "dev"

// Revision is the VCS revision embedded by the Go toolchain, or "unknown".
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "unknown"
}

func VersionString() string {
	return Version + " (commit: " + Revision() + ")"
}
