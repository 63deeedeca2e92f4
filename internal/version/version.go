// Package version reports the build version of the console.
package version

import "runtime/debug"

// Set at build time with -ldflags "-X github.com/BrianJOC/agri-console/internal/version.Version=v1.2.3".
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		populateFromBuildInfo()
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func populateFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	if Commit != "" {
		return
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			Commit = setting.Value[:7]
			return
		}
	}
}
