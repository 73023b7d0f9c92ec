package internal

import (
	"fmt"
	"runtime"
)

// SysConfDir is the system configuration directory the default config path is derived from.
const SysConfDir = "/etc"

// VersionInfo contains the version and Git commit of a build.
type VersionInfo struct {
	Version string
	Commit  string
}

// Version is the version of this build.
var Version = VersionInfo{Version: "0.1.0"}

// Print writes the version and build information of the named project to stdout.
func (v VersionInfo) Print(project string) {
	fmt.Printf("%s version: %s\n", project, v.Version)
	fmt.Println()

	fmt.Println("Build information:")
	fmt.Printf("  Go version: %s (%s, %s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if v.Commit != "" {
		fmt.Println("  Git commit:", v.Commit)
	}
}
