package app

import "fmt"

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X github.com/tejashwikalptaru/playwise/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = ""
	BuildTime = "unknown"
)

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version   string
	GitCommit string
	GitTag    string
	BuildTime string
}

// GetVersionInfo returns the linked-in version information.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// FullString prefers the git tag over the version when both are set.
func (v VersionInfo) FullString() string {
	version := v.Version
	if v.GitTag != "" {
		version = v.GitTag
	}
	return fmt.Sprintf("PlayWise %s (commit: %s, built: %s)", version, v.GitCommit, v.BuildTime)
}
