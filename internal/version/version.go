package version

// Version is the current release version of site-api.
// Overridden at build time via -ldflags "-X ...version.Version=v1.2.3".
var Version = "v0.3.0"

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}
