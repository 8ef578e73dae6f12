// ABOUTME: Version constants for obsaudio binaries
// ABOUTME: Reported by the host simulator at startup
package version

// Version can be overridden at link time with -ldflags "-X ...version.Version=..."
var Version = "0.3.0"

const (
	Product      = "obsaudio-host"
	Manufacturer = "Resonate"
)

// String returns "product version".
func String() string {
	return Product + " " + Version
}
