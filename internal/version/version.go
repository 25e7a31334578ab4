// ABOUTME: Version information for audiobridge
// ABOUTME: Product identity shown in the TUI and logs
package version

const (
	Version      = "0.3.0"
	Product      = "audiobridge"
	Manufacturer = "RetroPlayer"
)
