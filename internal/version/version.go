// ABOUTME: Version information for twclock
// ABOUTME: Reported by the web server and used to name the offline cache
package version

const (
	// Version is the release of this build
	Version = "0.3.0"

	// Product is the product name
	Product = "twclock"

	// Manufacturer identifies the maintainers
	Manufacturer = "twtime"
)
