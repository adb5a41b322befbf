// Package branding centralizes the product identity strings rendered by the
// console so pages and templates never hardcode them.
package branding

import (
	"crypto/md5"
	"encoding/hex"
	"os"
)

// AppName is the product name rendered in page titles and the dashboard.
const AppName = "Wardroom"

// Vendor is the appliance vendor shown in the console footer.
const Vendor = "Brinedeck"

// CopyrightYear is the year shown in the console footer.
const CopyrightYear = "2026"

// defaultVersion is the release train stamped into the binary. Upgrade
// smoke tests override it through WARDROOM_VERSION.
const defaultVersion = "3.2.0-RELEASE"

// Version returns the software version string for this build.
func Version() string {
	if v := os.Getenv("WARDROOM_VERSION"); v != "" {
		return v
	}
	return defaultVersion
}

// CacheHash returns a digest of the version used to bust browser caches
// across upgrades. Static asset URLs embed it as a query parameter.
func CacheHash() string {
	sum := md5.Sum([]byte(Version()))
	return hex.EncodeToString(sum[:])
}
