// Package regions defines regional regulatory information
package regions

import "strings"

// Region represents the frequency band region.
type Region int

const (
	// Unspecified represents an unspecified region.
	Unspecified Region = iota
	// US represents the US915 frequency band.
	US
	// EU represents the EU868 frequency band.
	EU
)

const (
	// USDwellLimitMs is the FCC maximum time on air for one transmission on one channel.
	USDwellLimitMs = 400.0
	// EUMaxEIRPDbm is the highest TX power allowed in the EU868 band.
	EUMaxEIRPDbm = 14
	// DutyCycleWindowMs is the duty-cycle reference window (one hour).
	DutyCycleWindowMs = 3_600_000.0
)

// String returns the canonical band name of the region.
func (r Region) String() string {
	switch r {
	case US:
		return "US915"
	case EU:
		return "EU868"
	default:
		return "unspecified"
	}
}

// GetRegion returns the region.
func GetRegion(region string) Region {
	region = strings.ToUpper(region)
	switch region {
	case "US", "US915", "915":
		return US
	case "EU", "EU868", "868":
		return EU
	default:
		return Unspecified
	}
}
