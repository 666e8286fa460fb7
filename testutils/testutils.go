// Package testutils creates helper functions for tests
package testutils

import (
	"go.viam.com/rdk/resource"
)

// Scenario values shared by tests: SF12, 125 kHz, CR 4/6, 12 bytes in EU g every 15 minutes.
const (
	TestSpreadingFactor = 12
	TestBandwidthKHz    = 125
	TestCodingRate      = 2
	TestPayloadBytes    = 12
	TestTxPowerDbm      = 14
	TestRegion          = "EU868"
	TestSubBand         = "g"
	// TestAirtimeMs is the time on air of the scenario above.
	TestAirtimeMs = 1253.376
)

var (
	// TestInterval is the uplink interval in minutes.
	TestInterval = 15.0
	// TestBattery is the battery capacity in mAh.
	TestBattery = 2400.0
)

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// CaptureConfig returns associated resource configs that capture Readings at the given frequency.
func CaptureConfig(captureFreqHz float64) []resource.AssociatedResourceConfig {
	return []resource.AssociatedResourceConfig{
		{
			Attributes: map[string]interface{}{
				"capture_methods": []interface{}{
					map[string]interface{}{
						"method":               "Readings",
						"capture_frequency_hz": captureFreqHz,
					},
				},
			},
		},
	}
}
