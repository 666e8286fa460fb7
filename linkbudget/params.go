// Package linkbudget runs the LoRa link calculation pipeline: airtime, regional compliance,
// energy and configuration warnings for one parameter set.
package linkbudget

import (
	"github.com/viam-modules/lora-link-budget/airtime"
	"github.com/viam-modules/lora-link-budget/regions"
)

// ParameterSet is the complete input of one calculation.
type ParameterSet struct {
	SpreadingFactor     int
	BandwidthKHz        int
	CodingRate          int
	PayloadBytes        int
	PreambleSymbols     int
	CRC                 bool
	ExplicitHeader      bool
	LowDataRateOptimize bool

	TxPowerDbm    int
	SupplyVoltage float64

	Region  regions.Region
	SubBand regions.SubBand

	// TxIntervalMinutes of zero means no scheduled transmissions.
	TxIntervalMinutes  float64
	BatteryCapacityMah float64
}

// AirtimeParams returns the subset of the parameter set that determines time on air.
func (p ParameterSet) AirtimeParams() airtime.Params {
	return airtime.Params{
		SpreadingFactor:     p.SpreadingFactor,
		BandwidthKHz:        p.BandwidthKHz,
		CodingRate:          p.CodingRate,
		PayloadBytes:        p.PayloadBytes,
		PreambleSymbols:     p.PreambleSymbols,
		CRC:                 p.CRC,
		ExplicitHeader:      p.ExplicitHeader,
		LowDataRateOptimize: p.LowDataRateOptimize,
	}
}
