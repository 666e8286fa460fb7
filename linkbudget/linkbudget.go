package linkbudget

import (
	"github.com/viam-modules/lora-link-budget/airtime"
	"github.com/viam-modules/lora-link-budget/compliance"
	"github.com/viam-modules/lora-link-budget/energy"
	"github.com/viam-modules/lora-link-budget/regions"
)

// Result is the output of one calculation. It is built fresh on every Compute call.
type Result struct {
	Params     ParameterSet
	Airtime    airtime.Result
	Compliance compliance.Result
	Energy     energy.Result

	// DataRateIndex is the regional LoRaWAN data rate matching SF and bandwidth, if DataRateKnown.
	DataRateIndex int
	DataRateKnown bool

	Warnings []Warning
}

// HasErrors reports whether any warning is an Error.
func (r Result) HasErrors() bool { return HasErrors(r.Warnings) }

// HasCautions reports whether any warning is a Caution.
func (r Result) HasCautions() bool { return HasCautions(r.Warnings) }

// Compute runs the whole pipeline. Metrics are computed even when the validator reports errors.
func Compute(p ParameterSet) Result {
	air := airtime.Compute(p.AirtimeParams())

	comp := compliance.Analyze(compliance.Input{
		Region:            p.Region,
		SubBand:           p.SubBand,
		AirtimeMs:         air.AirtimeMs,
		TxIntervalMinutes: p.TxIntervalMinutes,
	})

	en := energy.Compute(energy.Input{
		AirtimeMs:          air.AirtimeMs,
		TxPowerDbm:         p.TxPowerDbm,
		SupplyVoltage:      p.SupplyVoltage,
		TxPerHour:          comp.TxPerHour,
		BatteryCapacityMah: p.BatteryCapacityMah,
	})

	res := Result{
		Params:     p,
		Airtime:    air,
		Compliance: comp,
		Energy:     en,
		Warnings:   Validate(p, air),
	}
	if dr, ok := regions.DataRateIndex(p.Region, uint32(p.SpreadingFactor), uint32(p.BandwidthKHz)*1000); ok {
		res.DataRateIndex = int(dr)
		res.DataRateKnown = true
	}
	return res
}
