// Package compliance checks a transmission schedule against EU868 duty-cycle and US915 dwell limits.
package compliance

import (
	"math"

	"github.com/viam-modules/lora-link-budget/regions"
)

// Reference duty budgets used for the re-arm comparison, as fractions.
const (
	refDutyOnePercent = 0.01
	refDutyTenPercent = 0.10
)

// Input is what the analyzers need from the parameter set and the airtime result.
type Input struct {
	Region            regions.Region
	SubBand           regions.SubBand
	AirtimeMs         float64
	TxIntervalMinutes float64
}

// EUResult holds the EU868 duty-cycle budget metrics.
type EUResult struct {
	SubBand              regions.SubBand
	DutyLimitPercent     float64
	DutyUsedPerTxPercent float64
	DutyUsedPerHourPct   float64
	PercentOfBudget      float64
	MaxTxPerHour         float64
	MinIntervalSeconds   float64
	// Re-arm times at fixed 1% and 10% budgets, independent of the selected sub-band.
	RearmOnePercentS float64
	RearmTenPercentS float64
	Compliant        bool
}

// USResult holds the US915 dwell metrics. No duty budget applies under FHSS.
type USResult struct {
	DwellLimitMs        float64
	PercentOfDwellLimit float64
	DwellOK             bool
}

// Result carries the verdict of the selected region. Only the branch of that region is set.
type Result struct {
	Region    regions.Region
	TxPerHour float64
	Compliant bool
	EU        *EUResult
	US        *USResult
}

// TxPerHour converts a transmit interval to a rate. An interval of zero means no scheduled transmissions.
func TxPerHour(txIntervalMinutes float64) float64 {
	if txIntervalMinutes <= 0 {
		return 0
	}
	return 60 / txIntervalMinutes
}

// RearmSeconds returns the minimum spacing between transmissions allowed by a duty fraction.
func RearmSeconds(airtimeMs, dutyFraction float64) float64 {
	return airtimeMs / dutyFraction / 1000
}

// Analyze runs the analyzer of the input region.
func Analyze(in Input) Result {
	res := Result{
		Region:    in.Region,
		TxPerHour: TxPerHour(in.TxIntervalMinutes),
	}
	switch in.Region {
	case regions.EU:
		eu := AnalyzeEU(in.SubBand, in.AirtimeMs, res.TxPerHour)
		res.EU = &eu
		res.Compliant = eu.Compliant
	case regions.US:
		us := AnalyzeUS(in.AirtimeMs)
		res.US = &us
		res.Compliant = us.DwellOK
	case regions.Unspecified:
	}
	return res
}

// AnalyzeEU computes the hourly duty-cycle usage of the sub-band.
func AnalyzeEU(subBand regions.SubBand, airtimeMs, txPerHour float64) EUResult {
	limit := subBand.Profile().DutyCyclePercent
	limitFraction := limit / 100

	perTx := airtimeMs / regions.DutyCycleWindowMs * 100
	perHour := perTx * txPerHour

	return EUResult{
		SubBand:              subBand.Profile().ID,
		DutyLimitPercent:     limit,
		DutyUsedPerTxPercent: perTx,
		DutyUsedPerHourPct:   perHour,
		PercentOfBudget:      perHour / limit * 100,
		MaxTxPerHour:         math.Floor(limitFraction * regions.DutyCycleWindowMs / airtimeMs),
		MinIntervalSeconds:   RearmSeconds(airtimeMs, limitFraction),
		RearmOnePercentS:     RearmSeconds(airtimeMs, refDutyOnePercent),
		RearmTenPercentS:     RearmSeconds(airtimeMs, refDutyTenPercent),
		Compliant:            perHour <= limit,
	}
}

// AnalyzeUS checks a single transmission against the 400 ms dwell limit.
func AnalyzeUS(airtimeMs float64) USResult {
	return USResult{
		DwellLimitMs:        regions.USDwellLimitMs,
		PercentOfDwellLimit: airtimeMs / regions.USDwellLimitMs * 100,
		DwellOK:             airtimeMs <= regions.USDwellLimitMs,
	}
}
