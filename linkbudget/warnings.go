package linkbudget

import (
	"fmt"

	"github.com/viam-modules/lora-link-budget/airtime"
	"github.com/viam-modules/lora-link-budget/regions"
)

// Level is the severity of a warning.
type Level int

const (
	// Caution marks a legal but risky or suboptimal configuration.
	Caution Level = iota
	// Error marks a configuration that violates a hard regulatory or hardware constraint.
	Error
)

func (l Level) String() string {
	if l == Error {
		return "error"
	}
	return "caution"
}

// Warning codes, in evaluation order.
const (
	CodeEUG3Bandwidth500  = "eu_g3_bandwidth_500"
	CodeEUG3Bandwidth250  = "eu_g3_bandwidth_250"
	CodeEUEIRPExceeded    = "eu_eirp_exceeded"
	CodeMaxPowerDutyCap   = "max_power_duty_cap"
	CodeUSDwellExceeded   = "us_dwell_exceeded"
	CodeEUG2Restrictive   = "eu_g2_restrictive"
	CodeShortPreamble     = "short_preamble"
	CodeSF6ExplicitHeader = "sf6_explicit_header"
)

const (
	minConventionalPreamble = 8
	maxPowerDbm             = 20
)

// Warning is one finding of the validator.
type Warning struct {
	Level   Level
	Code    string
	Message string
}

type rule struct {
	code    string
	level   Level
	applies func(p ParameterSet, air airtime.Result) bool
	message func(p ParameterSet, air airtime.Result) string
}

func isEU(p ParameterSet) bool { return p.Region == regions.EU }

// rules are evaluated in order and every rule runs on every call.
var rules = [...]rule{
	{
		code:  CodeEUG3Bandwidth500,
		level: Error,
		applies: func(p ParameterSet, _ airtime.Result) bool {
			return isEU(p) && p.BandwidthKHz == 500 && p.SubBand == regions.SubBandG3
		},
		message: func(ParameterSet, airtime.Result) string {
			return "a 500 kHz channel does not fit in the 250 kHz wide g3 sub-band (869.4-869.65 MHz); " +
				"use 125 kHz or move to g or g1"
		},
	},
	{
		code:  CodeEUG3Bandwidth250,
		level: Caution,
		applies: func(p ParameterSet, _ airtime.Result) bool {
			return isEU(p) && p.BandwidthKHz == 250 && p.SubBand == regions.SubBandG3
		},
		message: func(ParameterSet, airtime.Result) string {
			return "a 250 kHz channel fills the whole g3 sub-band with no margin for frequency error"
		},
	},
	{
		code:  CodeEUEIRPExceeded,
		level: Error,
		applies: func(p ParameterSet, _ airtime.Result) bool {
			return isEU(p) && p.TxPowerDbm > regions.EUMaxEIRPDbm
		},
		message: func(p ParameterSet, _ airtime.Result) string {
			return fmt.Sprintf("TX power %d dBm exceeds the EU868 limit of %d dBm EIRP", p.TxPowerDbm, regions.EUMaxEIRPDbm)
		},
	},
	{
		code:  CodeMaxPowerDutyCap,
		level: Caution,
		applies: func(p ParameterSet, _ airtime.Result) bool {
			return p.TxPowerDbm == maxPowerDbm
		},
		message: func(ParameterSet, airtime.Result) string {
			return "at +20 dBm the PA_BOOST output is limited by the radio to a 1% duty cycle in every region"
		},
	},
	{
		code:  CodeUSDwellExceeded,
		level: Error,
		applies: func(p ParameterSet, air airtime.Result) bool {
			return p.Region == regions.US && air.AirtimeMs > regions.USDwellLimitMs
		},
		message: func(_ ParameterSet, air airtime.Result) string {
			return fmt.Sprintf("time on air %.1f ms exceeds the US915 dwell limit of %.0f ms; "+
				"lower the spreading factor or the payload size", air.AirtimeMs, regions.USDwellLimitMs)
		},
	},
	{
		code:  CodeEUG2Restrictive,
		level: Caution,
		applies: func(p ParameterSet, _ airtime.Result) bool {
			return isEU(p) && p.SubBand == regions.SubBandG2
		},
		message: func(ParameterSet, airtime.Result) string {
			return "the g2 sub-band allows a 0.1% duty cycle, ten times less airtime than g or g1"
		},
	},
	{
		code:  CodeShortPreamble,
		level: Caution,
		applies: func(p ParameterSet, _ airtime.Result) bool {
			return p.PreambleSymbols < minConventionalPreamble
		},
		message: func(p ParameterSet, _ airtime.Result) string {
			return fmt.Sprintf("a %d symbol preamble is below the conventional minimum of %d; "+
				"receivers may fail to synchronize", p.PreambleSymbols, minConventionalPreamble)
		},
	},
	{
		code:  CodeSF6ExplicitHeader,
		level: Error,
		applies: func(p ParameterSet, _ airtime.Result) bool {
			return p.SpreadingFactor == 6 && p.ExplicitHeader
		},
		message: func(ParameterSet, airtime.Result) string {
			return "SF6 only supports implicit header mode; the requested explicit header cannot be used " +
				"and airtime was computed with an implicit header"
		},
	},
}

// Validate cross-checks the parameter set and returns warnings in rule order.
func Validate(p ParameterSet, air airtime.Result) []Warning {
	warnings := []Warning{}
	for _, r := range rules {
		if !r.applies(p, air) {
			continue
		}
		warnings = append(warnings, Warning{
			Level:   r.level,
			Code:    r.code,
			Message: r.message(p, air),
		})
	}
	return warnings
}

// RuleCodes returns the codes of the built-in rules in evaluation order.
func RuleCodes() []string {
	codes := make([]string, 0, len(rules))
	for _, r := range rules {
		codes = append(codes, r.code)
	}
	return codes
}

// HasErrors reports whether any warning is an Error.
func HasErrors(warnings []Warning) bool {
	return hasLevel(warnings, Error)
}

// HasCautions reports whether any warning is a Caution.
func HasCautions(warnings []Warning) bool {
	return hasLevel(warnings, Caution)
}

func hasLevel(warnings []Warning, level Level) bool {
	for _, w := range warnings {
		if w.Level == level {
			return true
		}
	}
	return false
}
