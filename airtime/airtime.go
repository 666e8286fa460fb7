// Package airtime computes LoRa time on air following Semtech AN1200.13.
package airtime

import "math"

// ldroSymbolThresholdMs is the symbol duration above which low data rate optimization is mandatory.
const ldroSymbolThresholdMs = 16.0

// Params are the modulation and packet settings that determine time on air.
type Params struct {
	SpreadingFactor int
	BandwidthKHz    int
	// CodingRate is the denominator offset: 1 means 4/5, 4 means 4/8.
	CodingRate      int
	PayloadBytes    int
	PreambleSymbols int
	CRC             bool
	ExplicitHeader  bool
	// LowDataRateOptimize is the manual setting. It is ignored when the symbol duration requires LDRO.
	LowDataRateOptimize bool
}

// Result holds the time on air and the effective settings used to compute it.
type Result struct {
	AirtimeMs            float64
	SymbolDurationMs     float64
	PreambleMs           float64
	PayloadMs            float64
	PayloadSymbols       int
	EffectiveBitrateKbps float64

	LowDataRateRequired bool
	// LowDataRateOptimize is the effective flag after the auto requirement is applied.
	LowDataRateOptimize bool
	// ImplicitHeader is the effective header mode. SF6 only supports implicit header.
	ImplicitHeader bool
}

// SymbolDurationMs returns 2^SF / BW in milliseconds.
func SymbolDurationMs(spreadingFactor, bandwidthKHz int) float64 {
	return math.Exp2(float64(spreadingFactor)) / (float64(bandwidthKHz) * 1000) * 1000
}

// LowDataRateRequired reports whether the symbol duration exceeds 16 ms.
func LowDataRateRequired(spreadingFactor, bandwidthKHz int) bool {
	return SymbolDurationMs(spreadingFactor, bandwidthKHz) > ldroSymbolThresholdMs
}

// resolveFlags derives the effective LDRO and header mode from the manual preferences.
func resolveFlags(p Params) (ldroRequired, ldro, implicit bool) {
	ldroRequired = LowDataRateRequired(p.SpreadingFactor, p.BandwidthKHz)
	ldro = ldroRequired || p.LowDataRateOptimize
	implicit = p.SpreadingFactor == 6 || !p.ExplicitHeader
	return ldroRequired, ldro, implicit
}

// Compute returns the time on air of one packet. It is total over valid parameters:
// SF in [6,12], bandwidth in {125,250,500} kHz, coding rate in [1,4].
func Compute(p Params) Result {
	ldroRequired, ldro, implicit := resolveFlags(p)

	tSym := SymbolDurationMs(p.SpreadingFactor, p.BandwidthKHz)
	tPreamble := (float64(p.PreambleSymbols) + 4.25) * tSym

	sf := p.SpreadingFactor
	payloadBits := 8*p.PayloadBytes - 4*sf + 28 + 16*b2i(p.CRC) - 20*b2i(implicit)
	// SF >= 6 keeps the divisor at 4 or more.
	div := 4 * (sf - 2*b2i(ldro))
	numerator := int(math.Ceil(float64(payloadBits)/float64(div))) * (p.CodingRate + 4)
	payloadSymbols := 8 + max(numerator, 0)
	tPayload := float64(payloadSymbols) * tSym

	return Result{
		AirtimeMs:            tPreamble + tPayload,
		SymbolDurationMs:     tSym,
		PreambleMs:           tPreamble,
		PayloadMs:            tPayload,
		PayloadSymbols:       payloadSymbols,
		EffectiveBitrateKbps: EffectiveBitrateKbps(p.SpreadingFactor, p.BandwidthKHz, p.CodingRate),
		LowDataRateRequired:  ldroRequired,
		LowDataRateOptimize:  ldro,
		ImplicitHeader:       implicit,
	}
}

// EffectiveBitrateKbps returns SF * 4/(4+CR) * BW / 2^SF.
func EffectiveBitrateKbps(spreadingFactor, bandwidthKHz, codingRate int) float64 {
	return float64(spreadingFactor) * 4 / float64(4+codingRate) * float64(bandwidthKHz) /
		math.Exp2(float64(spreadingFactor))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
