package regions

import "strings"

// SubBand identifies an ETSI EN 300 220 sub-band of the EU868 band.
type SubBand string

// EU868 sub-bands.
const (
	SubBandG  SubBand = "g"
	SubBandG1 SubBand = "g1"
	SubBandG2 SubBand = "g2"
	SubBandG3 SubBand = "g3"
)

// SubBandProfile holds the fixed regulatory limits of a sub-band.
type SubBandProfile struct {
	ID               SubBand
	Label            string
	DutyCyclePercent float64
	WidthKHz         float64
}

// subBandProfiles must stay in sync with ETSI EN 300 220-2 annex B.
var subBandProfiles = [...]SubBandProfile{
	{ID: SubBandG, Label: "g (865.0-868.0 MHz, 1%)", DutyCyclePercent: 1, WidthKHz: 3000},
	{ID: SubBandG1, Label: "g1 (868.0-868.6 MHz, 1%)", DutyCyclePercent: 1, WidthKHz: 600},
	{ID: SubBandG2, Label: "g2 (868.7-869.2 MHz, 0.1%)", DutyCyclePercent: 0.1, WidthKHz: 500},
	{ID: SubBandG3, Label: "g3 (869.4-869.65 MHz, 10%)", DutyCyclePercent: 10, WidthKHz: 250},
}

// GetSubBand parses a sub-band id. Empty input selects g.
func GetSubBand(id string) (SubBand, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return SubBandG, true
	}
	for _, p := range subBandProfiles {
		if string(p.ID) == id {
			return p.ID, true
		}
	}
	return "", false
}

// Profile returns the profile of the sub-band. Unknown ids resolve to g.
func (s SubBand) Profile() SubBandProfile {
	for _, p := range subBandProfiles {
		if p.ID == s {
			return p
		}
	}
	return subBandProfiles[0]
}

// SubBandProfiles returns a copy of the sub-band table in display order.
func SubBandProfiles() []SubBandProfile {
	out := make([]SubBandProfile, len(subBandProfiles))
	copy(out, subBandProfiles[:])
	return out
}
