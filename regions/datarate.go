package regions

import (
	"go.thethings.network/lorawan-stack/v3/pkg/band"
	"go.thethings.network/lorawan-stack/v3/pkg/ttnpb"
)

// regionalParametersVersion is the LoRaWAN regional parameters revision the data rate tables come from.
const regionalParametersVersion = ttnpb.PHYVersion_RP001_V1_0_3_REV_A

func bandID(r Region) (string, bool) {
	switch r {
	case US:
		return band.US_902_928, true
	case EU:
		return band.EU_863_870, true
	default:
		return "", false
	}
}

// DataRateIndex returns the lowest LoRaWAN data rate index of the region that uses the given
// spreading factor and bandwidth. It reports false if the combination is not a regional data rate.
func DataRateIndex(r Region, spreadingFactor, bandwidthHz uint32) (ttnpb.DataRateIndex, bool) {
	id, ok := bandID(r)
	if !ok {
		return 0, false
	}
	b, err := band.Get(id, regionalParametersVersion)
	if err != nil {
		return 0, false
	}

	found := false
	var best ttnpb.DataRateIndex
	for idx, dr := range b.DataRates {
		lora := dr.Rate.GetLora()
		if lora == nil {
			continue
		}
		if lora.GetSpreadingFactor() != spreadingFactor || lora.GetBandwidth() != bandwidthHz {
			continue
		}
		// US915 repeats some SF/BW pairs as downlink-only rates.
		if !found || idx < best {
			best = idx
			found = true
		}
	}
	return best, found
}
