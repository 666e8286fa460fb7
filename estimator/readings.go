package estimator

import (
	"fmt"
	"math"

	"github.com/viam-modules/lora-link-budget/linkbudget"
	"github.com/viam-modules/lora-link-budget/regions"
)

// toReadings flattens a result into the sensor readings map.
func toReadings(res linkbudget.Result) map[string]interface{} {
	air := res.Airtime
	readings := map[string]interface{}{
		"airtime_ms":             air.AirtimeMs,
		"symbol_duration_ms":     air.SymbolDurationMs,
		"preamble_ms":            air.PreambleMs,
		"payload_ms":             air.PayloadMs,
		"payload_symbols":        air.PayloadSymbols,
		"effective_bitrate_kbps": air.EffectiveBitrateKbps,
		"ldro_required":          air.LowDataRateRequired,
		"ldro_effective":         air.LowDataRateOptimize,
		"implicit_header":        air.ImplicitHeader,

		"region":      res.Params.Region.String(),
		"compliant":   res.Compliance.Compliant,
		"tx_per_hour": res.Compliance.TxPerHour,

		"tx_current_ma":       res.Energy.CurrentMa,
		"tx_current_fallback": res.Energy.CurrentFallback,
		"energy_per_tx_mj":    res.Energy.EnergyPerTxMj,
		"charge_per_tx_uah":   res.Energy.ChargePerTxUah,
		"daily_charge_mah":    res.Energy.DailyChargeMah,

		"warnings":     warningsToList(res.Warnings),
		"has_errors":   res.HasErrors(),
		"has_cautions": res.HasCautions(),
	}

	// readings are sent as protobuf structs, which cannot carry infinity.
	if math.IsInf(res.Energy.BatteryLifeDays, 1) {
		readings["battery_life_unbounded"] = true
	} else {
		readings["battery_life_days"] = res.Energy.BatteryLifeDays
		readings["battery_life_unbounded"] = false
	}

	if res.DataRateKnown {
		readings["lorawan_data_rate"] = fmt.Sprintf("DR%d", res.DataRateIndex)
	}

	if eu := res.Compliance.EU; eu != nil {
		readings["eu_sub_band"] = string(eu.SubBand)
		readings["duty_limit_pct"] = eu.DutyLimitPercent
		readings["duty_used_per_tx_pct"] = eu.DutyUsedPerTxPercent
		readings["duty_used_per_hour_pct"] = eu.DutyUsedPerHourPct
		readings["duty_budget_used_pct"] = eu.PercentOfBudget
		readings["max_tx_per_hour"] = eu.MaxTxPerHour
		readings["min_interval_s"] = eu.MinIntervalSeconds
		readings["rearm_g_s"] = eu.RearmOnePercentS
		readings["rearm_g3_s"] = eu.RearmTenPercentS
	}
	if us := res.Compliance.US; us != nil {
		readings["us_dwell_limit_ms"] = us.DwellLimitMs
		readings["us_dwell_pct"] = us.PercentOfDwellLimit
		readings["us_dwell_ok"] = us.DwellOK
	}
	return readings
}

func warningsToList(warnings []linkbudget.Warning) []interface{} {
	list := make([]interface{}, 0, len(warnings))
	for _, w := range warnings {
		list = append(list, map[string]interface{}{
			"level":   w.Level.String(),
			"code":    w.Code,
			"message": w.Message,
		})
	}
	return list
}

func subBandsToList() []interface{} {
	profiles := regions.SubBandProfiles()
	list := make([]interface{}, 0, len(profiles))
	for _, p := range profiles {
		list = append(list, map[string]interface{}{
			"id":        string(p.ID),
			"label":     p.Label,
			"duty_pct":  p.DutyCyclePercent,
			"width_khz": p.WidthKHz,
		})
	}
	return list
}
