// Package energy estimates transmit energy and battery life of a LoRa node.
// Only TX current is modeled; sleep, idle and receive draw belong to the caller's power budget.
package energy

import "math"

// Input holds the airtime, radio and schedule values the model needs.
type Input struct {
	AirtimeMs          float64
	TxPowerDbm         int
	SupplyVoltage      float64
	TxPerHour          float64
	BatteryCapacityMah float64
}

// Result holds per-transmission and daily energy figures.
type Result struct {
	CurrentMa float64
	// CurrentFallback is set when the TX power was not in the table and the fallback current was used.
	CurrentFallback bool

	EnergyPerTxMj   float64
	ChargePerTxUah  float64
	DailyChargeMah  float64
	BatteryLifeDays float64
}

// Compute returns the energy figures. Battery life is +Inf when nothing is transmitted.
func Compute(in Input) Result {
	currentMa, listed := TxCurrent(in.TxPowerDbm)

	seconds := in.AirtimeMs / 1000
	energyMj := currentMa / 1000 * in.SupplyVoltage * seconds * 1000
	chargeUah := currentMa * seconds / 3.6
	dailyMah := chargeUah / 1000 * in.TxPerHour * 24

	life := math.Inf(1)
	if dailyMah > 0 {
		life = in.BatteryCapacityMah / dailyMah
	}

	return Result{
		CurrentMa:       currentMa,
		CurrentFallback: !listed,
		EnergyPerTxMj:   energyMj,
		ChargePerTxUah:  chargeUah,
		DailyChargeMah:  dailyMah,
		BatteryLifeDays: life,
	}
}
