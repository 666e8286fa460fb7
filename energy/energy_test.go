package energy

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestTxCurrent(t *testing.T) {
	expected := map[int]float64{2: 13, 5: 17, 8: 22, 11: 26, 14: 31, 17: 87, 20: 120}
	for power, ma := range expected {
		got, ok := TxCurrent(power)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, got, test.ShouldEqual, ma)
		test.That(t, IsListedPower(power), test.ShouldBeTrue)
	}
	test.That(t, ListedPowers(), test.ShouldResemble, []int{2, 5, 8, 11, 14, 17, 20})

	for _, power := range []int{-3, 0, 13, 15, 22, 30} {
		got, ok := TxCurrent(power)
		test.That(t, ok, test.ShouldBeFalse)
		test.That(t, got, test.ShouldEqual, 31)
		test.That(t, IsListedPower(power), test.ShouldBeFalse)
	}
}

func TestCompute(t *testing.T) {
	res := Compute(Input{
		AirtimeMs:          1253.376,
		TxPowerDbm:         14,
		SupplyVoltage:      3.3,
		TxPerHour:          4,
		BatteryCapacityMah: 2400,
	})
	test.That(t, res.CurrentMa, test.ShouldEqual, 31)
	test.That(t, res.CurrentFallback, test.ShouldBeFalse)
	test.That(t, res.EnergyPerTxMj, test.ShouldAlmostEqual, 128.2203648, 1e-9)
	test.That(t, res.ChargePerTxUah, test.ShouldAlmostEqual, 10.79296, 1e-9)
	test.That(t, res.DailyChargeMah, test.ShouldAlmostEqual, 1.03612416, 1e-9)
	test.That(t, res.BatteryLifeDays, test.ShouldAlmostEqual, 2400/1.03612416, 1e-6)
}

func TestComputeFallbackPower(t *testing.T) {
	in := Input{
		AirtimeMs:          41.216,
		TxPowerDbm:         14,
		SupplyVoltage:      3.6,
		TxPerHour:          60,
		BatteryCapacityMah: 1000,
	}
	listed := Compute(in)
	in.TxPowerDbm = 16
	unlisted := Compute(in)

	test.That(t, unlisted.CurrentFallback, test.ShouldBeTrue)
	test.That(t, unlisted.CurrentMa, test.ShouldEqual, listed.CurrentMa)
	test.That(t, unlisted.EnergyPerTxMj, test.ShouldEqual, listed.EnergyPerTxMj)
	test.That(t, math.IsNaN(unlisted.BatteryLifeDays), test.ShouldBeFalse)
}

func TestComputeNoSchedule(t *testing.T) {
	res := Compute(Input{
		AirtimeMs:          41.216,
		TxPowerDbm:         20,
		SupplyVoltage:      3.3,
		TxPerHour:          0,
		BatteryCapacityMah: 2400,
	})
	test.That(t, res.CurrentMa, test.ShouldEqual, 120)
	test.That(t, res.EnergyPerTxMj, test.ShouldBeGreaterThan, 0)
	test.That(t, res.DailyChargeMah, test.ShouldEqual, 0)
	test.That(t, math.IsInf(res.BatteryLifeDays, 1), test.ShouldBeTrue)
}

func TestComputeScalesWithRate(t *testing.T) {
	in := Input{
		AirtimeMs:          370.688,
		TxPowerDbm:         17,
		SupplyVoltage:      3.3,
		TxPerHour:          2,
		BatteryCapacityMah: 2600,
	}
	slow := Compute(in)
	in.TxPerHour = 4
	fast := Compute(in)
	test.That(t, fast.DailyChargeMah, test.ShouldAlmostEqual, 2*slow.DailyChargeMah, 1e-12)
	test.That(t, fast.BatteryLifeDays, test.ShouldAlmostEqual, slow.BatteryLifeDays/2, 1e-9)
	test.That(t, fast.ChargePerTxUah, test.ShouldEqual, slow.ChargePerTxUah)
}
