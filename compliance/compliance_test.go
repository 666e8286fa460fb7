package compliance

import (
	"testing"

	"github.com/viam-modules/lora-link-budget/regions"
	"go.viam.com/test"
)

// SF12, 125 kHz, CR 4/6, 12 byte payload, 8 symbol preamble, CRC, explicit header.
const sf12AirtimeMs = 1253.376

func TestTxPerHour(t *testing.T) {
	test.That(t, TxPerHour(15), test.ShouldEqual, 4)
	test.That(t, TxPerHour(0.5), test.ShouldEqual, 120)
	test.That(t, TxPerHour(0), test.ShouldEqual, 0)
	test.That(t, TxPerHour(-1), test.ShouldEqual, 0)
}

func TestAnalyzeEU(t *testing.T) {
	res := Analyze(Input{
		Region:            regions.EU,
		SubBand:           regions.SubBandG,
		AirtimeMs:         sf12AirtimeMs,
		TxIntervalMinutes: 15,
	})
	test.That(t, res.US, test.ShouldBeNil)
	test.That(t, res.EU, test.ShouldNotBeNil)
	test.That(t, res.TxPerHour, test.ShouldEqual, 4)
	test.That(t, res.Compliant, test.ShouldBeTrue)

	eu := res.EU
	test.That(t, eu.DutyLimitPercent, test.ShouldEqual, 1)
	test.That(t, eu.DutyUsedPerTxPercent, test.ShouldAlmostEqual, 0.034816, 1e-9)
	test.That(t, eu.DutyUsedPerHourPct, test.ShouldAlmostEqual, 0.139264, 1e-9)
	test.That(t, eu.PercentOfBudget, test.ShouldAlmostEqual, 13.9264, 1e-9)
	test.That(t, eu.MaxTxPerHour, test.ShouldEqual, 28)
	test.That(t, eu.MinIntervalSeconds, test.ShouldAlmostEqual, 125.3376, 1e-9)
	test.That(t, eu.RearmOnePercentS, test.ShouldAlmostEqual, 125.3376, 1e-9)
	test.That(t, eu.RearmTenPercentS, test.ShouldAlmostEqual, 12.53376, 1e-9)
	test.That(t, eu.Compliant, test.ShouldBeTrue)
}

func TestAnalyzeEUOverBudget(t *testing.T) {
	// one SF12 packet a minute is 2.09% of the hour.
	res := Analyze(Input{
		Region:            regions.EU,
		SubBand:           regions.SubBandG1,
		AirtimeMs:         sf12AirtimeMs,
		TxIntervalMinutes: 1,
	})
	test.That(t, res.Compliant, test.ShouldBeFalse)
	test.That(t, res.EU.PercentOfBudget, test.ShouldBeGreaterThan, 100)

	// the same schedule fits the 10% g3 budget.
	res = Analyze(Input{
		Region:            regions.EU,
		SubBand:           regions.SubBandG3,
		AirtimeMs:         sf12AirtimeMs,
		TxIntervalMinutes: 1,
	})
	test.That(t, res.Compliant, test.ShouldBeTrue)
}

func TestAnalyzeEUBudgetWindow(t *testing.T) {
	for _, sb := range []regions.SubBand{regions.SubBandG, regions.SubBandG1, regions.SubBandG2, regions.SubBandG3} {
		for _, airtimeMs := range []float64{20.608, 41.216, 370.688, sf12AirtimeMs} {
			eu := AnalyzeEU(sb, airtimeMs, 0)
			window := eu.MaxTxPerHour * eu.MinIntervalSeconds
			test.That(t, window, test.ShouldBeLessThanOrEqualTo, 3600+1e-6)
			test.That(t, window, test.ShouldBeGreaterThan, 3600-eu.MinIntervalSeconds-1e-6)
		}
	}
}

func TestRearmRoundTrip(t *testing.T) {
	for _, airtimeMs := range []float64{20.608, 41.216, sf12AirtimeMs} {
		eu := AnalyzeEU(regions.SubBandG3, airtimeMs, 0)
		intervalMinutes := eu.RearmTenPercentS / 60

		res := Analyze(Input{
			Region:            regions.EU,
			SubBand:           regions.SubBandG3,
			AirtimeMs:         airtimeMs,
			TxIntervalMinutes: intervalMinutes,
		})
		test.That(t, res.EU.DutyUsedPerHourPct, test.ShouldAlmostEqual, 10, 1e-9)
		test.That(t, res.EU.PercentOfBudget, test.ShouldAlmostEqual, 100, 1e-9)
	}
}

func TestAnalyzeEUNoSchedule(t *testing.T) {
	res := Analyze(Input{
		Region:    regions.EU,
		SubBand:   regions.SubBandG2,
		AirtimeMs: sf12AirtimeMs,
	})
	test.That(t, res.TxPerHour, test.ShouldEqual, 0)
	test.That(t, res.EU.DutyUsedPerHourPct, test.ShouldEqual, 0)
	test.That(t, res.EU.PercentOfBudget, test.ShouldEqual, 0)
	test.That(t, res.Compliant, test.ShouldBeTrue)
}

func TestAnalyzeUS(t *testing.T) {
	res := Analyze(Input{
		Region:            regions.US,
		SubBand:           regions.SubBandG3,
		AirtimeMs:         2465.792,
		TxIntervalMinutes: 10,
	})
	test.That(t, res.EU, test.ShouldBeNil)
	test.That(t, res.US, test.ShouldNotBeNil)
	test.That(t, res.TxPerHour, test.ShouldEqual, 6)
	test.That(t, res.Compliant, test.ShouldBeFalse)
	test.That(t, res.US.DwellOK, test.ShouldBeFalse)
	test.That(t, res.US.PercentOfDwellLimit, test.ShouldAlmostEqual, 616.448, 1e-9)

	us := AnalyzeUS(400)
	test.That(t, us.DwellOK, test.ShouldBeTrue)
	test.That(t, us.PercentOfDwellLimit, test.ShouldEqual, 100)
	test.That(t, us.DwellLimitMs, test.ShouldEqual, 400)

	test.That(t, AnalyzeUS(400.001).DwellOK, test.ShouldBeFalse)
}

func TestRegionSwitchRecomputes(t *testing.T) {
	in := Input{
		Region:            regions.EU,
		SubBand:           regions.SubBandG,
		AirtimeMs:         sf12AirtimeMs,
		TxIntervalMinutes: 60,
	}
	eu := Analyze(in)
	test.That(t, eu.Compliant, test.ShouldBeTrue)

	in.Region = regions.US
	us := Analyze(in)
	test.That(t, us.Compliant, test.ShouldBeFalse)
	test.That(t, us.EU, test.ShouldBeNil)

	in.Region = regions.Unspecified
	none := Analyze(in)
	test.That(t, none.Compliant, test.ShouldBeFalse)
	test.That(t, none.EU, test.ShouldBeNil)
	test.That(t, none.US, test.ShouldBeNil)
}
