package energy

import "sort"

// FallbackPowerDbm is the table entry used when a TX power is not listed.
// Substituting it hides the error for unlisted powers; callers should validate powers upstream.
const FallbackPowerDbm = 14

// txCurrentMa maps TX power in dBm to supply current in mA (SX1276 datasheet, PA_BOOST).
var txCurrentMa = map[int]float64{
	2:  13,
	5:  17,
	8:  22,
	11: 26,
	14: 31,
	17: 87,
	20: 120,
}

// TxCurrent returns the drive current for the TX power and whether the power was listed.
// Unlisted powers resolve to the FallbackPowerDbm current.
func TxCurrent(powerDbm int) (float64, bool) {
	if ma, ok := txCurrentMa[powerDbm]; ok {
		return ma, true
	}
	return txCurrentMa[FallbackPowerDbm], false
}

// IsListedPower reports whether the TX power has a table entry.
func IsListedPower(powerDbm int) bool {
	_, ok := txCurrentMa[powerDbm]
	return ok
}

// ListedPowers returns the table's TX powers in ascending order.
func ListedPowers() []int {
	powers := make([]int, 0, len(txCurrentMa))
	for p := range txCurrentMa {
		powers = append(powers, p)
	}
	sort.Ints(powers)
	return powers
}
