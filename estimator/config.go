package estimator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/viam-modules/lora-link-budget/customrules"
	"github.com/viam-modules/lora-link-budget/energy"
	"github.com/viam-modules/lora-link-budget/linkbudget"
	"github.com/viam-modules/lora-link-budget/presets"
	"github.com/viam-modules/lora-link-budget/regions"
	"go.viam.com/rdk/resource"
)

// Error variables for validation.
var (
	errUnknownPreset           = errors.New("unknown preset")
	errRegionRequired          = errors.New("region is required")
	errInvalidRegion           = errors.New("region must be US915 or EU868")
	errInvalidSubBand          = errors.New("eu_sub_band must be one of g, g1, g2, g3")
	errSpreadingFactorRequired = errors.New("spreading_factor is required")
	errSpreadingFactorRange    = errors.New("spreading_factor must be between 6 and 12")
	errBandwidthRequired       = errors.New("bandwidth_khz is required")
	errInvalidBandwidth        = errors.New("bandwidth_khz must be 125, 250 or 500")
	errCodingRateRange         = errors.New("coding_rate must be between 1 (4/5) and 4 (4/8)")
	errPayloadRequired         = errors.New("payload_bytes is required")
	errPayloadRange            = errors.New("payload_bytes must be between 1 and 255")
	errPreambleRange           = errors.New("preamble_symbols must be between 6 and 65535")
	errUnlistedTxPower         = errors.New("tx_power_dbm must be one of 2, 5, 8, 11, 14, 17, 20")
	errSupplyVoltage           = errors.New("supply_voltage must be greater than zero")
	errIntervalRequired        = errors.New("tx_interval_mins is required")
	errIntervalNegative        = errors.New("tx_interval_mins cannot be negative")
	errBatteryRequired         = errors.New("battery_capacity_mah is required")
	errBatteryCapacity         = errors.New("battery_capacity_mah must be greater than zero")
)

const (
	defaultCodingRate      = 1
	defaultPreambleSymbols = 8
	defaultTxPowerDbm      = 14
	defaultSupplyVoltage   = 3.3
	maxPreambleSymbols     = 65535
)

var builtinPresets = sync.OnceValues(presets.Builtin)

// Config defines the link budget estimator's config.
// Attributes left unset are taken from the preset, then from the defaults.
type Config struct {
	Preset              string             `json:"preset,omitempty"`
	Region              string             `json:"region,omitempty"`
	EUSubBand           string             `json:"eu_sub_band,omitempty"`
	SpreadingFactor     *int               `json:"spreading_factor,omitempty"`
	BandwidthKHz        *int               `json:"bandwidth_khz,omitempty"`
	CodingRate          *int               `json:"coding_rate,omitempty"`
	PayloadBytes        *int               `json:"payload_bytes,omitempty"`
	PreambleSymbols     *int               `json:"preamble_symbols,omitempty"`
	CRC                 *bool              `json:"crc,omitempty"`
	ExplicitHeader      *bool              `json:"explicit_header,omitempty"`
	LowDataRateOptimize *bool              `json:"low_data_rate_optimize,omitempty"`
	TxPowerDbm          *int               `json:"tx_power_dbm,omitempty"`
	SupplyVoltage       *float64           `json:"supply_voltage,omitempty"`
	TxIntervalMinutes   *float64           `json:"tx_interval_mins,omitempty"`
	BatteryCapacityMah  *float64           `json:"battery_capacity_mah,omitempty"`
	CustomRules         []customrules.Rule `json:"custom_rules,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) ([]string, error) {
	if _, err := conf.parameterSet(); err != nil {
		return nil, resource.NewConfigValidationError(path, err)
	}
	for _, r := range conf.CustomRules {
		if err := r.Validate(); err != nil {
			return nil, resource.NewConfigValidationError(path, err)
		}
	}
	return nil, nil
}

func (conf *Config) preset() (presets.Preset, error) {
	if conf.Preset == "" {
		return presets.Preset{}, nil
	}
	catalog, err := builtinPresets()
	if err != nil {
		return presets.Preset{}, err
	}
	p, ok := catalog.Get(conf.Preset)
	if !ok {
		return presets.Preset{}, fmt.Errorf("%w %q", errUnknownPreset, conf.Preset)
	}
	return p, nil
}

// parameterSet resolves the attributes against the preset and defaults, then checks the input domain.
func (conf *Config) parameterSet() (linkbudget.ParameterSet, error) {
	pre, err := conf.preset()
	if err != nil {
		return linkbudget.ParameterSet{}, err
	}

	regionName := firstString(conf.Region, pre.Region)
	if regionName == "" {
		return linkbudget.ParameterSet{}, errRegionRequired
	}
	region := regions.GetRegion(regionName)
	if region == regions.Unspecified {
		return linkbudget.ParameterSet{}, errInvalidRegion
	}

	subBand, ok := regions.GetSubBand(firstString(conf.EUSubBand, pre.EUSubBand))
	if !ok {
		return linkbudget.ParameterSet{}, errInvalidSubBand
	}

	sf := first(conf.SpreadingFactor, pre.SpreadingFactor)
	if sf == nil {
		return linkbudget.ParameterSet{}, errSpreadingFactorRequired
	}
	if *sf < 6 || *sf > 12 {
		return linkbudget.ParameterSet{}, errSpreadingFactorRange
	}

	bw := first(conf.BandwidthKHz, pre.BandwidthKHz)
	if bw == nil {
		return linkbudget.ParameterSet{}, errBandwidthRequired
	}
	if *bw != 125 && *bw != 250 && *bw != 500 {
		return linkbudget.ParameterSet{}, errInvalidBandwidth
	}

	cr := orDefault(first(conf.CodingRate, pre.CodingRate), defaultCodingRate)
	if cr < 1 || cr > 4 {
		return linkbudget.ParameterSet{}, errCodingRateRange
	}

	payload := first(conf.PayloadBytes, pre.PayloadBytes)
	if payload == nil {
		return linkbudget.ParameterSet{}, errPayloadRequired
	}
	if *payload < 1 || *payload > 255 {
		return linkbudget.ParameterSet{}, errPayloadRange
	}

	preamble := orDefault(first(conf.PreambleSymbols, pre.PreambleSymbols), defaultPreambleSymbols)
	if preamble < 6 || preamble > maxPreambleSymbols {
		return linkbudget.ParameterSet{}, errPreambleRange
	}

	power := orDefault(first(conf.TxPowerDbm, pre.TxPowerDbm), defaultTxPowerDbm)
	if !energy.IsListedPower(power) {
		return linkbudget.ParameterSet{}, errUnlistedTxPower
	}

	voltage := orDefault(first(conf.SupplyVoltage, pre.SupplyVoltage), defaultSupplyVoltage)
	if voltage <= 0 {
		return linkbudget.ParameterSet{}, errSupplyVoltage
	}

	interval := first(conf.TxIntervalMinutes, pre.TxIntervalMinutes)
	if interval == nil {
		return linkbudget.ParameterSet{}, errIntervalRequired
	}
	if *interval < 0 {
		return linkbudget.ParameterSet{}, errIntervalNegative
	}

	battery := first(conf.BatteryCapacityMah, pre.BatteryCapacityMah)
	if battery == nil {
		return linkbudget.ParameterSet{}, errBatteryRequired
	}
	if *battery <= 0 {
		return linkbudget.ParameterSet{}, errBatteryCapacity
	}

	return linkbudget.ParameterSet{
		SpreadingFactor:     *sf,
		BandwidthKHz:        *bw,
		CodingRate:          cr,
		PayloadBytes:        *payload,
		PreambleSymbols:     preamble,
		CRC:                 orDefault(first(conf.CRC, pre.CRC), true),
		ExplicitHeader:      orDefault(first(conf.ExplicitHeader, pre.ExplicitHeader), true),
		LowDataRateOptimize: orDefault(first(conf.LowDataRateOptimize, pre.LowDataRateOptimize), false),
		TxPowerDbm:          power,
		SupplyVoltage:       voltage,
		Region:              region,
		SubBand:             subBand,
		TxIntervalMinutes:   *interval,
		BatteryCapacityMah:  *battery,
	}, nil
}

func first[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
