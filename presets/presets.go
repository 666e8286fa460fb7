// Package presets provides the catalog of named parameter presets.
package presets

import (
	"bytes"
	_ "embed"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var builtin []byte

// Preset is a named partial parameter set. Nil fields are left to the caller.
type Preset struct {
	Name                string   `yaml:"name"`
	Description         string   `yaml:"description"`
	Region              string   `yaml:"region"`
	EUSubBand           string   `yaml:"eu_sub_band"`
	SpreadingFactor     *int     `yaml:"spreading_factor"`
	BandwidthKHz        *int     `yaml:"bandwidth_khz"`
	CodingRate          *int     `yaml:"coding_rate"`
	PayloadBytes        *int     `yaml:"payload_bytes"`
	PreambleSymbols     *int     `yaml:"preamble_symbols"`
	CRC                 *bool    `yaml:"crc"`
	ExplicitHeader      *bool    `yaml:"explicit_header"`
	LowDataRateOptimize *bool    `yaml:"low_data_rate_optimize"`
	TxPowerDbm          *int     `yaml:"tx_power_dbm"`
	SupplyVoltage       *float64 `yaml:"supply_voltage"`
	TxIntervalMinutes   *float64 `yaml:"tx_interval_mins"`
	BatteryCapacityMah  *float64 `yaml:"battery_capacity_mah"`
}

// Catalog is a set of presets keyed by name.
type Catalog struct {
	presets map[string]Preset
}

// Builtin returns the catalog embedded in the module.
func Builtin() (*Catalog, error) {
	c, err := Parse(builtin)
	if err != nil {
		return nil, errors.Wrap(err, "builtin presets")
	}
	return c, nil
}

// Parse decodes a YAML list of presets. Names must be unique and non-empty.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var list []Preset
	if err := dec.Decode(&list); err != nil {
		return nil, errors.Wrap(err, "decoding presets")
	}

	c := &Catalog{presets: make(map[string]Preset, len(list))}
	for i, p := range list {
		if p.Name == "" {
			return nil, errors.Errorf("preset %d has no name", i)
		}
		if _, dup := c.presets[p.Name]; dup {
			return nil, errors.Errorf("duplicate preset %q", p.Name)
		}
		c.presets[p.Name] = p
	}
	return c, nil
}

// Get returns the preset with the given name.
func (c *Catalog) Get(name string) (Preset, bool) {
	p, ok := c.presets[name]
	return p, ok
}

// Names returns the preset names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.presets))
	for name := range c.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
