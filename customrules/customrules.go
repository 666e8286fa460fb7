// Package customrules evaluates user-defined validation rules written as JavaScript expressions.
package customrules

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robertkrimen/otto"
	"github.com/viam-modules/lora-link-budget/airtime"
	"github.com/viam-modules/lora-link-budget/linkbudget"
)

var (
	errCodeRequired       = errors.New("custom rule code is required")
	errExpressionRequired = errors.New("custom rule expression is required")
	errInvalidLevel       = errors.New(`custom rule level must be "error" or "caution"`)
	errExecutionTimeout   = errors.New("execution timeout")
)

// scriptTimeout bounds the run time of a single rule expression. VM setup is not counted.
var scriptTimeout = 100 * time.Millisecond

const scriptStackDepth = 32

// Rule is a check whose expression returns true when the warning applies.
type Rule struct {
	Code       string `json:"code"`
	Level      string `json:"level,omitempty"`
	Message    string `json:"message"`
	Expression string `json:"expression"`
}

// Validate ensures the rule is complete and the expression parses.
func (r Rule) Validate() error {
	if r.Code == "" {
		return errCodeRequired
	}
	if r.Expression == "" {
		return fmt.Errorf("rule %q: %w", r.Code, errExpressionRequired)
	}
	if _, err := parseLevel(r.Level); err != nil {
		return fmt.Errorf("rule %q: %w", r.Code, err)
	}
	if _, err := otto.New().Compile("", r.Expression); err != nil {
		return fmt.Errorf("rule %q: %w", r.Code, err)
	}
	return nil
}

func parseLevel(level string) (linkbudget.Level, error) {
	switch strings.ToLower(level) {
	case "", "caution":
		return linkbudget.Caution, nil
	case "error":
		return linkbudget.Error, nil
	default:
		return linkbudget.Caution, errInvalidLevel
	}
}

// Evaluate runs the rules in order and returns a warning for each rule that applies.
func Evaluate(rules []Rule, p linkbudget.ParameterSet, air airtime.Result) ([]linkbudget.Warning, error) {
	warnings := []linkbudget.Warning{}
	if len(rules) == 0 {
		return warnings, nil
	}
	base, err := newVM(scriptVars(p, air))
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		level, err := parseLevel(r.Level)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Code, err)
		}
		out, err := executeJS(base, r.Expression)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Code, err)
		}
		applies, ok := out.(bool)
		if !ok {
			return nil, fmt.Errorf("rule %q returned %T, expected a boolean", r.Code, out)
		}
		if !applies {
			continue
		}
		warnings = append(warnings, linkbudget.Warning{
			Level:   level,
			Code:    r.Code,
			Message: r.Message,
		})
	}
	return warnings, nil
}

func scriptVars(p linkbudget.ParameterSet, air airtime.Result) map[string]interface{} {
	return map[string]interface{}{
		"spreading_factor":       p.SpreadingFactor,
		"bandwidth_khz":          p.BandwidthKHz,
		"coding_rate":            p.CodingRate,
		"payload_bytes":          p.PayloadBytes,
		"preamble_symbols":       p.PreambleSymbols,
		"crc":                    p.CRC,
		"explicit_header":        p.ExplicitHeader,
		"low_data_rate_optimize": air.LowDataRateOptimize,
		"implicit_header":        air.ImplicitHeader,
		"tx_power_dbm":           p.TxPowerDbm,
		"supply_voltage":         p.SupplyVoltage,
		"region":                 p.Region.String(),
		"eu_sub_band":            string(p.SubBand),
		"tx_interval_mins":       p.TxIntervalMinutes,
		"battery_capacity_mah":   p.BatteryCapacityMah,
		"airtime_ms":             air.AirtimeMs,
		"symbol_duration_ms":     air.SymbolDurationMs,
	}
}

// newVM returns a runtime with the rule variables set. Rules run on copies of it.
func newVM(vars map[string]interface{}) (*otto.Otto, error) {
	vm := otto.New()
	for k, v := range vars {
		if err := vm.Set(k, v); err != nil {
			return nil, err
		}
	}
	return vm, nil
}

func executeJS(base *otto.Otto, script string) (out interface{}, err error) {
	defer func() {
		if caught := recover(); caught != nil {
			if caught == errExecutionTimeout {
				err = errExecutionTimeout
				return
			}
			err = fmt.Errorf("%v", caught)
		}
	}()

	vm := base.Copy()
	vm.Interrupt = make(chan func(), 1)
	vm.SetStackDepthLimit(scriptStackDepth)

	timer := time.AfterFunc(scriptTimeout, func() {
		vm.Interrupt <- func() {
			panic(errExecutionTimeout)
		}
	})
	defer timer.Stop()

	val, err := vm.Run(script)
	if err != nil {
		return nil, err
	}

	return val.Export()
}
