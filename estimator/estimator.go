// Package estimator implements the LoRa link budget sensor model.
package estimator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/viam-modules/lora-link-budget/customrules"
	"github.com/viam-modules/lora-link-budget/linkbudget"
	"go.viam.com/rdk/components/sensor"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
)

// Model represents the lora link budget estimator model.
var Model = resource.NewModel("viam", "lora", "link-budget")

// DoCommand keys.
const (
	computeKey  = "compute"
	presetsKey  = "presets"
	subBandsKey = "sub_bands"
	metricsKey  = "metrics"
)

var errUnknownCommand = errors.New("unknown command")

func init() {
	resource.RegisterComponent(
		sensor.API,
		Model,
		resource.Registration[sensor.Sensor, *Config]{
			Constructor: newEstimator,
		})
}

// Estimator computes airtime, compliance, energy and warnings for a configured LoRa node.
// The result is recomputed on every call; only the configuration is kept.
type Estimator struct {
	resource.Named
	logger  logging.Logger
	metrics *collector

	mu     sync.Mutex
	cfg    *Config
	params linkbudget.ParameterSet
}

func newEstimator(
	ctx context.Context,
	deps resource.Dependencies,
	conf resource.Config,
	logger logging.Logger,
) (sensor.Sensor, error) {
	return NewEstimator(ctx, deps, conf, logger)
}

// NewEstimator creates an estimator from a resource config.
func NewEstimator(
	ctx context.Context,
	deps resource.Dependencies,
	conf resource.Config,
	logger logging.Logger,
) (*Estimator, error) {
	metrics, err := newCollector(nil)
	if err != nil {
		return nil, err
	}

	e := &Estimator{
		Named:   conf.ResourceName().AsNamed(),
		logger:  logger,
		metrics: metrics,
	}

	if err := e.Reconfigure(ctx, deps, conf); err != nil {
		return nil, err
	}
	return e, nil
}

// Reconfigure resolves the new parameter set and checks it once so bad custom rules fail early.
func (e *Estimator) Reconfigure(ctx context.Context, deps resource.Dependencies, conf resource.Config) error {
	cfg, err := resource.NativeConfig[*Config](conf)
	if err != nil {
		return err
	}

	params, err := cfg.parameterSet()
	if err != nil {
		return err
	}

	res, err := compute(params, cfg.CustomRules)
	if err != nil {
		return err
	}

	if _, err := CheckCaptureFrequency(conf, params.TxIntervalMinutes, e.logger); err != nil {
		return err
	}

	e.mu.Lock()
	e.cfg = cfg
	e.params = params
	e.mu.Unlock()

	e.logger.Infof("%s SF%d/%d kHz, %d bytes: airtime %.1f ms, compliant %v, %d warnings",
		params.Region, params.SpreadingFactor, params.BandwidthKHz, params.PayloadBytes,
		res.Airtime.AirtimeMs, res.Compliance.Compliant, len(res.Warnings))
	for _, w := range res.Warnings {
		if w.Level == linkbudget.Error {
			e.logger.Warnf("%s: %s", w.Code, w.Message)
		}
	}
	return nil
}

// compute runs the pipeline and appends the custom rule warnings after the built-in ones.
func compute(params linkbudget.ParameterSet, rules []customrules.Rule) (linkbudget.Result, error) {
	res := linkbudget.Compute(params)
	custom, err := customrules.Evaluate(rules, params, res.Airtime)
	if err != nil {
		return linkbudget.Result{}, err
	}
	res.Warnings = append(res.Warnings, custom...)
	return res, nil
}

// Readings returns the link budget of the configured node.
func (e *Estimator) Readings(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
	e.mu.Lock()
	params := e.params
	rules := e.cfg.CustomRules
	e.mu.Unlock()

	res, err := compute(params, rules)
	if err != nil {
		return map[string]interface{}{}, err
	}
	e.metrics.observe(e.Name().ShortName(), res)
	return toReadings(res), nil
}

// DoCommand computes what-if results, lists the preset and sub-band tables and reports this sensor's metrics.
func (e *Estimator) DoCommand(ctx context.Context, cmd map[string]interface{}) (map[string]interface{}, error) {
	if overrides, ok := cmd[computeKey]; ok {
		attrs, ok := overrides.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s expects a map of attributes, got %T", computeKey, overrides)
		}
		readings, err := e.computeWithOverrides(attrs)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{computeKey: readings}, nil
	}

	if _, ok := cmd[presetsKey]; ok {
		catalog, err := builtinPresets()
		if err != nil {
			return nil, err
		}
		names := []interface{}{}
		for _, name := range catalog.Names() {
			names = append(names, name)
		}
		return map[string]interface{}{presetsKey: names}, nil
	}

	if _, ok := cmd[subBandsKey]; ok {
		return map[string]interface{}{subBandsKey: subBandsToList()}, nil
	}

	if _, ok := cmd[metricsKey]; ok {
		metrics, err := e.metrics.snapshot(e.Name().ShortName())
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{metricsKey: metrics}, nil
	}

	return nil, errUnknownCommand
}

// computeWithOverrides layers the attribute overrides over the current config without reconfiguring.
func (e *Estimator) computeWithOverrides(overrides map[string]interface{}) (map[string]interface{}, error) {
	e.mu.Lock()
	base, err := json.Marshal(e.cfg)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}

	attrs := map[string]interface{}{}
	if err := json.Unmarshal(base, &attrs); err != nil {
		return nil, err
	}
	for k, v := range overrides {
		attrs[k] = v
	}
	merged, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(merged, cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Validate(""); err != nil {
		return nil, err
	}
	params, err := cfg.parameterSet()
	if err != nil {
		return nil, err
	}

	res, err := compute(params, cfg.CustomRules)
	if err != nil {
		return nil, err
	}
	e.metrics.observe(e.Name().ShortName(), res)
	return toReadings(res), nil
}

// Close removes the sensor's metric series.
func (e *Estimator) Close(ctx context.Context) error {
	e.metrics.forget(e.Name().ShortName())
	return nil
}
