package estimator

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viam-modules/lora-link-budget/linkbudget"
)

const (
	computationsMetric = "lora_link_budget_computations_total"
	warningsMetric     = "lora_link_budget_warnings_total"
	airtimeMetric      = "lora_link_budget_airtime_ms"
)

// collector holds the Prometheus metrics shared by every estimator in the process.
type collector struct {
	computations *prometheus.CounterVec
	warnings     *prometheus.CounterVec
	airtime      *prometheus.GaugeVec
	gatherer     prometheus.Gatherer
}

func newCollector(reg prometheus.Registerer) (*collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	computations, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: computationsMetric,
		Help: "Total number of link budget computations, labeled by sensor.",
	}, []string{"sensor"}), computationsMetric)
	if err != nil {
		return nil, err
	}

	warnings, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: warningsMetric,
		Help: "Total number of configuration warnings reported, labeled by sensor and level.",
	}, []string{"sensor", "level"}), warningsMetric)
	if err != nil {
		return nil, err
	}

	airtime, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: airtimeMetric,
		Help: "Time on air of the last computed packet in milliseconds, labeled by sensor.",
	}, []string{"sensor"}), airtimeMetric)
	if err != nil {
		return nil, err
	}

	return &collector{computations: computations, warnings: warnings, airtime: airtime, gatherer: gatherer}, nil
}

func (c *collector) observe(sensor string, res linkbudget.Result) {
	if c == nil {
		return
	}
	c.computations.WithLabelValues(sensor).Inc()
	c.airtime.WithLabelValues(sensor).Set(res.Airtime.AirtimeMs)
	for _, w := range res.Warnings {
		c.warnings.WithLabelValues(sensor, w.Level.String()).Inc()
	}
}

// forget drops every series of the sensor.
func (c *collector) forget(sensor string) {
	if c == nil {
		return
	}
	c.computations.DeleteLabelValues(sensor)
	c.airtime.DeleteLabelValues(sensor)
	c.warnings.DeletePartialMatch(prometheus.Labels{"sensor": sensor})
}

// snapshot gathers the registry and returns the series of one sensor.
// Series that were never observed are left out; warnings are keyed by level.
func (c *collector) snapshot(sensor string) (map[string]interface{}, error) {
	warnings := map[string]interface{}{}
	out := map[string]interface{}{warningsMetric: warnings}
	if c == nil {
		return out, nil
	}

	families, err := c.gatherer.Gather()
	if err != nil {
		return nil, err
	}
	for _, mf := range families {
		name := mf.GetName()
		if name != computationsMetric && name != warningsMetric && name != airtimeMetric {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["sensor"] != sensor {
				continue
			}
			switch name {
			case computationsMetric:
				out[name] = m.GetCounter().GetValue()
			case warningsMetric:
				warnings[labels["level"]] = m.GetCounter().GetValue()
			case airtimeMetric:
				out[name] = m.GetGauge().GetValue()
			}
		}
	}
	return out, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
