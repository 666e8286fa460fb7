package estimator

import (
	"errors"
	"time"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
)

var errCaptureFrequency = errors.New("zero or negative capture frequency")

// getCaptureFrequencyHzFromConfig extract the capture_frequency_hz from the sensor config.
func getCaptureFrequencyHzFromConfig(c resource.Config) (float64, error) {
	var captureFreqHz float64
	var captureMethodFound bool
	for _, assocResourceCfg := range c.AssociatedResourceConfigs {
		captureMethods, ok := assocResourceCfg.Attributes["capture_methods"].([]interface{})
		if !ok {
			continue
		}
		captureMethodFound = true
		for _, methodInterface := range captureMethods {
			method, ok := methodInterface.(map[string]interface{})
			if !ok {
				continue
			}
			if name, _ := method["method"].(string); name == "Readings" {
				captureFreqHz, _ = method["capture_frequency_hz"].(float64)
			}
		}
	}
	if captureMethodFound && captureFreqHz <= 0 {
		return 0.0, errCaptureFrequency
	}
	return captureFreqHz, nil
}

// CheckCaptureFrequency reports whether data capture polls no faster than the modeled node transmits.
// A zero interval models a node without scheduled transmissions and is not checked.
func CheckCaptureFrequency(c resource.Config, intervalMins float64, logger logging.Logger) (bool, error) {
	captureFreq, err := getCaptureFrequencyHzFromConfig(c)
	if err != nil {
		return false, err
	}
	if intervalMins <= 0 {
		return true, nil
	}

	intervalSeconds := (time.Duration(intervalMins * float64(time.Minute))).Seconds()
	expectedFreq := 1 / intervalSeconds

	if captureFreq > expectedFreq {
		logger.Warnf(
			"configured capture frequency (%v) is greater than the transmit frequency (%v) of %v: "+
				"readings repeat between transmissions, lower capture frequency to avoid duplicate data",
			captureFreq,
			expectedFreq,
			c.ResourceName().AsNamed().Name().Name)
		return false, nil
	}
	return true, nil
}
