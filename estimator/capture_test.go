package estimator

import (
	"testing"

	"github.com/viam-modules/lora-link-budget/testutils"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"go.viam.com/test"
)

func TestCheckCaptureFrequency(t *testing.T) {
	logger := logging.NewTestLogger(t)

	tests := []struct {
		name         string
		captureFreq  *float64
		intervalMins float64
		expectedOK   bool
		expectedErr  error
	}{
		{name: "no capture configured", intervalMins: 15, expectedOK: true},
		{name: "capture slower than uplinks", captureFreq: testutils.Ptr(0.0005), intervalMins: 15, expectedOK: true},
		{name: "capture faster than uplinks", captureFreq: testutils.Ptr(1.0), intervalMins: 15, expectedOK: false},
		{name: "no schedule", captureFreq: testutils.Ptr(1.0), intervalMins: 0, expectedOK: true},
		{name: "zero capture frequency", captureFreq: testutils.Ptr(0.0), intervalMins: 15, expectedErr: errCaptureFrequency},
		{name: "negative capture frequency", captureFreq: testutils.Ptr(-1.0), intervalMins: 0, expectedErr: errCaptureFrequency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := resource.Config{Name: "capture"}
			if tt.captureFreq != nil {
				conf.AssociatedResourceConfigs = testutils.CaptureConfig(*tt.captureFreq)
			}
			ok, err := CheckCaptureFrequency(conf, tt.intervalMins, logger)
			if tt.expectedErr != nil {
				test.That(t, err, test.ShouldBeError, tt.expectedErr)
				return
			}
			test.That(t, err, test.ShouldBeNil)
			test.That(t, ok, test.ShouldEqual, tt.expectedOK)
		})
	}
}

func TestGetCaptureFrequencyIgnoresOtherMethods(t *testing.T) {
	conf := resource.Config{
		Name: "capture",
		AssociatedResourceConfigs: []resource.AssociatedResourceConfig{
			{
				Attributes: map[string]interface{}{
					"capture_methods": []interface{}{
						map[string]interface{}{"method": "DoCommand", "capture_frequency_hz": 5.0},
						map[string]interface{}{"method": "Readings", "capture_frequency_hz": 0.1},
						"not a method",
					},
				},
			},
		},
	}
	freq, err := getCaptureFrequencyHzFromConfig(conf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, freq, test.ShouldEqual, 0.1)
}
