// Package main contains a testing script for the link budget estimator.
package main

import (
	"context"

	"github.com/viam-modules/lora-link-budget/estimator"
	"github.com/viam-modules/lora-link-budget/presets"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"go.viam.com/utils"
)

func main() {
	utils.ContextualMain(realMain, logging.NewLogger("cli"))
}

// realMain logs the readings of every preset named on the command line, or of the whole catalog.
func realMain(ctx context.Context, args []string, logger logging.Logger) error {
	names := args[1:]
	if len(names) == 0 {
		catalog, err := presets.Builtin()
		if err != nil {
			return err
		}
		names = catalog.Names()
	}

	for _, name := range names {
		cfg := resource.Config{
			Name:                name,
			ConvertedAttributes: &estimator.Config{Preset: name},
		}

		e, err := estimator.NewEstimator(ctx, nil, cfg, logger)
		if err != nil {
			return err
		}

		r, err := e.Readings(ctx, nil)
		if err != nil {
			return err
		}
		logger.Info(r)

		// same node moved to the 10% sub-band
		r, err = e.DoCommand(ctx, map[string]interface{}{"compute": map[string]interface{}{"eu_sub_band": "g3"}})
		if err != nil {
			logger.Error(err)
		} else {
			logger.Info(r)
		}

		if err := e.Close(ctx); err != nil {
			logger.Error(err)
		}
	}

	return nil
}
