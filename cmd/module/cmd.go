// package main is a module for the lora link budget estimator
package main

import (
	"github.com/viam-modules/lora-link-budget/estimator"
	"go.viam.com/rdk/components/sensor"
	"go.viam.com/rdk/module"
	"go.viam.com/rdk/resource"
)

func main() {
	module.ModularMain(
		resource.APIModel{API: sensor.API, Model: estimator.Model},
	)
}
