// internal/device/definition.go

// Package device holds the declarative device definition: the mapping
// from named sensors to Modbus addresses, data types, scale factors,
// and optional error-correction equations.
package device

import (
	"github.com/tamzrod/modbus-sensor-reader/internal/regcodec"
)

// Sensor is one named value on the device. Immutable after load.
// Type and Factor apply to register sensors only; discrete sensors
// carry an address and nothing else.
type Sensor struct {
	Address uint16        `yaml:"address"`
	Type    regcodec.Type `yaml:"type,omitempty"`
	Factor  float64       `yaml:"factor,omitempty"`

	ErrorCorrection *Correction `yaml:"error_correction,omitempty"`
}

// Correction is an optional post-scale corrective formula.
type Correction struct {
	Equation string `yaml:"equation"`
}

// Definition is the full device document: exactly four category maps,
// each keyed by sensor id.
type Definition struct {
	DiscreteInputs  map[string]Sensor `yaml:"discrete_inputs"`
	DiscreteOutputs map[string]Sensor `yaml:"discrete_outputs"`
	InputRegisters  map[string]Sensor `yaml:"input_registers"`
	OutputRegisters map[string]Sensor `yaml:"output_registers"`
}

// Sensors returns the sensor map for one category.
func (d *Definition) Sensors(c Category) map[string]Sensor {
	switch c {
	case DiscreteInputs:
		return d.DiscreteInputs
	case DiscreteOutputs:
		return d.DiscreteOutputs
	case InputRegisters:
		return d.InputRegisters
	case OutputRegisters:
		return d.OutputRegisters
	}
	return nil
}
