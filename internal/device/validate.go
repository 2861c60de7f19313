// internal/device/validate.go
package device

import (
	"fmt"

	"github.com/tamzrod/modbus-sensor-reader/internal/correction"
	"github.com/tamzrod/modbus-sensor-reader/internal/regcodec"
)

// Validate checks a definition for correctness.
// It performs declarative validation only and MUST NOT mutate.
//
// Sensor ids must be unique across all four categories: the reading is
// one flat map keyed by id, and a collision would silently drop a value.
func Validate(def *Definition) error {
	if def == nil {
		return fmt.Errorf("device: nil definition")
	}

	owner := make(map[string]Category)

	for _, cat := range Categories {
		for id, s := range def.Sensors(cat) {
			if id == "" {
				return fmt.Errorf("device: %s: empty sensor id", cat)
			}

			if prev, exists := owner[id]; exists {
				return fmt.Errorf(
					"device: sensor id %q used by both %s and %s",
					id, prev, cat,
				)
			}
			owner[id] = cat

			if cat.Discrete() {
				if err := validateDiscrete(cat, id, s); err != nil {
					return err
				}
				continue
			}
			if err := validateRegister(cat, id, s); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateDiscrete(cat Category, id string, s Sensor) error {
	if s.Type != "" {
		return fmt.Errorf("device: %s sensor %q: type is register-only", cat, id)
	}
	if s.Factor != 0 {
		return fmt.Errorf("device: %s sensor %q: factor is register-only", cat, id)
	}
	if s.ErrorCorrection != nil {
		return fmt.Errorf("device: %s sensor %q: error_correction is register-only", cat, id)
	}
	return nil
}

func validateRegister(cat Category, id string, s Sensor) error {
	if s.Type == "" {
		return fmt.Errorf("device: %s sensor %q: type required", cat, id)
	}
	if !regcodec.KnownType(s.Type) {
		return fmt.Errorf("device: %s sensor %q: unknown type %q", cat, id, s.Type)
	}
	if s.Factor == 0 {
		return fmt.Errorf("device: %s sensor %q: factor required and non-zero", cat, id)
	}

	if s.ErrorCorrection != nil {
		if _, err := correction.Compile(s.ErrorCorrection.Equation); err != nil {
			return fmt.Errorf("device: %s sensor %q: %w", cat, id, err)
		}
	}

	return nil
}
