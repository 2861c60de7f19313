// internal/device/load.go
package device

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a device definition file. The document is
// YAML; JSON definitions parse as a subset. Load does not validate.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("device: reading definition: %w", err)
	}
	return Parse(data)
}

// Parse parses a device definition document.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("device: parsing definition: %w", err)
	}
	return &def, nil
}
