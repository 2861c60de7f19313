// internal/device/category.go
package device

// Category identifies one of the four fixed Modbus read areas.
type Category int

const (
	DiscreteInputs  Category = iota // FC 2
	DiscreteOutputs                 // FC 1 (coils)
	InputRegisters                  // FC 4
	OutputRegisters                 // FC 3 (holding)
)

// Categories lists all categories in the fixed processing order.
// ReadAll merges results in this order.
var Categories = [4]Category{
	DiscreteInputs,
	DiscreteOutputs,
	InputRegisters,
	OutputRegisters,
}

// Discrete reports whether the category addresses single bits.
func (c Category) Discrete() bool {
	return c == DiscreteInputs || c == DiscreteOutputs
}

func (c Category) String() string {
	switch c {
	case DiscreteInputs:
		return "discrete inputs"
	case DiscreteOutputs:
		return "discrete outputs"
	case InputRegisters:
		return "input registers"
	case OutputRegisters:
		return "output registers"
	}
	return "unknown"
}
