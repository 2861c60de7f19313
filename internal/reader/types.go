// internal/reader/types.go
package reader

import (
	"github.com/tamzrod/modbus-sensor-reader/internal/device"
)

// Client abstracts the Modbus range-read operations the reader needs.
// The reader depends on geometry only; framing, timeouts, and retries
// belong to the transport behind this interface.
type Client interface {
	ReadCoils(addr, qty uint16) ([]bool, error)              // FC 1
	ReadDiscreteInputs(addr, qty uint16) ([]bool, error)     // FC 2
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)   // FC 4
}

// BlockSensor is one sensor placed inside a block, with its occupied
// width in addresses (1 for discretes, word count for registers).
type BlockSensor struct {
	ID     string
	Sensor device.Sensor
	Width  uint16
}

// Block is one contiguous address span read in a single protocol call.
// Sensors are ordered by ascending address and fill the span without
// gaps.
type Block struct {
	Start   uint16
	Count   uint16
	Sensors []BlockSensor
}

// Reading is one flat snapshot of all sensor values, keyed by sensor
// id. Values are bool for discretes and float64 for registers. A
// Reading is freshly allocated on every read and never retained.
type Reading map[string]any
