// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/modbus-sensor-reader/internal/reader"
)

// Source is anything that can produce one full reading.
type Source interface {
	ReadAll() (reader.Reading, error)
}

// Result is a snapshot produced by one poll cycle.
type Result struct {
	Device  string
	At      time.Time
	Elapsed time.Duration

	Values reader.Reading
	Err    error // non-nil means the poll cycle failed
}
