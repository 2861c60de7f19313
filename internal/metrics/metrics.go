// internal/metrics/metrics.go

// Package metrics defines the collector contract for read-cycle
// observability. Callers that do not export metrics use Nop.
package metrics

import "time"

// Collector receives observations from the reader, poller, and sinks.
type Collector interface {
	// ObserveRead records one per-category range read pass.
	ObserveRead(category string, d time.Duration, err error)

	// ObserveCycle records one full multi-category read cycle.
	ObserveCycle(d time.Duration, err error)

	// SetSensorValue records the latest decoded value of one sensor.
	SetSensorValue(id string, v float64)

	// SetHealth records the source device health code.
	SetHealth(code float64)

	// ObservePublish records one sink delivery.
	ObservePublish(sink string, err error)
}

// Nop is a Collector that records nothing.
type Nop struct{}

func (Nop) ObserveRead(string, time.Duration, error) {}
func (Nop) ObserveCycle(time.Duration, error)        {}
func (Nop) SetSensorValue(string, float64)           {}
func (Nop) SetHealth(float64)                        {}
func (Nop) ObservePublish(string, error)             {}
