// internal/publish/sink.go

// Package publish delivers poll snapshots to external sinks.
package publish

import (
	"time"

	"github.com/tamzrod/modbus-sensor-reader/internal/poller"
	"github.com/tamzrod/modbus-sensor-reader/internal/reader"
	"github.com/tamzrod/modbus-sensor-reader/internal/status"
)

// Sink receives readings. Implementations must tolerate failed poll
// results (Err set, no values).
type Sink interface {
	Publish(res poller.Result) error
	PublishStatus(snap status.Snapshot) error
	Close() error
}

// envelope is the JSON document sinks emit for one reading.
type envelope struct {
	Device    string         `json:"device"`
	Timestamp time.Time      `json:"timestamp"`
	Values    reader.Reading `json:"values"`
}
