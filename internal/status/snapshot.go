// internal/status/snapshot.go

// Package status tracks source device health derived from poll
// results. Health codes are stable values exported to sinks and
// metrics.
package status

import "time"

// State is the device health code.
type State uint16

const (
	StateUnknown State = 0
	StateOK      State = 1
	StateError   State = 2
)

func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Snapshot is the current health of the source device.
// It contains no memory of the past beyond current state.
type Snapshot struct {
	State               State     `json:"state"`
	LastError           string    `json:"last_error,omitempty"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastSuccess         time.Time `json:"last_success,omitempty"`
	LastChange          time.Time `json:"last_change"`
}

// Apply folds one poll outcome into the snapshot and reports whether
// the externally visible state changed. Sinks publish on change only.
func (s *Snapshot) Apply(at time.Time, err error) bool {
	if err == nil {
		s.LastSuccess = at
		changed := s.State != StateOK || s.LastError != "" || s.ConsecutiveFailures != 0
		if changed {
			s.State = StateOK
			s.LastError = ""
			s.ConsecutiveFailures = 0
			s.LastChange = at
		}
		return changed
	}

	s.ConsecutiveFailures++

	changed := s.State != StateError || s.LastError != err.Error()
	if changed {
		s.State = StateError
		s.LastError = err.Error()
		s.LastChange = at
	}
	// Failure count advancing is a change worth republishing.
	return true
}
