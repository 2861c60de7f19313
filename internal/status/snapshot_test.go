// internal/status/snapshot_test.go
package status

import (
	"errors"
	"testing"
	"time"
)

func TestApply_Transitions(t *testing.T) {
	var snap Snapshot
	now := time.Now()

	if snap.State != StateUnknown {
		t.Fatalf("initial state = %v, want unknown", snap.State)
	}

	// unknown -> ok
	if !snap.Apply(now, nil) {
		t.Fatalf("expected change on first success")
	}
	if snap.State != StateOK || snap.LastSuccess != now {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	// ok -> ok: no change
	if snap.Apply(now.Add(time.Second), nil) {
		t.Fatalf("expected no change on repeated success")
	}

	// ok -> error
	readErr := errors.New("reading input registers failed")
	if !snap.Apply(now.Add(2*time.Second), readErr) {
		t.Fatalf("expected change on failure")
	}
	if snap.State != StateError || snap.ConsecutiveFailures != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LastError != readErr.Error() {
		t.Fatalf("last error = %q", snap.LastError)
	}

	// error persists, failure count climbs
	snap.Apply(now.Add(3*time.Second), readErr)
	if snap.ConsecutiveFailures != 2 {
		t.Fatalf("failures = %d, want 2", snap.ConsecutiveFailures)
	}

	// error -> ok resets
	if !snap.Apply(now.Add(4*time.Second), nil) {
		t.Fatalf("expected change on recovery")
	}
	if snap.ConsecutiveFailures != 0 || snap.LastError != "" {
		t.Fatalf("recovery should reset, got %+v", snap)
	}
}

func TestStateString(t *testing.T) {
	if StateOK.String() != "ok" || StateError.String() != "error" || StateUnknown.String() != "unknown" {
		t.Fatalf("unexpected state strings")
	}
}
