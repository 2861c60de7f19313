// internal/publish/console_test.go
package publish

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/tamzrod/modbus-sensor-reader/internal/poller"
	"github.com/tamzrod/modbus-sensor-reader/internal/reader"
	"github.com/tamzrod/modbus-sensor-reader/internal/status"
)

func TestConsole_Publish(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsole(&buf)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	res := poller.Result{
		Device: "boiler",
		At:     at,
		Values: reader.Reading{"temp": 12.3, "door_open": true},
	}

	if err := sink.Publish(res); err != nil {
		t.Fatalf("Publish err=%v", err)
	}

	var got envelope
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Device != "boiler" {
		t.Fatalf("device = %q, want boiler", got.Device)
	}
	if got.Values["temp"] != 12.3 {
		t.Fatalf("temp = %v, want 12.3", got.Values["temp"])
	}
	if got.Values["door_open"] != true {
		t.Fatalf("door_open = %v, want true", got.Values["door_open"])
	}
}

func TestConsole_SkipsFailedCycles(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsole(&buf)

	res := poller.Result{Device: "boiler", Err: errors.New("reading coils failed")}
	if err := sink.Publish(res); err != nil {
		t.Fatalf("Publish err=%v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for failed cycle, got %s", buf.String())
	}
}

func TestConsole_PublishStatus(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsole(&buf)

	snap := status.Snapshot{State: status.StateError, LastError: "reading coils failed", ConsecutiveFailures: 3}
	if err := sink.PublishStatus(snap); err != nil {
		t.Fatalf("PublishStatus err=%v", err)
	}

	var got status.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.State != status.StateError || got.ConsecutiveFailures != 3 {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}
