// internal/publish/console.go
package publish

import (
	"encoding/json"
	"io"

	"github.com/tamzrod/modbus-sensor-reader/internal/poller"
	"github.com/tamzrod/modbus-sensor-reader/internal/status"
)

// Console writes one JSON line per reading, for one-shot runs and
// diagnostics.
type Console struct {
	enc *json.Encoder
}

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{enc: json.NewEncoder(w)}
}

func (c *Console) Publish(res poller.Result) error {
	if res.Err != nil {
		// Failed cycles carry no values; nothing to print.
		return nil
	}
	return c.enc.Encode(envelope{
		Device:    res.Device,
		Timestamp: res.At,
		Values:    res.Values,
	})
}

func (c *Console) PublishStatus(snap status.Snapshot) error {
	return c.enc.Encode(snap)
}

func (c *Console) Close() error { return nil }
