// internal/poller/builder.go
package poller

import (
	"time"

	"github.com/rs/zerolog"

	cfg "github.com/tamzrod/modbus-sensor-reader/internal/config"
	"github.com/tamzrod/modbus-sensor-reader/internal/device"
	"github.com/tamzrod/modbus-sensor-reader/internal/metrics"
	"github.com/tamzrod/modbus-sensor-reader/internal/reader"
	rmodbus "github.com/tamzrod/modbus-sensor-reader/internal/reader/modbus"
	"github.com/tamzrod/modbus-sensor-reader/internal/regcodec"
)

// Build wires transport, definition, and reader into a Poller.
// Fails fast at startup: definition problems and unreachable
// transports surface here, before the first tick.
func Build(c *cfg.Config, log zerolog.Logger, mc metrics.Collector) (*Poller, func() error, error) {
	def, err := device.Load(c.Definition)
	if err != nil {
		return nil, nil, err
	}
	if err := device.Validate(def); err != nil {
		return nil, nil, err
	}

	mcfg := rmodbus.Config{
		Mode:     rmodbus.Mode(c.Source.Mode),
		Endpoint: c.Source.Endpoint,
		UnitID:   c.Source.UnitID,
		Timeout:  time.Duration(c.Source.TimeoutMs) * time.Millisecond,
	}
	if c.Source.Serial != nil {
		mcfg.Serial = rmodbus.Serial{
			Device:   c.Source.Serial.Device,
			BaudRate: c.Source.Serial.BaudRate,
			DataBits: c.Source.Serial.DataBits,
			Parity:   c.Source.Serial.Parity,
			StopBits: c.Source.Serial.StopBits,
		}
	}

	client, err := rmodbus.New(mcfg)
	if err != nil {
		return nil, nil, err
	}

	r, err := reader.New(reader.Config{
		Definition: def,
		Codec: regcodec.Codec{
			LegacyInt32:       c.Decode.LegacyInt32,
			FloatLowWordFirst: c.Decode.FloatLowWordFirst,
		},
		Logger:  log,
		Metrics: mc,
	}, client)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	p, err := New(Config{
		Device:   c.Source.DeviceName,
		Interval: time.Duration(c.Poll.IntervalMs) * time.Millisecond,
	}, r)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, client.Close, nil
}
