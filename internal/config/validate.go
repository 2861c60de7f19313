// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// ------------------------------------------------------------
	// SOURCE TRANSPORT
	// ------------------------------------------------------------

	switch cfg.Source.Mode {
	case "", "tcp":
		if cfg.Source.Endpoint == "" {
			return fmt.Errorf("config: source.endpoint required in tcp mode")
		}
	case "rtu":
		if cfg.Source.Serial == nil || cfg.Source.Serial.Device == "" {
			return fmt.Errorf("config: source.serial.device required in rtu mode")
		}
		switch cfg.Source.Serial.Parity {
		case "", "N", "E", "O":
		default:
			return fmt.Errorf("config: source.serial.parity must be N, E, or O")
		}
	default:
		return fmt.Errorf("config: unknown source.mode %q", cfg.Source.Mode)
	}

	if cfg.Source.TimeoutMs < 0 {
		return fmt.Errorf("config: source.timeout_ms must be >= 0")
	}

	// device_name sanity (ASCII only)
	for i := 0; i < len(cfg.Source.DeviceName); i++ {
		if cfg.Source.DeviceName[i] > 0x7F {
			return fmt.Errorf("config: source.device_name must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// DEFINITION + POLL
	// ------------------------------------------------------------

	if cfg.Definition == "" {
		return fmt.Errorf("config: definition path required")
	}

	if cfg.Poll.IntervalMs < 0 {
		return fmt.Errorf("config: poll.interval_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// SINKS
	// ------------------------------------------------------------

	if cfg.MQTT != nil {
		if cfg.MQTT.Broker == "" {
			return fmt.Errorf("config: mqtt.broker required when mqtt is set")
		}
		if cfg.MQTT.Topic == "" {
			return fmt.Errorf("config: mqtt.topic required when mqtt is set")
		}
		if cfg.MQTT.QoS > 2 {
			return fmt.Errorf("config: mqtt.qos must be 0, 1, or 2")
		}
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	if cfg.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
			return fmt.Errorf("config: logging.level: %w", err)
		}
	}

	return nil
}
