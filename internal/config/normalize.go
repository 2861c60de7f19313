// internal/config/normalize.go
package config

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Source.Mode == "" {
		cfg.Source.Mode = "tcp"
	}
	if cfg.Source.TimeoutMs == 0 {
		cfg.Source.TimeoutMs = 5000
	}
	if cfg.Source.DeviceName == "" {
		cfg.Source.DeviceName = "device"
	}

	if cfg.Source.Serial != nil {
		s := cfg.Source.Serial
		if s.BaudRate == 0 {
			s.BaudRate = 19200
		}
		if s.DataBits == 0 {
			s.DataBits = 8
		}
		if s.Parity == "" {
			s.Parity = "N"
		}
		if s.StopBits == 0 {
			s.StopBits = 1
		}
	}

	if cfg.Poll.IntervalMs == 0 {
		cfg.Poll.IntervalMs = 1000
	}

	if cfg.MQTT != nil && cfg.MQTT.KeepAliveS == 0 {
		cfg.MQTT.KeepAliveS = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
