// internal/config/config.go
package config

type Config struct {
	Source     SourceConfig   `yaml:"source"`
	Definition string         `yaml:"definition"`
	Decode     DecodeConfig   `yaml:"decode"`
	Poll       PollConfig     `yaml:"poll"`
	MQTT       *MQTTConfig    `yaml:"mqtt"`
	Metrics    *MetricsConfig `yaml:"metrics"`
	Logging    LoggingConfig  `yaml:"logging"`
}

// ---- SOURCE ----

type SourceConfig struct {
	// Mode selects the transport: "tcp" (default) or "rtu".
	Mode string `yaml:"mode"`

	// DeviceName labels readings in sinks and logs.
	DeviceName string `yaml:"device_name"`

	Endpoint  string        `yaml:"endpoint"` // tcp mode
	Serial    *SerialConfig `yaml:"serial"`   // rtu mode
	UnitID    uint8         `yaml:"unit_id"`
	TimeoutMs int           `yaml:"timeout_ms"`
}

type SerialConfig struct {
	Device   string `yaml:"device"`
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"`
	StopBits int    `yaml:"stop_bits"`
}

// ---- DECODE POLICY ----

type DecodeConfig struct {
	FloatLowWordFirst bool `yaml:"float_low_word_first"`
	LegacyInt32       bool `yaml:"legacy_int32"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- MQTT SINK ----

type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	Topic       string `yaml:"topic"`
	StatusTopic string `yaml:"status_topic"`
	QoS         byte   `yaml:"qos"`
	KeepAliveS  int    `yaml:"keepalive_s"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level string `yaml:"level"`
}
