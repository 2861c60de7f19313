// internal/publish/mqtt.go
package publish

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tamzrod/modbus-sensor-reader/internal/poller"
	"github.com/tamzrod/modbus-sensor-reader/internal/status"
)

// MQTTConfig carries broker and topic settings.
type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	Topic       string
	StatusTopic string
	QoS         byte
	KeepAlive   time.Duration

	ConnectTimeout time.Duration
}

// MQTT publishes readings to a broker. Readings go to Topic; health
// snapshots go retained to StatusTopic so late subscribers see the
// current state.
type MQTT struct {
	cfg    MQTTConfig
	client mqtt.Client
	log    zerolog.Logger
}

// NewMQTT connects to the broker. The client reconnects on its own;
// publishes while disconnected fail and are reported per call.
func NewMQTT(cfg MQTTConfig, log zerolog.Logger) (*MQTT, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("publish: mqtt broker required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("publish: mqtt topic required")
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "sensorreader-" + uuid.NewString()[:8]
	}
	if cfg.KeepAlive == 0 {
		cfg.KeepAlive = 60 * time.Second
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetKeepAlive(cfg.KeepAlive)
	opts.SetAutoReconnect(true)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Info().Str("broker", cfg.Broker).Msg("connected to MQTT broker")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, fmt.Errorf("publish: mqtt connect timed out")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("publish: mqtt connect: %w", err)
	}

	return &MQTT{cfg: cfg, client: client, log: log}, nil
}

func (m *MQTT) Publish(res poller.Result) error {
	if res.Err != nil {
		// Failed cycles surface through the status topic only.
		return nil
	}

	payload, err := json.Marshal(envelope{
		Device:    res.Device,
		Timestamp: res.At,
		Values:    res.Values,
	})
	if err != nil {
		return fmt.Errorf("publish: encoding reading: %w", err)
	}

	token := m.client.Publish(m.cfg.Topic, m.cfg.QoS, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: mqtt publish: %w", err)
	}
	return nil
}

func (m *MQTT) PublishStatus(snap status.Snapshot) error {
	if m.cfg.StatusTopic == "" {
		return nil
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("publish: encoding status: %w", err)
	}

	token := m.client.Publish(m.cfg.StatusTopic, m.cfg.QoS, true, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: mqtt status publish: %w", err)
	}
	return nil
}

func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}
