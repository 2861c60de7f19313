// internal/reader/modbus/client.go

// Package modbus adapts goburrow/modbus to the reader.Client
// interface. The adapter is geometry-only: it issues range reads and
// unpacks the raw payloads, nothing more.
package modbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"
)

// Mode selects the transport.
type Mode string

const (
	ModeTCP Mode = "tcp"
	ModeRTU Mode = "rtu"
)

// Serial carries RTU line settings.
type Serial struct {
	Device   string
	BaudRate int
	DataBits int
	Parity   string // "N", "E", "O"
	StopBits int
}

// Config is minimal transport config.
type Config struct {
	Mode     Mode
	Endpoint string // host:port, TCP mode only
	Serial   Serial // RTU mode only
	UnitID   uint8
	Timeout  time.Duration
}

type handler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// Client implements reader.Client over Modbus TCP or RTU.
type Client struct {
	handler handler
	client  modbus.Client
}

// New creates a connected client. Fails fast if the transport cannot
// be opened.
func New(cfg Config) (*Client, error) {
	var h handler

	switch cfg.Mode {
	case ModeTCP, "":
		if cfg.Endpoint == "" {
			return nil, errors.New("modbus client: endpoint required")
		}
		th := modbus.NewTCPClientHandler(cfg.Endpoint)
		th.Timeout = cfg.Timeout
		th.SlaveId = cfg.UnitID
		h = th

	case ModeRTU:
		if cfg.Serial.Device == "" {
			return nil, errors.New("modbus client: serial device required")
		}
		rh := modbus.NewRTUClientHandler(cfg.Serial.Device)
		rh.BaudRate = cfg.Serial.BaudRate
		rh.DataBits = cfg.Serial.DataBits
		rh.Parity = cfg.Serial.Parity
		rh.StopBits = cfg.Serial.StopBits
		rh.SlaveId = cfg.UnitID
		rh.Timeout = cfg.Timeout
		h = rh

	default:
		return nil, fmt.Errorf("modbus client: unknown mode %q", cfg.Mode)
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus client: connect: %w", err)
	}

	return &Client{handler: h, client: modbus.NewClient(h)}, nil
}

// Close closes the underlying transport.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- reader.Client interface ----

func (c *Client) ReadCoils(addr, qty uint16) ([]bool, error) {
	if qty == 0 {
		return nil, nil
	}
	raw, err := c.client.ReadCoils(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackBits(raw, int(qty))
}

func (c *Client) ReadDiscreteInputs(addr, qty uint16) ([]bool, error) {
	if qty == 0 {
		return nil, nil
	}
	raw, err := c.client.ReadDiscreteInputs(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackBits(raw, int(qty))
}

func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}
	raw, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackRegisters(raw, int(qty))
}

func (c *Client) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}
	raw, err := c.client.ReadInputRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackRegisters(raw, int(qty))
}

// ---- helpers (pure geometry) ----

// unpackBits expands the packed bit payload, LSB first within each
// byte.
func unpackBits(data []byte, count int) ([]bool, error) {
	if len(data)*8 < count {
		return nil, fmt.Errorf("modbus: bit payload has %d bytes, need %d bits", len(data), count)
	}
	out := make([]bool, count)
	for i := 0; i < count; i++ {
		out[i] = data[i/8]&(1<<(i%8)) != 0
	}
	return out, nil
}

// unpackRegisters splits the big-endian register payload into words.
func unpackRegisters(data []byte, count int) ([]uint16, error) {
	if len(data) != 2*count {
		return nil, fmt.Errorf("modbus: register payload has %d bytes, need %d", len(data), 2*count)
	}
	out := make([]uint16, count)
	for i := range out {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out, nil
}
