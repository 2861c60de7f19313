// internal/reader/reader.go

// Package reader turns a device definition into range reads and typed
// sensor values. The read plan is computed once at construction;
// reading never re-groups.
package reader

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/modbus-sensor-reader/internal/correction"
	"github.com/tamzrod/modbus-sensor-reader/internal/device"
	"github.com/tamzrod/modbus-sensor-reader/internal/metrics"
	"github.com/tamzrod/modbus-sensor-reader/internal/regcodec"
)

// Config carries everything a Reader needs besides the transport.
type Config struct {
	Definition *device.Definition
	Codec      regcodec.Codec
	Logger     zerolog.Logger
	Metrics    metrics.Collector // nil means no metrics
}

// Reader reads all sensors of one device. Immutable after New except
// for the transient per-call reading, which is freshly allocated and
// never retained.
type Reader struct {
	client  Client
	codec   regcodec.Codec
	log     zerolog.Logger
	metrics metrics.Collector

	blocks      map[device.Category][]Block
	corrections map[string]*correction.Expression
}

// New computes the read plan and compiles all correction equations.
// The definition must already have passed device.Validate.
func New(cfg Config, client Client) (*Reader, error) {
	if cfg.Definition == nil {
		return nil, errors.New("reader: definition required")
	}
	if client == nil {
		return nil, errors.New("reader: client required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop{}
	}

	blocks, err := BuildBlocks(cfg.Definition, cfg.Codec)
	if err != nil {
		return nil, err
	}

	corrections := make(map[string]*correction.Expression)
	for _, cat := range []device.Category{device.InputRegisters, device.OutputRegisters} {
		for id, s := range cfg.Definition.Sensors(cat) {
			if s.ErrorCorrection == nil {
				continue
			}
			expr, err := correction.Compile(s.ErrorCorrection.Equation)
			if err != nil {
				return nil, fmt.Errorf("reader: sensor %q: %w", id, err)
			}
			corrections[id] = expr
		}
	}

	return &Reader{
		client:      client,
		codec:       cfg.Codec,
		log:         cfg.Logger,
		metrics:     cfg.Metrics,
		blocks:      blocks,
		corrections: corrections,
	}, nil
}

// Blocks returns the read plan for one category, in ascending address
// order. The returned slice must not be modified.
func (r *Reader) Blocks(cat device.Category) []Block {
	return r.blocks[cat]
}

// ReadDiscreteInputs reads all discrete input sensors.
func (r *Reader) ReadDiscreteInputs() (map[string]bool, error) {
	return r.readDiscretes(device.DiscreteInputs, r.client.ReadDiscreteInputs)
}

// ReadDiscreteOutputs reads all discrete output (coil) sensors.
func (r *Reader) ReadDiscreteOutputs() (map[string]bool, error) {
	return r.readDiscretes(device.DiscreteOutputs, r.client.ReadCoils)
}

// ReadInputRegisters reads and decodes all input register sensors.
func (r *Reader) ReadInputRegisters() (map[string]float64, error) {
	return r.readRegisters(device.InputRegisters, r.client.ReadInputRegisters)
}

// ReadOutputRegisters reads and decodes all holding register sensors.
func (r *Reader) ReadOutputRegisters() (map[string]float64, error) {
	return r.readRegisters(device.OutputRegisters, r.client.ReadHoldingRegisters)
}

// ReadAll reads every category in the fixed order and merges the
// results into one flat reading. All-or-nothing: the first failure
// aborts and no partial reading is returned.
func (r *Reader) ReadAll() (Reading, error) {
	out := make(Reading)

	di, err := r.ReadDiscreteInputs()
	if err != nil {
		return nil, err
	}
	do, err := r.ReadDiscreteOutputs()
	if err != nil {
		return nil, err
	}
	ir, err := r.ReadInputRegisters()
	if err != nil {
		return nil, err
	}
	or, err := r.ReadOutputRegisters()
	if err != nil {
		return nil, err
	}

	for id, v := range di {
		out[id] = v
	}
	for id, v := range do {
		out[id] = v
	}
	for id, v := range ir {
		out[id] = v
	}
	for id, v := range or {
		out[id] = v
	}

	return out, nil
}

func (r *Reader) readDiscretes(cat device.Category, read func(addr, qty uint16) ([]bool, error)) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(r.blocks[cat]) == 0 {
		return out, nil
	}
	start := time.Now()

	for _, blk := range r.blocks[cat] {
		bits, err := read(blk.Start, blk.Count)
		if err == nil {
			err = decodeDiscretes(bits, blk, out)
		}
		if err != nil {
			err = fmt.Errorf("reader: reading %s failed: %w", cat, err)
			r.metrics.ObserveRead(cat.String(), time.Since(start), err)
			return nil, err
		}
	}

	r.metrics.ObserveRead(cat.String(), time.Since(start), nil)
	return out, nil
}

func (r *Reader) readRegisters(cat device.Category, read func(addr, qty uint16) ([]uint16, error)) (map[string]float64, error) {
	out := make(map[string]float64)
	if len(r.blocks[cat]) == 0 {
		return out, nil
	}
	start := time.Now()

	warn := func(id string, err error) {
		r.log.Warn().
			Str("category", cat.String()).
			Str("sensor", id).
			Err(err).
			Msg("error correction failed, using uncorrected value")
	}

	for _, blk := range r.blocks[cat] {
		words, err := read(blk.Start, blk.Count)
		if err == nil {
			err = decodeRegisters(words, blk, r.codec, r.corrections, warn, out)
		}
		if err != nil {
			err = fmt.Errorf("reader: reading %s failed: %w", cat, err)
			r.metrics.ObserveRead(cat.String(), time.Since(start), err)
			return nil, err
		}
	}

	r.metrics.ObserveRead(cat.String(), time.Since(start), nil)
	return out, nil
}
