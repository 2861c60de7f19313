// internal/reader/reader_test.go
package reader

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tamzrod/modbus-sensor-reader/internal/device"
	"github.com/tamzrod/modbus-sensor-reader/internal/regcodec"
)

// fakeClient serves canned data keyed by start address, per area.
type fakeClient struct {
	coils    map[uint16][]bool
	discrete map[uint16][]bool
	holding  map[uint16][]uint16
	input    map[uint16][]uint16

	failFC uint8
	calls  []string
}

func (f *fakeClient) ReadCoils(addr, qty uint16) ([]bool, error) {
	f.calls = append(f.calls, "fc1")
	if f.failFC == 1 {
		return nil, errors.New("fail fc1")
	}
	return f.discreteAt(f.coils, addr, qty), nil
}

func (f *fakeClient) ReadDiscreteInputs(addr, qty uint16) ([]bool, error) {
	f.calls = append(f.calls, "fc2")
	if f.failFC == 2 {
		return nil, errors.New("fail fc2")
	}
	return f.discreteAt(f.discrete, addr, qty), nil
}

func (f *fakeClient) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	f.calls = append(f.calls, "fc3")
	if f.failFC == 3 {
		return nil, errors.New("fail fc3")
	}
	return f.registersAt(f.holding, addr, qty), nil
}

func (f *fakeClient) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	f.calls = append(f.calls, "fc4")
	if f.failFC == 4 {
		return nil, errors.New("fail fc4")
	}
	return f.registersAt(f.input, addr, qty), nil
}

func (f *fakeClient) discreteAt(m map[uint16][]bool, addr, qty uint16) []bool {
	if v, ok := m[addr]; ok {
		return v
	}
	return make([]bool, qty)
}

func (f *fakeClient) registersAt(m map[uint16][]uint16, addr, qty uint16) []uint16 {
	if v, ok := m[addr]; ok {
		return v
	}
	return make([]uint16, qty)
}

func newReader(t *testing.T, def *device.Definition, client Client, codec regcodec.Codec) *Reader {
	t.Helper()
	r, err := New(Config{Definition: def, Codec: codec, Logger: zerolog.Nop()}, client)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	return r
}

func TestReadDiscreteInputs(t *testing.T) {
	def := &device.Definition{
		DiscreteInputs: map[string]device.Sensor{
			"a": {Address: 0},
			"b": {Address: 1},
			"c": {Address: 3},
		},
	}
	client := &fakeClient{
		discrete: map[uint16][]bool{
			0: {true, false},
			3: {true},
		},
	}

	r := newReader(t, def, client, regcodec.Codec{})

	got, err := r.ReadDiscreteInputs()
	if err != nil {
		t.Fatalf("ReadDiscreteInputs err=%v", err)
	}
	want := map[string]bool{"a": true, "b": false, "c": true}
	for id, v := range want {
		if got[id] != v {
			t.Fatalf("sensor %s = %v, want %v (all: %v)", id, got[id], v, got)
		}
	}
}

func TestReadOutputRegisters_Float(t *testing.T) {
	def := &device.Definition{
		OutputRegisters: map[string]device.Sensor{
			"temp": {Address: 10, Type: "float", Factor: 1},
		},
	}
	client := &fakeClient{
		holding: map[uint16][]uint16{10: {0x4049, 0x0FDB}},
	}

	r := newReader(t, def, client, regcodec.Codec{})

	got, err := r.ReadOutputRegisters()
	if err != nil {
		t.Fatalf("ReadOutputRegisters err=%v", err)
	}
	if math.Abs(got["temp"]-3.14159) > 1e-4 {
		t.Fatalf("temp = %v, want ~3.14159", got["temp"])
	}
}

func TestReadInputRegisters_ScaledInt(t *testing.T) {
	def := &device.Definition{
		InputRegisters: map[string]device.Sensor{
			"temp": {Address: 0, Type: "int16", Factor: 0.1},
		},
	}
	client := &fakeClient{
		input: map[uint16][]uint16{0: {0x007B}}, // 123
	}

	r := newReader(t, def, client, regcodec.Codec{})

	got, err := r.ReadInputRegisters()
	if err != nil {
		t.Fatalf("ReadInputRegisters err=%v", err)
	}
	// 123 * 0.1, rounded to round(1/0.1) = 10 decimal places.
	if got["temp"] != 12.3 {
		t.Fatalf("temp = %v, want 12.3", got["temp"])
	}
}

func TestReadRegisters_Correction(t *testing.T) {
	def := &device.Definition{
		InputRegisters: map[string]device.Sensor{
			"power": {
				Address: 0, Type: "int16", Factor: 1,
				ErrorCorrection: &device.Correction{Equation: "x * 2"},
			},
		},
	}
	client := &fakeClient{input: map[uint16][]uint16{0: {5}}}

	r := newReader(t, def, client, regcodec.Codec{})

	got, err := r.ReadInputRegisters()
	if err != nil {
		t.Fatalf("ReadInputRegisters err=%v", err)
	}
	if got["power"] != 10 {
		t.Fatalf("power = %v, want 10", got["power"])
	}
}

func TestReadRegisters_CorrectionFallback(t *testing.T) {
	def := &device.Definition{
		InputRegisters: map[string]device.Sensor{
			"level": {
				Address: 0, Type: "int16", Factor: 1,
				ErrorCorrection: &device.Correction{Equation: "sqrt(0 - x)"},
			},
		},
	}
	client := &fakeClient{input: map[uint16][]uint16{0: {9}}}

	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r, err := New(Config{Definition: def, Logger: log}, client)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	got, err := r.ReadInputRegisters()
	if err != nil {
		t.Fatalf("ReadInputRegisters err=%v", err)
	}
	// Correction fails on sqrt of a negative; the uncorrected value stays.
	if got["level"] != 9 {
		t.Fatalf("level = %v, want 9", got["level"])
	}
	if !strings.Contains(buf.String(), "error correction failed") {
		t.Fatalf("expected a warning, log: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"sensor":"level"`) {
		t.Fatalf("warning should name the sensor, log: %s", buf.String())
	}
}

func TestReadRegisters_ShortResult(t *testing.T) {
	def := &device.Definition{
		InputRegisters: map[string]device.Sensor{
			"flow": {Address: 0, Type: "float", Factor: 1},
		},
	}
	client := &fakeClient{input: map[uint16][]uint16{0: {0x4049}}} // one word short

	r := newReader(t, def, client, regcodec.Codec{})

	_, err := r.ReadInputRegisters()
	if err == nil {
		t.Fatalf("expected error for short range result")
	}
	if !strings.Contains(err.Error(), "reading input registers failed") {
		t.Fatalf("error should name the category, got %v", err)
	}
}

func TestReadAll_MergesAllCategories(t *testing.T) {
	def := &device.Definition{
		DiscreteInputs:  map[string]device.Sensor{"din": {Address: 0}},
		DiscreteOutputs: map[string]device.Sensor{"dout": {Address: 0}},
		InputRegisters: map[string]device.Sensor{
			"ir": {Address: 0, Type: "int16", Factor: 1},
		},
		OutputRegisters: map[string]device.Sensor{
			"or": {Address: 0, Type: "int16", Factor: 1},
		},
	}
	client := &fakeClient{
		discrete: map[uint16][]bool{0: {true}},
		coils:    map[uint16][]bool{0: {false}},
		input:    map[uint16][]uint16{0: {7}},
		holding:  map[uint16][]uint16{0: {8}},
	}

	r := newReader(t, def, client, regcodec.Codec{})

	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll err=%v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 values, got %d: %v", len(got), got)
	}
	if got["din"] != true || got["dout"] != false {
		t.Fatalf("discretes wrong: %v", got)
	}
	if got["ir"] != 7.0 || got["or"] != 8.0 {
		t.Fatalf("registers wrong: %v", got)
	}
}

func TestReadAll_AbortsOnFirstFailure(t *testing.T) {
	def := &device.Definition{
		DiscreteInputs: map[string]device.Sensor{"din": {Address: 0}},
		InputRegisters: map[string]device.Sensor{
			"ir": {Address: 0, Type: "int16", Factor: 1},
		},
	}
	client := &fakeClient{failFC: 4}

	r := newReader(t, def, client, regcodec.Codec{})

	res, err := r.ReadAll()
	if err == nil {
		t.Fatalf("expected error")
	}
	if res != nil {
		t.Fatalf("expected no partial reading, got %v", res)
	}
}

func TestReadAll_EmptyDefinition(t *testing.T) {
	client := &fakeClient{}
	r := newReader(t, &device.Definition{}, client, regcodec.Codec{})

	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll err=%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty reading, got %v", got)
	}
	if len(client.calls) != 0 {
		t.Fatalf("expected no reads for an empty definition, got %v", client.calls)
	}
}

func TestNew_RequiresDefinitionAndClient(t *testing.T) {
	if _, err := New(Config{}, &fakeClient{}); err == nil {
		t.Fatalf("expected error for missing definition")
	}
	if _, err := New(Config{Definition: &device.Definition{}}, nil); err == nil {
		t.Fatalf("expected error for missing client")
	}
}
