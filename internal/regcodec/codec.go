// internal/regcodec/codec.go
package regcodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Type names the logical data type of a register sensor.
// Width and interpretation are fixed per type; see Codec.
type Type string

const (
	Int16   Type = "int16"
	Int32   Type = "int32"
	Uint32  Type = "uint32"
	Float   Type = "float"
	Byte    Type = "byte"
	Boolean Type = "boolean"
)

// ErrUnknownType is returned for a type name outside the fixed set.
var ErrUnknownType = errors.New("regcodec: unknown data type")

// ErrLength is returned when a byte sequence does not exactly match
// the declared type's width. Decoding never truncates or pads.
var ErrLength = errors.New("regcodec: byte length mismatch")

// Codec holds the decode policy flags. The zero value decodes int32
// as a signed 32-bit quantity over two registers and floats with the
// high word first.
type Codec struct {
	// LegacyInt32 reproduces the historical device definition format
	// where int32 occupied a single register and decoded unsigned.
	LegacyInt32 bool

	// FloatLowWordFirst reverses register order for float sensors,
	// for devices that transmit the low half of the IEEE-754 single first.
	FloatLowWordFirst bool
}

// ByteSize returns the width in bytes of the given type.
func (c Codec) ByteSize(t Type) (int, error) {
	switch t {
	case Int16:
		return 2, nil
	case Int32:
		if c.LegacyInt32 {
			return 2, nil
		}
		return 4, nil
	case Uint32:
		return 4, nil
	case Float:
		return 4, nil
	case Byte, Boolean:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

// WordCount returns the number of consecutive 16-bit registers the
// given type occupies. One-byte types still occupy a full register.
func (c Codec) WordCount(t Type) (uint16, error) {
	n, err := c.ByteSize(t)
	if err != nil {
		return 0, err
	}
	return uint16((n + 1) / 2), nil
}

// WordsToBytes packs registers into a byte sequence, high byte first
// per register.
func WordsToBytes(words []uint16) []byte {
	out := make([]byte, 2*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint16(out[2*i:], w)
	}
	return out
}

// DecodeWords decodes a register slice into a numeric value of the
// given type. The slice length must equal WordCount(t) exactly.
func (c Codec) DecodeWords(words []uint16, t Type) (float64, error) {
	want, err := c.WordCount(t)
	if err != nil {
		return 0, err
	}
	if len(words) != int(want) {
		return 0, fmt.Errorf("%w: type %s requires %d registers, got %d",
			ErrLength, t, want, len(words))
	}

	if t == Float && c.FloatLowWordFirst {
		swapped := make([]uint16, len(words))
		for i, w := range words {
			swapped[len(words)-1-i] = w
		}
		words = swapped
	}

	b := WordsToBytes(words)

	// One-byte types carry their value in the low byte of the register.
	if size, _ := c.ByteSize(t); size == 1 {
		b = b[1:]
	}

	return c.DecodeBytes(b, t)
}

// DecodeBytes interprets a big-endian byte sequence as the given type.
// The sequence length must equal ByteSize(t) exactly or ErrLength is
// returned.
func (c Codec) DecodeBytes(b []byte, t Type) (float64, error) {
	want, err := c.ByteSize(t)
	if err != nil {
		return 0, err
	}
	if len(b) != want {
		return 0, fmt.Errorf("%w: type %s requires %d bytes, got %d",
			ErrLength, t, want, len(b))
	}

	switch t {
	case Int16:
		return float64(int16(binary.BigEndian.Uint16(b))), nil
	case Int32:
		if c.LegacyInt32 {
			return float64(binary.BigEndian.Uint16(b)), nil
		}
		return float64(int32(binary.BigEndian.Uint32(b))), nil
	case Uint32:
		return float64(binary.BigEndian.Uint32(b)), nil
	case Float:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case Byte:
		return float64(b[0]), nil
	case Boolean:
		if b[0] != 0 {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

// KnownType reports whether t names one of the supported data types.
func KnownType(t Type) bool {
	switch t {
	case Int16, Int32, Uint32, Float, Byte, Boolean:
		return true
	}
	return false
}
