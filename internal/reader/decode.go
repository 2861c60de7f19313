// internal/reader/decode.go
package reader

import (
	"fmt"
	"math"

	"github.com/tamzrod/modbus-sensor-reader/internal/correction"
	"github.com/tamzrod/modbus-sensor-reader/internal/regcodec"
)

// decodeDiscretes extracts each sensor's bit from one range result.
// A result shorter than the block means the read itself failed.
func decodeDiscretes(bits []bool, blk Block, out map[string]bool) error {
	if len(bits) < int(blk.Count) {
		return fmt.Errorf("range result has %d bits, block needs %d", len(bits), blk.Count)
	}

	for _, bs := range blk.Sensors {
		out[bs.ID] = bits[bs.Sensor.Address-blk.Start]
	}
	return nil
}

// decodeRegisters converts one range result into scaled, corrected,
// and rounded sensor values.
//
// Correction failures are the only recoverable error class: the
// warning callback fires and the pre-correction value is kept. Every
// other failure aborts the read.
func decodeRegisters(
	words []uint16,
	blk Block,
	codec regcodec.Codec,
	corrections map[string]*correction.Expression,
	warn func(id string, err error),
	out map[string]float64,
) error {
	if len(words) < int(blk.Count) {
		return fmt.Errorf("range result has %d registers, block needs %d", len(words), blk.Count)
	}

	for _, bs := range blk.Sensors {
		pos := bs.Sensor.Address - blk.Start

		raw, err := codec.DecodeWords(words[pos:pos+bs.Width], bs.Sensor.Type)
		if err != nil {
			return fmt.Errorf("sensor %q: %w", bs.ID, err)
		}

		value := raw * bs.Sensor.Factor

		if expr := corrections[bs.ID]; expr != nil {
			corrected, err := expr.Eval(value)
			if err != nil {
				warn(bs.ID, err)
			} else {
				value = corrected
			}
		}

		if integerType(bs.Sensor.Type) {
			value = roundPlaces(value, decimalsFor(bs.Sensor.Factor))
		}

		out[bs.ID] = value
	}

	return nil
}

func integerType(t regcodec.Type) bool {
	return t == regcodec.Int16 || t == regcodec.Int32 || t == regcodec.Uint32
}

// decimalsFor yields the digit count integer values are rounded to:
// round(1/factor) places. A factor of 10^-n recovers the n fractional
// digits the device dropped by transmitting scaled integers; factor 1
// rounds to a whole number.
func decimalsFor(factor float64) int {
	return int(math.Round(1 / factor))
}

func roundPlaces(v float64, places int) float64 {
	if places >= 16 {
		// Beyond float64 precision; rounding is an identity.
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
