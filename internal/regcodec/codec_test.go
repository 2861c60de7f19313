// internal/regcodec/codec_test.go
package regcodec

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestByteSize(t *testing.T) {
	cases := []struct {
		typ    Type
		legacy bool
		want   int
	}{
		{Int16, false, 2},
		{Int32, false, 4},
		{Int32, true, 2},
		{Uint32, false, 4},
		{Float, false, 4},
		{Byte, false, 1},
		{Boolean, false, 1},
	}

	for _, c := range cases {
		codec := Codec{LegacyInt32: c.legacy}
		got, err := codec.ByteSize(c.typ)
		if err != nil {
			t.Fatalf("ByteSize(%s) err=%v", c.typ, err)
		}
		if got != c.want {
			t.Fatalf("ByteSize(%s, legacy=%v) = %d, want %d", c.typ, c.legacy, got, c.want)
		}
	}

	if _, err := (Codec{}).ByteSize("int64"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestWordCount(t *testing.T) {
	codec := Codec{}

	cases := map[Type]uint16{
		Int16:   1,
		Int32:   2,
		Uint32:  2,
		Float:   2,
		Byte:    1,
		Boolean: 1,
	}

	for typ, want := range cases {
		got, err := codec.WordCount(typ)
		if err != nil {
			t.Fatalf("WordCount(%s) err=%v", typ, err)
		}
		if got != want {
			t.Fatalf("WordCount(%s) = %d, want %d", typ, got, want)
		}
	}

	legacy := Codec{LegacyInt32: true}
	if got, _ := legacy.WordCount(Int32); got != 1 {
		t.Fatalf("legacy WordCount(int32) = %d, want 1", got)
	}
}

func TestWordsToBytes(t *testing.T) {
	got := WordsToBytes([]uint16{0, 1})
	want := []byte{0x00, 0x00, 0x00, 0x01}
	if !bytes.Equal(got, want) {
		t.Fatalf("WordsToBytes = %x, want %x", got, want)
	}
}

func TestDecodeWords(t *testing.T) {
	codec := Codec{}

	cases := []struct {
		name  string
		words []uint16
		typ   Type
		want  float64
	}{
		{"int16 positive", []uint16{0x007B}, Int16, 123},
		{"int16 negative", []uint16{0xFFFF}, Int16, -1},
		{"int32", []uint16{0xFFFF, 0xFFFF}, Int32, -1},
		{"uint32", []uint16{0x0001, 0x0000}, Uint32, 65536},
		{"byte", []uint16{0x00FF}, Byte, 255},
		{"boolean true", []uint16{0x0001}, Boolean, 1},
		{"boolean false", []uint16{0x0000}, Boolean, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := codec.DecodeWords(c.words, c.typ)
			if err != nil {
				t.Fatalf("DecodeWords err=%v", err)
			}
			if got != c.want {
				t.Fatalf("DecodeWords = %v, want %v", got, c.want)
			}
		})
	}
}

func TestDecodeWords_Float(t *testing.T) {
	// IEEE-754 single for pi, high word first.
	words := []uint16{0x4049, 0x0FDB}

	got, err := Codec{}.DecodeWords(words, Float)
	if err != nil {
		t.Fatalf("DecodeWords err=%v", err)
	}
	if math.Abs(got-3.14159) > 1e-4 {
		t.Fatalf("DecodeWords = %v, want ~3.14159", got)
	}

	// Same value with the low word transmitted first.
	swapped := []uint16{0x0FDB, 0x4049}
	got, err = Codec{FloatLowWordFirst: true}.DecodeWords(swapped, Float)
	if err != nil {
		t.Fatalf("DecodeWords err=%v", err)
	}
	if math.Abs(got-3.14159) > 1e-4 {
		t.Fatalf("low-word-first DecodeWords = %v, want ~3.14159", got)
	}
}

func TestDecodeWords_LegacyInt32(t *testing.T) {
	legacy := Codec{LegacyInt32: true}

	got, err := legacy.DecodeWords([]uint16{0xFFFF}, Int32)
	if err != nil {
		t.Fatalf("DecodeWords err=%v", err)
	}
	// Legacy int32 is a single unsigned register.
	if got != 65535 {
		t.Fatalf("legacy int32 = %v, want 65535", got)
	}
}

func TestDecodeWords_LengthMismatch(t *testing.T) {
	codec := Codec{}

	cases := []struct {
		words []uint16
		typ   Type
	}{
		{[]uint16{0x0001}, Float},
		{[]uint16{0x0001, 0x0002}, Int16},
		{nil, Boolean},
		{[]uint16{0x0001, 0x0002, 0x0003}, Uint32},
	}

	for _, c := range cases {
		if _, err := codec.DecodeWords(c.words, c.typ); !errors.Is(err, ErrLength) {
			t.Fatalf("DecodeWords(%v, %s): expected ErrLength, got %v", c.words, c.typ, err)
		}
	}
}

func TestDecodeBytes_LengthMismatch(t *testing.T) {
	if _, err := (Codec{}).DecodeBytes([]byte{0x00}, Int16); !errors.Is(err, ErrLength) {
		t.Fatalf("expected ErrLength, got %v", err)
	}
	if _, err := (Codec{}).DecodeBytes([]byte{0x00, 0x01, 0x02}, Int16); !errors.Is(err, ErrLength) {
		t.Fatalf("expected ErrLength, got %v", err)
	}
}
