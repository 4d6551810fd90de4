// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"math"
	"testing"

	"github.com/x448/float16"
)

func mustUnpack(t *testing.T, data []byte) Item {
	t.Helper()
	parser := NewParser()
	var got Item
	var decodeErr error
	if err := parser.Unpack(data, 0, func(item Item, _ *uint64, err error) {
		got, decodeErr = item, err
	}); err != nil {
		t.Fatalf("Unpack call failed: %v", err)
	}
	if decodeErr != nil {
		t.Fatalf("decode failed: %v", decodeErr)
	}
	return got
}

func TestDecodeUnsignedWidthEscapes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint64
	}{
		{"inline", []byte{0x10}, 16},
		{"one byte", []byte{0x1c, 0xff}, 255},
		{"two byte", []byte{0x1d, 0x01, 0x00}, 256},
		{"four byte", []byte{0x1e, 0x00, 0x00, 0x01, 0x00}, 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := mustUnpack(t, tt.data)
			if item.Kind != KindUnsigned || item.Uint != tt.want {
				t.Fatalf("decoded %v, want Unsigned(%d)", item, tt.want)
			}
		})
	}
}

func TestDecodeEightByteOperandTruncated(t *testing.T) {
	// ai=31 under major type 0 announces an 8-byte operand; none follows.
	parser := NewParser()
	var decodeErr error
	if err := parser.Unpack([]byte{0x1f}, 0, func(_ Item, _ *uint64, err error) {
		decodeErr = err
	}); err != nil {
		t.Fatalf("Unpack call failed: %v", err)
	}
	if decodeErr == nil {
		t.Fatal("expected an error decoding ai=31 under major type 0 with no operand bytes")
	}
}

func TestDecodeBoolNullUndefined(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		kind Kind
	}{
		{"true", []byte{0xd9}, KindBool},
		{"false", []byte{0xd8}, KindBool},
		{"null", []byte{0xda}, KindNull},
		{"undefined", []byte{0xdb}, KindUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := mustUnpack(t, tt.data)
			if item.Kind != tt.kind {
				t.Fatalf("decoded kind %s, want %s", item.Kind, tt.kind)
			}
		})
	}
	trueItem := mustUnpack(t, []byte{0xd9})
	if !trueItem.Bool {
		t.Fatal("expected 0xd9 to decode as true")
	}
	falseItem := mustUnpack(t, []byte{0xd8})
	if falseItem.Bool {
		t.Fatal("expected 0xd8 to decode as false")
	}
}

func TestDecodeFloatWidths(t *testing.T) {
	// Half precision: 1.5 as float16 bits.
	half := float16.Fromfloat32(1.5)
	halfBytes := []byte{0xdd, byte(half.Bits() >> 8), byte(half.Bits())}
	item := mustUnpack(t, halfBytes)
	if item.Kind != KindFloat || item.FloatBits != 16 || item.Float != 1.5 {
		t.Fatalf("half-precision decode = %v, want Float(1.5, bits=16)", item)
	}

	// Single precision.
	bits32 := math.Float32bits(2.5)
	singleBytes := []byte{
		0xde,
		byte(bits32 >> 24), byte(bits32 >> 16), byte(bits32 >> 8), byte(bits32),
	}
	item = mustUnpack(t, singleBytes)
	if item.Kind != KindFloat || item.FloatBits != 32 || item.Float != 2.5 {
		t.Fatalf("single-precision decode = %v, want Float(2.5, bits=32)", item)
	}

	// Double precision, via the Generator's own output.
	data, err := Pack(3.25)
	if err != nil {
		t.Fatalf("Pack(3.25) failed: %v", err)
	}
	item = mustUnpack(t, data)
	if item.Kind != KindFloat || item.FloatBits != 64 || item.Float != 3.25 {
		t.Fatalf("double-precision decode = %v, want Float(3.25, bits=64)", item)
	}
}

func TestDecodeArrayAndMap(t *testing.T) {
	data, err := Pack([]any{1, "two", true})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	item := mustUnpack(t, data)
	if item.Kind != KindArray || len(item.Array) != 3 {
		t.Fatalf("decoded %v, want a 3-element array", item)
	}
	if item.Array[0].Uint != 1 || item.Array[1].Text != "two" || !item.Array[2].Bool {
		t.Fatalf("array elements wrong: %v", item.Array)
	}

	mapData, err := Pack(map[string]int{"k": 42})
	if err != nil {
		t.Fatalf("Pack(map) failed: %v", err)
	}
	mapItem := mustUnpack(t, mapData)
	if mapItem.Kind != KindMap || len(mapItem.Pairs) != 1 {
		t.Fatalf("decoded %v, want a 1-pair map", mapItem)
	}
	if mapItem.Pairs[0].Key.Text != "k" || mapItem.Pairs[0].Value.Uint != 42 {
		t.Fatalf("map pair wrong: %v", mapItem.Pairs[0])
	}
}

func TestDecodeTagFollowingTagFails(t *testing.T) {
	// Tag 11 (mt7, ai=11 -> 0b111_01011 = 0xeb) immediately followed by
	// another tag header (mt7, ai=15 -> 0xef) must fail one level deep.
	data := []byte{0xeb, 0xef, 0x01}
	parser := NewParser()
	var decodeErr error
	if err := parser.Unpack(data, 0, func(_ Item, _ *uint64, err error) {
		decodeErr = err
	}); err != nil {
		t.Fatalf("Unpack call failed: %v", err)
	}
	if decodeErr == nil {
		t.Fatal("expected an error when a tag immediately follows a tag")
	}
	var codecErr *CodecError
	if !errorsAs(decodeErr, &codecErr) || codecErr.Category != Protocol {
		t.Fatalf("expected a Protocol CodecError, got %v", decodeErr)
	}
}

func TestDecodeTruncationReportsEndOfFile(t *testing.T) {
	// major type 2 (bytes), length 5, but only 2 bytes supplied.
	data := []byte{0x45, 0x01, 0x02}
	parser := NewParser()
	var decodeErr error
	if err := parser.Unpack(data, 0, func(_ Item, _ *uint64, err error) {
		decodeErr = err
	}); err != nil {
		t.Fatalf("Unpack call failed: %v", err)
	}
	if decodeErr == nil {
		t.Fatal("expected a truncation error")
	}
	var codecErr *CodecError
	if !errorsAs(decodeErr, &codecErr) || codecErr.Category != Truncation {
		t.Fatalf("expected a Truncation CodecError, got %v", decodeErr)
	}
}

func TestUnpackRejectsBadSourceShape(t *testing.T) {
	parser := NewParser()
	err := parser.Unpack("not a valid source", 0, func(Item, *uint64, error) {})
	if err == nil {
		t.Fatal("expected an error for a string source")
	}
	var codecErr *CodecError
	if !errorsAs(err, &codecErr) || codecErr.Category != Usage {
		t.Fatalf("expected a Usage CodecError, got %v", err)
	}
}

func TestUnpackRejectsNilCallback(t *testing.T) {
	parser := NewParser()
	err := parser.Unpack([]byte{0x01}, 0, nil)
	if err == nil {
		t.Fatal("expected an error for a nil callback")
	}
}

func TestSimpleValueRoundTrip(t *testing.T) {
	s, err := NewSimple(200)
	if err != nil {
		t.Fatalf("NewSimple(200) failed: %v", err)
	}
	data, err := Pack(s)
	if err != nil {
		t.Fatalf("Pack(Simple(200)) failed: %v", err)
	}
	item := mustUnpack(t, data)
	if item.Kind != KindSimple || item.SimpleValue != 200 {
		t.Fatalf("decoded %v, want Simple(200)", item)
	}
}
