// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// interop_test.go proves, rather than just asserts in prose, that this
// package's wire format is not interchangeable with RFC 7049/8949 CBOR.
// github.com/fxamacker/cbor/v2 is used here purely as a reference
// standards-compliant implementation to diverge against — it is not a
// dependency of the Generator or Parser.
package codec

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestInteropDivergesOnWidthEscapeThreshold(t *testing.T) {
	// 25 sits inside this package's inline range (ai <= 27) but outside
	// standard CBOR's (ai <= 23), so the two encoders disagree both on
	// length and on the leading byte.
	ours, err := Pack(uint(25))
	if err != nil {
		t.Fatalf("Pack(25) failed: %v", err)
	}
	standard, err := cbor.Marshal(uint(25))
	if err != nil {
		t.Fatalf("cbor.Marshal(25) failed: %v", err)
	}

	if bytes.Equal(ours, standard) {
		t.Fatalf("expected divergence from standard CBOR for 25, both produced %x", ours)
	}
	if len(ours) != 1 {
		t.Fatalf("this package's encoding of 25 = %x, want a single inline byte", ours)
	}
	if len(standard) != 2 {
		t.Fatalf("standard CBOR's encoding of 25 = %x, want a 2-byte escaped form", standard)
	}
}

func TestInteropDivergesOnBoolEncoding(t *testing.T) {
	ours, err := Pack(true)
	if err != nil {
		t.Fatalf("Pack(true) failed: %v", err)
	}
	standard, err := cbor.Marshal(true)
	if err != nil {
		t.Fatalf("cbor.Marshal(true) failed: %v", err)
	}

	if bytes.Equal(ours, standard) {
		t.Fatalf("expected divergence from standard CBOR for true, both produced %x", ours)
	}
}

func TestInteropStandardDecoderRejectsOurBytes(t *testing.T) {
	ours, err := Pack(true) // 0xd9: major type 6, ai 25 in RFC terms (a 2-byte tag-number escape)
	if err != nil {
		t.Fatalf("Pack(true) failed: %v", err)
	}

	var out any
	err = cbor.Unmarshal(ours, &out)
	if err == nil {
		t.Fatalf("expected a standards-compliant decoder to reject %x, got %v", ours, out)
	}
}

func TestInteropOurParserRejectsStandardBytes(t *testing.T) {
	standard, err := cbor.Marshal(true) // 0xf5: RFC major type 7, ai 21
	if err != nil {
		t.Fatalf("cbor.Marshal(true) failed: %v", err)
	}

	parser := NewParser()
	var decodeErr error
	if err := parser.Unpack(standard, 0, func(_ Item, _ *uint64, err error) {
		decodeErr = err
	}); err != nil {
		t.Fatalf("Unpack call failed: %v", err)
	}
	if decodeErr == nil {
		t.Fatalf("expected this package's Parser to reject standard CBOR bytes %x as a malformed tag", standard)
	}
}
