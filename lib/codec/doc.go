// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec implements a CBOR-shaped binary codec with a
// non-canonical framing scheme.
//
// This is not RFC 7049 / RFC 8949 CBOR. The major-type layout (integers,
// byte strings, text strings, arrays, maps, tags) is the same, but the
// additional-information thresholds and the primitive encodings for
// bool/null/undefined/float diverge on purpose:
//
//   - Width-escape thresholds are ai 28/29/30/31 (1/2/4/8 bytes), not
//     RFC 7049's 24/25/26/27.
//   - true/false/null/undefined are distinctive single bytes under
//     major type 6 (0xd9/0xd8/0xda/0xdb), not the RFC's simple-value
//     encoding.
//   - Floats are always written as a big-endian float64 behind the
//     single-byte prefix 0xdf; this package never emits float16/float32
//     on encode (though it reads them on decode for interop with peers
//     that do).
//
// Bytes produced by [Pack] are not valid input to a standards-compliant
// CBOR decoder, and bytes produced by a standards-compliant CBOR encoder
// are not reliably decodable by [Parser.Unpack] — see interop_test.go,
// which demonstrates the divergence against github.com/fxamacker/cbor/v2
// directly rather than just asserting it in prose.
//
// # Data model
//
// [Item] is the in-memory representation of one decoded value: a tagged
// sum over Unsigned, Negative, Bytes, Text, Array, Map, Simple, Tagged,
// Bool, Null, Undefined, and Float. Construct Items directly for
// decoding results; for encoding, pass ordinary Go values to [Pack] —
// numbers, strings, bools, nil, []byte, slices, maps, structs, and the
// registered host types (time.Time, *regexp.Regexp, *bytes.Buffer,
// [Simple]) are all accepted.
//
// # Encoding
//
//	data, err := codec.Pack(value)
//	err = codec.PackInto(value, buf) // append into a caller-owned ByteBuffer
//
// # Decoding
//
//	parser := codec.NewParser()
//	err := parser.Unpack(data, 0, func(item codec.Item, consumed *uint64, err error) {
//	    // consumed is non-nil on success: the byte offset just past the item
//	})
//
// # Streaming
//
// [Stream] adapts an asynchronous byte source (anything that can Write
// into it) into a sequence of decoded-item callbacks, suspending
// internally whenever the next item needs bytes that have not arrived
// yet. See [NewStream] and [DecodeStream].
//
// # Extending
//
// [Generator.AddSemanticType] registers an encoder for a host-domain Go
// type that has no native composite shape (Array/Bytes/Map/scalars
// dispatch natively and are not registry entries — see DESIGN.md).
// [Parser.AddSemanticTag] registers a decoder that transforms a tagged
// item's inner value into a richer host type. Both return the displaced
// previous registration, if any.
package codec
