// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"reflect"
	"regexp"
	"time"
)

// Encoder writes value's CBOR representation into w. It is the
// extension hook for host-domain Go types that have no native
// composite shape — Array, Bytes, Map, and the primitive scalars
// dispatch through the Generator's own type switch and are never
// registry entries (see DESIGN.md's "registry architecture" resolution
// of spec.md §9's dynamic-dispatch note).
type Encoder func(w *Writer, value any) error

// typeEntry is one registration in the Generator's extension registry.
type typeEntry struct {
	rtype   reflect.Type
	encoder Encoder
}

// typeRegistry is an ordered list of (type identity, encoder) pairs,
// consulted in registration order — the literal shape spec.md §3
// describes for the "type-pack registry", narrowed (per design note §9)
// to host-domain extension types rather than every composite shape.
type typeRegistry struct {
	entries []typeEntry
}

// newDefaultTypeRegistry returns a registry pre-populated with the
// default encoders from spec.md §4.2's registration order, minus Array
// and Bytes (which the Generator now dispatches natively — see
// DESIGN.md): Date, BufferStream, RegExp, Simple.
func newDefaultTypeRegistry() *typeRegistry {
	r := &typeRegistry{}
	r.register(reflect.TypeOf(time.Time{}), encodeDate)
	r.register(reflect.TypeOf(&bytes.Buffer{}), encodeBufferStream)
	r.register(reflect.TypeOf(&regexp.Regexp{}), encodeRegexp)
	r.register(reflect.TypeOf(Simple(0)), encodeSimple)
	return r
}

// register appends or replaces the entry for rtype, returning the
// previous encoder and true if one was displaced.
func (r *typeRegistry) register(rtype reflect.Type, encoder Encoder) (Encoder, bool) {
	for i, entry := range r.entries {
		if entry.rtype == rtype {
			prev := entry.encoder
			r.entries[i].encoder = encoder
			return prev, true
		}
	}
	r.entries = append(r.entries, typeEntry{rtype: rtype, encoder: encoder})
	return nil, false
}

// lookup walks the registry in order and returns the first encoder
// whose registered type matches value's runtime type.
func (r *typeRegistry) lookup(value any) (Encoder, bool) {
	rtype := reflect.TypeOf(value)
	for _, entry := range r.entries {
		if entry.rtype == rtype {
			return entry.encoder, true
		}
	}
	return nil, false
}

// encodeDate implements the default Date encoder: prefix byte 0xeb,
// then the UNIX epoch seconds packed as a number (spec.md §4.2).
func encodeDate(w *Writer, value any) error {
	t := value.(time.Time)
	w.buf.WriteByte(0xeb)
	return w.Pack(t.Unix())
}

// encodeBufferStream implements the default BufferStream encoder:
// identical to Bytes after flattening (spec.md §4.2).
func encodeBufferStream(w *Writer, value any) error {
	buf := value.(*bytes.Buffer)
	return encodeBytesValue(w, buf.Bytes())
}

// encodeRegexp implements the default RegExp encoder: prefix byte
// 0xf7, then the pattern source packed as a text string (spec.md
// §4.2).
func encodeRegexp(w *Writer, value any) error {
	re := value.(*regexp.Regexp)
	w.buf.WriteByte(0xf7)
	return w.Pack(re.String())
}

// encodeSimple implements the default Simple encoder: framed under
// major type 6 via the integer framing table (spec.md §4.2).
func encodeSimple(w *Writer, value any) error {
	s := value.(Simple)
	return packInt(w.buf, uint64(s), 6)
}
