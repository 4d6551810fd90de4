// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"math"
	"reflect"
	"strings"
)

// Undefined is the sentinel value the Generator encodes as the
// "undefined" primitive (0xdb). The Parser decodes 0xdb as an Item of
// KindUndefined, not as this sentinel. Use [UndefinedValue] rather than
// constructing one directly.
type Undefined struct{}

// UndefinedValue is the canonical Undefined sentinel.
var UndefinedValue = Undefined{}

// Generator walks an in-memory value and emits framed bytes following
// this package's non-canonical CBOR-shaped wire format (spec.md §4.2).
// The zero value is not usable; construct one with [NewGenerator].
type Generator struct {
	types *typeRegistry
}

// NewGenerator returns a Generator with the default type extension
// registrations (Date, BufferStream, RegExp, Simple — see DESIGN.md for
// why Array/Bytes/Map are not registry entries).
func NewGenerator() *Generator {
	return &Generator{types: newDefaultTypeRegistry()}
}

// AddSemanticType registers encoder for the exact runtime type rtype,
// replacing any existing registration. It returns the previous encoder
// and true if one was displaced. Registrations are consulted in
// registration order, after the defaults.
func (g *Generator) AddSemanticType(rtype reflect.Type, encoder Encoder) (Encoder, bool) {
	return g.types.register(rtype, encoder)
}

// Pack is the one-shot convenience entry point: it constructs an
// internal ByteBuffer, walks value, and returns the flattened bytes.
func (g *Generator) Pack(value any) ([]byte, error) {
	buf := NewByteBuffer()
	if err := g.PackInto(value, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PackInto appends value's encoding into buf, a caller-supplied
// ByteBuffer.
func (g *Generator) PackInto(value any, buf *ByteBuffer) error {
	w := &Writer{buf: buf, gen: g}
	return w.Pack(value)
}

// defaultGenerator backs the package-level Pack/PackInto functions.
var defaultGenerator = NewGenerator()

// Pack encodes value as a single top-level item using the default
// Generator.
func Pack(value any) ([]byte, error) {
	return defaultGenerator.Pack(value)
}

// PackInto appends value's encoding into buf using the default Generator.
func PackInto(value any, buf *ByteBuffer) error {
	return defaultGenerator.PackInto(value, buf)
}

// Writer is the per-call context threaded through the dispatch
// algorithm, giving registered encoders (Date, RegExp, ...) a way to
// recursively pack their inner values without importing the Generator
// internals.
type Writer struct {
	buf *ByteBuffer
	gen *Generator
}

// Pack implements the dispatch algorithm of spec.md §4.2
// ("unsafePack"): numbers, text, bool, undefined, and null are handled
// directly; everything else is either a native Go composite (array,
// map, struct — dispatched by reflect.Kind, since Go's static type
// system already gives every value exactly one of these shapes) or
// consulted against the Generator's extension registry, in registration
// order.
func (w *Writer) Pack(value any) error {
	switch v := value.(type) {
	case nil:
		w.buf.WriteByte(0xda) // null
		return nil
	case Undefined:
		w.buf.WriteByte(0xdb) // undefined
		return nil
	case Item:
		return w.packItem(v)
	case bool:
		if v {
			w.buf.WriteByte(0xd9) // true
		} else {
			w.buf.WriteByte(0xd8) // false
		}
		return nil
	case string:
		return encodeTextValue(w, v)
	case []byte:
		return encodeBytesValue(w, v)

	case int:
		return w.packSignedInt(int64(v))
	case int8:
		return w.packSignedInt(int64(v))
	case int16:
		return w.packSignedInt(int64(v))
	case int32:
		return w.packSignedInt(int64(v))
	case int64:
		return w.packSignedInt(v)
	case uint:
		return packInt(w.buf, uint64(v), 0)
	case uint8:
		return packInt(w.buf, uint64(v), 0)
	case uint16:
		return packInt(w.buf, uint64(v), 0)
	case uint32:
		return packInt(w.buf, uint64(v), 0)
	case uint64:
		return packInt(w.buf, v, 0)
	case float32:
		return w.packFloatOrInt(float64(v))
	case float64:
		return w.packFloatOrInt(v)
	}

	// Extension registry: host-domain types with no native composite
	// shape (Date, BufferStream, RegExp, Simple, and anything the
	// caller registered via AddSemanticType).
	if encoder, ok := w.gen.types.lookup(value); ok {
		return encoder(w, value)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return w.packArray(rv)
	case reflect.Map:
		return w.packMap(rv)
	case reflect.Struct:
		return w.packStruct(rv)
	case reflect.Ptr:
		if rv.IsNil() {
			w.buf.WriteByte(0xda) // null
			return nil
		}
		return w.Pack(rv.Elem().Interface())
	}

	return errUnknownType(value)
}

// packItem re-encodes a previously-decoded Item, so that values round
// tripped through Parser.Unpack can be handed straight back to Pack
// (including the Items the default tag decoders in tags.go hand back,
// which carry their own Tag).
func (w *Writer) packItem(item Item) error {
	switch item.Kind {
	case KindUnsigned:
		return packInt(w.buf, item.Uint, 0)
	case KindNegative:
		return w.packSignedInt(item.Int)
	case KindBytes:
		return encodeBytesValue(w, item.Bytes)
	case KindText:
		return encodeTextValue(w, item.Text)
	case KindArray:
		if err := packInt(w.buf, uint64(len(item.Array)), 4); err != nil {
			return err
		}
		for _, elem := range item.Array {
			if err := w.packItem(elem); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		if err := packInt(w.buf, uint64(len(item.Pairs)), 5); err != nil {
			return err
		}
		for _, pair := range item.Pairs {
			if err := w.packItem(pair.Key); err != nil {
				return err
			}
			if err := w.packItem(pair.Value); err != nil {
				return err
			}
		}
		return nil
	case KindSimple:
		return packInt(w.buf, uint64(item.SimpleValue), 6)
	case KindTagged:
		if item.Inner == nil {
			return newError(Type, "tagged item missing inner value")
		}
		if err := packInt(w.buf, item.Tag, 7); err != nil {
			return err
		}
		return w.packItem(*item.Inner)
	case KindBool:
		return w.Pack(item.Bool)
	case KindNull:
		w.buf.WriteByte(0xda)
		return nil
	case KindUndefined:
		w.buf.WriteByte(0xdb)
		return nil
	case KindFloat:
		w.buf.WriteByte(0xdf)
		w.buf.WriteFloat64(item.Float)
		return nil
	default:
		return newError(Type, "invalid item kind %d", item.Kind)
	}
}

// packSignedInt encodes i under major type 0 (non-negative) or major
// type 1 (negative, as the natural number -i-1), per spec.md §4.2.
func (w *Writer) packSignedInt(i int64) error {
	if i >= 0 {
		return packInt(w.buf, uint64(i), 0)
	}
	n := uint64(-(i + 1))
	return packInt(w.buf, n, 1)
}

// packFloatOrInt implements the Generator's number-dispatch rule: a
// value equal to its own truncation and inside the int64 range encodes
// as an integer (and fails with a Range error beyond the 31-bit framing
// limit); everything else encodes as a float64. That covers fractions,
// NaN (which never equals its truncation), and ±Inf and integral values
// outside the int64 range (excluded by the range check).
func (w *Writer) packFloatOrInt(f float64) error {
	const maxExactInt64 = 1 << 63
	if f == math.Trunc(f) && f >= -maxExactInt64 && f < maxExactInt64 {
		return w.packSignedInt(int64(f))
	}
	w.buf.WriteByte(0xdf)
	w.buf.WriteFloat64(f)
	return nil
}

// packArray implements the default Array encoder: length under major
// type 4, then each element recursively.
func (w *Writer) packArray(rv reflect.Value) error {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		// A concrete []byte-shaped type that didn't match the []byte
		// case directly (a named byte-slice type) still means Bytes.
		return encodeBytesValue(w, rv.Bytes())
	}
	n := rv.Len()
	if err := packInt(w.buf, uint64(n), 4); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.Pack(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// packMap implements the generic map fallback of spec.md §4.2: enumerate
// the map's keys, emit the pair count under major type 5, then pack
// each key/value pair. Go's map iteration order is randomized per run,
// which is exactly the "not canonicalized" behavior spec.md §9 requires
// — no extra work is needed to avoid implying a canonical key order.
func (w *Writer) packMap(rv reflect.Value) error {
	keys := rv.MapKeys()
	if err := packInt(w.buf, uint64(len(keys)), 5); err != nil {
		return err
	}
	for _, key := range keys {
		if err := w.Pack(key.Interface()); err != nil {
			return err
		}
		if err := w.Pack(rv.MapIndex(key).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// packStruct implements the generic struct fallback: enumerate exported
// fields in declaration order, naming each with its `cbor:"name"` tag
// when present (mirroring the teacher's lib/codec struct-tag
// convention) and its Go field name otherwise. A field tagged
// `cbor:"-"` is skipped.
func (w *Writer) packStruct(rv reflect.Value) error {
	rt := rv.Type()
	type field struct {
		name  string
		value reflect.Value
	}
	var fields []field
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("cbor"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		fields = append(fields, field{name: name, value: rv.Field(i)})
	}

	if err := packInt(w.buf, uint64(len(fields)), 5); err != nil {
		return err
	}
	for _, f := range fields {
		if err := w.Pack(f.name); err != nil {
			return err
		}
		if err := w.Pack(f.value.Interface()); err != nil {
			return err
		}
	}
	return nil
}

// encodeTextValue implements the default Text encoding: measure the
// UTF-8 byte length, emit the length prefix under major type 3, append
// the raw bytes.
func encodeTextValue(w *Writer, s string) error {
	if err := packInt(w.buf, uint64(len(s)), 3); err != nil {
		return err
	}
	w.buf.Append([]byte(s))
	return nil
}

// encodeBytesValue implements the default Bytes encoder: length under
// major type 2, then raw bytes.
func encodeBytesValue(w *Writer, b []byte) error {
	if err := packInt(w.buf, uint64(len(b)), 2); err != nil {
		return err
	}
	w.buf.Append(b)
	return nil
}

// packInt implements the integer framing table of spec.md §4.2
// ("_packInt"). i is the operand magnitude (never negative — callers
// pre-transform signed values into the natural-number encoding before
// calling this), mt is the major type to frame it under.
func packInt(buf *ByteBuffer, i uint64, mt byte) error {
	switch {
	case i <= 0x1b:
		buf.WriteByte((mt << 5) | byte(i))
	case i <= 0xff:
		buf.WriteByte((mt << 5) | 0x1c)
		buf.WriteByte(byte(i))
	case i <= 0xffff:
		buf.WriteByte((mt << 5) | 0x1d)
		buf.WriteUint16(uint16(i))
	case i <= 0x7fffffff:
		buf.WriteByte((mt << 5) | 0x1e)
		buf.WriteUint32(uint32(i))
	default:
		return errIntegerOutOfRange(i)
	}
	return nil
}
