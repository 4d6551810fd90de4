// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "fmt"

// Kind identifies which variant of [Item] is populated.
type Kind uint8

const (
	KindUnsigned Kind = iota
	KindNegative
	KindBytes
	KindText
	KindArray
	KindMap
	KindSimple
	KindTagged
	KindBool
	KindNull
	KindUndefined
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindUnsigned:
		return "unsigned"
	case KindNegative:
		return "negative"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindSimple:
		return "simple"
	case KindTagged:
		return "tagged"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Pair is one key/value entry of a Map item, in the order it was
// decoded.
type Pair struct {
	Key   Item
	Value Item
}

// Simple wraps a CBOR "unallocated"/simple-value payload: an integer in
// [0,255] with no further host interpretation. Constructing one outside
// that range fails — see [NewSimple].
type Simple uint16

// NewSimple validates v and returns a Simple, or an error if v is
// outside [0,255] (spec.md §3, Simple values carry an integer in
// [0,255]).
func NewSimple(v int) (Simple, error) {
	if v < 0 || v > 255 {
		return 0, errSimpleOutOfRange(v)
	}
	return Simple(v), nil
}

// Item is the in-memory representation of a single CBOR value, as
// reconstructed by [Parser.Unpack] or constructed by the caller for
// [Pack]. Exactly one group of fields is meaningful, selected by Kind.
type Item struct {
	Kind Kind

	Uint uint64 // KindUnsigned
	Int  int64  // KindNegative — already the negative value

	Bytes []byte // KindBytes
	Text  string // KindText

	Array []Item // KindArray
	Pairs []Pair // KindMap

	SimpleValue Simple // KindSimple

	Tag   uint64 // KindTagged
	Inner *Item  // KindTagged

	Bool bool // KindBool

	Float     float64 // KindFloat
	FloatBits int     // 16, 32, or 64 — the wire width this value was decoded from; 0 if constructed directly
}

// Unsigned constructs a KindUnsigned item.
func Unsigned(v uint64) Item { return Item{Kind: KindUnsigned, Uint: v} }

// Negative constructs a KindNegative item. v must be < 0.
func Negative(v int64) Item { return Item{Kind: KindNegative, Int: v} }

// BytesItem constructs a KindBytes item.
func BytesItem(v []byte) Item { return Item{Kind: KindBytes, Bytes: v} }

// TextItem constructs a KindText item.
func TextItem(v string) Item { return Item{Kind: KindText, Text: v} }

// ArrayItem constructs a KindArray item.
func ArrayItem(v []Item) Item { return Item{Kind: KindArray, Array: v} }

// MapItem constructs a KindMap item.
func MapItem(v []Pair) Item { return Item{Kind: KindMap, Pairs: v} }

// SimpleItem constructs a KindSimple item.
func SimpleItem(v Simple) Item { return Item{Kind: KindSimple, SimpleValue: v} }

// TaggedItem constructs a KindTagged item.
func TaggedItem(tag uint64, inner Item) Item {
	return Item{Kind: KindTagged, Tag: tag, Inner: &inner}
}

// BoolItem constructs a KindBool item.
func BoolItem(v bool) Item { return Item{Kind: KindBool, Bool: v} }

// NullItem constructs a KindNull item.
func NullItem() Item { return Item{Kind: KindNull} }

// UndefinedItem constructs a KindUndefined item.
func UndefinedItem() Item { return Item{Kind: KindUndefined} }

// FloatItem constructs a KindFloat item. bits records the wire width
// that produced it (16, 32, or 64); pass 0 when constructing directly.
func FloatItem(v float64, bits int) Item { return Item{Kind: KindFloat, Float: v, FloatBits: bits} }

// String renders a compact, type-preserving notation for item, useful
// for debugging and for the cborctl "diag" subcommand. It is not a
// standard format (neither JSON nor RFC 8949 EDN) — it exists so that
// Bytes vs Text and Simple vs Bool remain distinguishable in output,
// something JSON cannot express.
func (item Item) String() string {
	switch item.Kind {
	case KindUnsigned:
		return fmt.Sprintf("%d", item.Uint)
	case KindNegative:
		return fmt.Sprintf("%d", item.Int)
	case KindBytes:
		return fmt.Sprintf("h'%x'", item.Bytes)
	case KindText:
		return fmt.Sprintf("%q", item.Text)
	case KindArray:
		s := "["
		for i, elem := range item.Array {
			if i > 0 {
				s += ", "
			}
			s += elem.String()
		}
		return s + "]"
	case KindMap:
		s := "{"
		for i, pair := range item.Pairs {
			if i > 0 {
				s += ", "
			}
			s += pair.Key.String() + ": " + pair.Value.String()
		}
		return s + "}"
	case KindSimple:
		return fmt.Sprintf("simple(%d)", item.SimpleValue)
	case KindTagged:
		inner := ""
		if item.Inner != nil {
			inner = item.Inner.String()
		}
		return fmt.Sprintf("%d(%s)", item.Tag, inner)
	case KindBool:
		if item.Bool {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindFloat:
		return fmt.Sprintf("%g", item.Float)
	default:
		return "<invalid item>"
	}
}
