// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// Parser reconstructs Items from framed bytes following this package's
// non-canonical wire format (spec.md §4.3), driving the decode loop
// through [ByteBuffer.Wait] continuations so the same code path serves
// a fully-buffered one-shot decode and a byte-at-a-time stream.
//
// The zero value is not usable; construct one with [NewParser].
type Parser struct {
	tags *TagRegistry
}

// NewParser returns a Parser with the default tag decoders registered
// (Date, URI, RegExp — see tags.go).
func NewParser() *Parser {
	return &Parser{tags: newDefaultTagRegistry()}
}

// AddSemanticTag registers decoder for tag on this Parser, replacing any
// existing registration. It returns the previous decoder and true if one
// was displaced.
func (p *Parser) AddSemanticTag(tag uint64, decoder TagDecoder) (TagDecoder, bool) {
	return p.tags.AddSemanticTag(tag, decoder)
}

// defaultParser backs the package-level Unpack function.
var defaultParser = NewParser()

// Unpack decodes a single top-level item from source starting at offset,
// using the default Parser, and invokes cb exactly once with the result.
func Unpack(source any, offset int, cb func(Item, *uint64, error)) error {
	return defaultParser.Unpack(source, offset, cb)
}

// Unpack decodes a single top-level item out of source, starting at
// offset bytes in, and invokes cb exactly once: either with the decoded
// Item and the number of bytes consumed (the offset at which a
// subsequent item, if any, begins), or with a non-nil error.
//
// source must be []byte or *ByteBuffer; anything else is rejected
// synchronously with a Usage error, returned directly rather than passed
// to cb, since it indicates a caller mistake rather than a malformed
// wire value (spec.md §7). A nil cb is likewise rejected synchronously.
//
// When source is []byte, the input is treated as complete: if decoding
// needs more bytes than were supplied, cb receives a Truncation error
// ("End of file") once decoding cannot progress further. When source is
// a *ByteBuffer the caller controls, Unpack assumes more bytes may still
// arrive via [ByteBuffer.Feed] and leaves any pending wait outstanding —
// callers streaming from an io.Reader should consult [ByteBuffer.Pending]
// against their own end-of-input signal (see stream.go).
func (p *Parser) Unpack(source any, offset int, cb func(Item, *uint64, error)) error {
	if cb == nil {
		return errNilCallback()
	}

	var buf *ByteBuffer
	closed := false
	switch v := source.(type) {
	case []byte:
		buf = NewByteBuffer()
		buf.Append(v)
		buf.pos = offset
		closed = true
	case *ByteBuffer:
		buf = v
		buf.pos += offset
	default:
		return errBadSourceShape(source)
	}

	delivered := false
	start := buf.consumed
	p.decodeValue(buf, false, func(item Item, err error) {
		delivered = true
		if err != nil {
			cb(Item{}, nil, err)
			return
		}
		consumed := uint64(offset + buf.consumed - start)
		cb(item, &consumed, nil)
	})

	if closed && !delivered {
		// A []byte source is definitionally complete: nothing more is
		// ever coming, so an outstanding wait is truncation, not a
		// still-filling stream. Clear the waiter so a caller who
		// mistakenly reuses buf afterward does not get a stray delivery.
		buf.waiters = nil
		cb(Item{}, nil, errEndOfFile())
	}
	return nil
}

// decodeValue reads one item's header byte and dispatches on its major
// type. forbidTag rejects a major-type-7 (Tagged) header outright — used
// for the one-level-deep "tag must not follow a tag" check on a tagged
// item's own inner value (spec.md §4.3).
func (p *Parser) decodeValue(buf *ByteBuffer, forbidTag bool, cb func(Item, error)) {
	buf.Wait(1, func(hdr []byte) {
		mt := hdr[0] >> 5
		ai := hdr[0] & 0x1f

		if forbidTag && mt == 7 {
			cb(Item{}, errTagFollowsTag())
			return
		}

		switch mt {
		case 0:
			p.decodeUint(buf, ai, func(v uint64, err error) {
				if err != nil {
					cb(Item{}, err)
					return
				}
				cb(Unsigned(v), nil)
			})
		case 1:
			p.decodeUint(buf, ai, func(v uint64, err error) {
				if err != nil {
					cb(Item{}, err)
					return
				}
				cb(Negative(-(int64(v) + 1)), nil)
			})
		case 2:
			p.decodeUint(buf, ai, func(n uint64, err error) {
				if err != nil {
					cb(Item{}, err)
					return
				}
				buf.Wait(int(n), func(data []byte) {
					out := make([]byte, len(data))
					copy(out, data)
					cb(BytesItem(out), nil)
				})
			})
		case 3:
			p.decodeUint(buf, ai, func(n uint64, err error) {
				if err != nil {
					cb(Item{}, err)
					return
				}
				buf.Wait(int(n), func(data []byte) {
					cb(TextItem(string(data)), nil)
				})
			})
		case 4:
			p.decodeUint(buf, ai, func(n uint64, err error) {
				if err != nil {
					cb(Item{}, err)
					return
				}
				p.decodeArrayElements(buf, int(n), nil, func(items []Item, err error) {
					if err != nil {
						cb(Item{}, err)
						return
					}
					cb(ArrayItem(items), nil)
				})
			})
		case 5:
			p.decodeUint(buf, ai, func(n uint64, err error) {
				if err != nil {
					cb(Item{}, err)
					return
				}
				p.decodeMapPairs(buf, int(n), nil, func(pairs []Pair, err error) {
					if err != nil {
						cb(Item{}, err)
						return
					}
					cb(MapItem(pairs), nil)
				})
			})
		case 6:
			p.decodeSimpleOrFloat(buf, ai, cb)
		case 7:
			p.decodeUint(buf, ai, func(tag uint64, err error) {
				if err != nil {
					cb(Item{}, err)
					return
				}
				p.decodeValue(buf, true, func(inner Item, err error) {
					if err != nil {
						cb(Item{}, err)
						return
					}
					if decoder, ok := p.tags.lookup(tag); ok {
						out, err := decoder(inner)
						if err != nil {
							cb(Item{}, err)
							return
						}
						cb(out, nil)
						return
					}
					cb(TaggedItem(tag, inner), nil)
				})
			})
		default:
			cb(Item{}, errUnknownType(mt))
		}
	})
}

// decodeUint resolves the operand of the integer framing table shared by
// major types 0-5 and 7: ai is the value directly when it is at most
// 0x1b, otherwise ai selects a 1/2/4/8-byte big-endian width escape. ai
// == 0x1f (31) reads an 8-byte operand as two big-endian 32-bit halves,
// combined as high*2^32 + low.
func (p *Parser) decodeUint(buf *ByteBuffer, ai byte, cb func(uint64, error)) {
	switch {
	case ai <= 0x1b:
		cb(uint64(ai), nil)
	case ai == 0x1c:
		buf.Wait(1, func(d []byte) { cb(uint64(d[0]), nil) })
	case ai == 0x1d:
		buf.Wait(2, func(d []byte) { cb(uint64(binary.BigEndian.Uint16(d)), nil) })
	case ai == 0x1e:
		buf.Wait(4, func(d []byte) { cb(uint64(binary.BigEndian.Uint32(d)), nil) })
	case ai == 0x1f:
		buf.Wait(8, func(d []byte) {
			high := binary.BigEndian.Uint32(d[:4])
			low := binary.BigEndian.Uint32(d[4:])
			cb(uint64(high)*0x100000000+uint64(low), nil)
		})
	default:
		cb(0, errInvalidAI(ai))
	}
}

// decodeSimpleOrFloat resolves the major-type-6 operand space, which
// overloads the plain Simple-value encoding with this package's
// distinctive bool/null/undefined bytes and its float widths:
//
//	ai  0-23  Simple(ai)
//	ai  24    false                  (0xd8)
//	ai  25    true                   (0xd9)
//	ai  26    null                   (0xda)
//	ai  27    undefined              (0xdb)
//	ai  28    Simple, value (0-255) in 1 following byte       (0xdc)
//	ai  29    half-precision float   (0xdd)
//	ai  30    single-precision float (0xde)
//	ai  31    double-precision float (0xdf)
//
// The Generator emits ai 24-27 for bool/null/undefined, ai 31 for floats
// (spec.md §4.2: "floats always encode as float64"), and ai 28 for Simple
// values 28-255 (Simple values 24-27 come out as ai 24-27 and so decode
// as bool/null/undefined). It never emits ai 29-30; those exist so this
// Parser can read floats produced by a more general writer without
// losing precision.
func (p *Parser) decodeSimpleOrFloat(buf *ByteBuffer, ai byte, cb func(Item, error)) {
	switch ai {
	case 24:
		cb(BoolItem(false), nil)
	case 25:
		cb(BoolItem(true), nil)
	case 26:
		cb(NullItem(), nil)
	case 27:
		cb(UndefinedItem(), nil)
	case 28:
		buf.Wait(1, func(d []byte) {
			s, err := NewSimple(int(d[0]))
			if err != nil {
				cb(Item{}, err)
				return
			}
			cb(SimpleItem(s), nil)
		})
	case 29:
		buf.Wait(2, func(d []byte) {
			f := float16.Frombits(binary.BigEndian.Uint16(d))
			cb(FloatItem(float64(f.Float32()), 16), nil)
		})
	case 30:
		buf.Wait(4, func(d []byte) {
			f := math.Float32frombits(binary.BigEndian.Uint32(d))
			cb(FloatItem(float64(f), 32), nil)
		})
	case 31:
		buf.Wait(8, func(d []byte) {
			f := math.Float64frombits(binary.BigEndian.Uint64(d))
			cb(FloatItem(f, 64), nil)
		})
	default: // ai 0-23
		s, err := NewSimple(int(ai))
		if err != nil {
			cb(Item{}, err)
			return
		}
		cb(SimpleItem(s), nil)
	}
}

// decodeArrayElements accumulates an Array's elements one at a time,
// chaining each element's decode continuation into the next rather than
// looping, so the same code serves a buffer that fills in over time.
func (p *Parser) decodeArrayElements(buf *ByteBuffer, total int, acc []Item, cb func([]Item, error)) {
	if len(acc) == total {
		cb(acc, nil)
		return
	}
	p.decodeValue(buf, false, func(item Item, err error) {
		if err != nil {
			cb(nil, err)
			return
		}
		p.decodeArrayElements(buf, total, append(acc, item), cb)
	})
}

// decodeMapPairs accumulates a Map's key/value pairs one at a time, in
// the same chained-continuation style as decodeArrayElements.
func (p *Parser) decodeMapPairs(buf *ByteBuffer, total int, acc []Pair, cb func([]Pair, error)) {
	if len(acc) == total {
		cb(acc, nil)
		return
	}
	p.decodeValue(buf, false, func(key Item, err error) {
		if err != nil {
			cb(nil, err)
			return
		}
		p.decodeValue(buf, false, func(value Item, err error) {
			if err != nil {
				cb(nil, err)
				return
			}
			p.decodeMapPairs(buf, total, append(acc, Pair{Key: key, Value: value}), cb)
		})
	})
}
