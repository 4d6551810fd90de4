// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "io"

// Stream adapts a Parser to a byte-at-a-time transport: feed it
// arbitrarily-sized chunks via Write, and it decodes consecutive
// top-level items off the front of the accumulated bytes as soon as
// each one is complete, handing each to onMessage in arrival order.
// This is the same decode engine Unpack uses over a *ByteBuffer — the
// only difference is Stream keeps re-arming itself for the next item
// instead of stopping after one (spec.md §4.4).
type Stream struct {
	buf    *ByteBuffer
	parser *Parser

	onMessage func(Item)
	onError   func(error)
}

// NewStream constructs a Stream. parser may be nil, in which case a
// fresh [Parser] with the default tag decoders is used. onMessage is
// invoked once per fully-decoded top-level item; onError is invoked at
// most once, on the first decode error, after which the Stream stops
// decoding further items (a framing error partway through a byte stream
// leaves the rest of the stream unparseable, since there is no
// resynchronization point in this format).
func NewStream(parser *Parser, onMessage func(Item), onError func(error)) *Stream {
	if parser == nil {
		parser = NewParser()
	}
	s := &Stream{buf: NewByteBuffer(), parser: parser, onMessage: onMessage, onError: onError}
	s.next()
	return s
}

// next arms the Stream to decode the next top-level item as soon as
// enough bytes are available, re-arming itself after each success.
func (s *Stream) next() {
	s.parser.decodeValue(s.buf, false, func(item Item, err error) {
		if err != nil {
			if s.onError != nil {
				s.onError(err)
			}
			return
		}
		if s.onMessage != nil {
			s.onMessage(item)
		}
		s.next()
	})
}

// Write feeds newly-arrived bytes to the Stream, decoding and dispatching
// as many complete top-level items as the new data completes. It
// satisfies io.Writer, so a Stream can sit directly behind an io.Copy
// from a socket or pipe.
func (s *Stream) Write(p []byte) (int, error) {
	s.buf.Feed(p)
	return len(p), nil
}

// Close signals that no more bytes are coming. If a decode is still
// waiting on more input, that wait can never be satisfied, so Close
// reports it to onError as truncation rather than leaving it silently
// pending forever.
func (s *Stream) Close() error {
	if s.buf.Pending() {
		if s.onError != nil {
			s.onError(errEndOfFile())
		}
		s.buf.waiters = nil
	}
	return nil
}

// DecodeStream is a one-shot convenience wrapper: it reads r to
// completion and decodes exactly one top-level item from the result
// using the package-level default Parser. Use [NewStream] directly for
// a transport that may carry more than one item, or one that should not
// block waiting for r to reach EOF before producing the first item.
func DecodeStream(r io.Reader) (Item, *uint64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Item{}, nil, err
	}

	var (
		result   Item
		consumed *uint64
		decodeErr error
	)
	defaultParser.Unpack(data, 0, func(item Item, n *uint64, err error) {
		result, consumed, decodeErr = item, n, err
	})
	return result, consumed, decodeErr
}
