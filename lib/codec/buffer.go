// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/binary"
	"math"
)

// ByteBuffer is an append-oriented byte accumulator on the write side,
// and an asynchronous "wait for N bytes" byte source on the read side.
// It abstracts whether bytes arrive all at once (one-shot decode of a
// complete buffer) or piecewise (the Stream Adapter feeding chunks off
// a socket).
//
// ByteBuffer is not safe for concurrent use — like the rest of this
// package, it assumes the single-threaded cooperative model described
// in spec.md §5.
type ByteBuffer struct {
	data    []byte
	pos     int // read cursor into data; bytes before pos have been consumed
	waiters []waiter
	// consumed counts every byte delivered to a waiter so far; unlike pos
	// it is not reset by compact.
	consumed int
}

type waiter struct {
	n  int
	cb func([]byte)
}

// NewByteBuffer returns an empty ByteBuffer.
func NewByteBuffer() *ByteBuffer {
	return &ByteBuffer{}
}

// WriteByte appends a single unsigned byte.
func (b *ByteBuffer) WriteByte(v byte) {
	b.data = append(b.data, v)
	b.serviceWaiters()
}

// WriteUint16 appends v as big-endian.
func (b *ByteBuffer) WriteUint16(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	b.Append(buf[:])
}

// WriteUint32 appends v as big-endian.
func (b *ByteBuffer) WriteUint32(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.Append(buf[:])
}

// WriteFloat64 appends v as an 8-byte big-endian IEEE-754 double.
func (b *ByteBuffer) WriteFloat64(v float64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	b.Append(buf[:])
}

// WriteText appends a 4-byte big-endian length prefix followed by the
// UTF-8 bytes of s. This is a generic convenience op on ByteBuffer
// itself — the Generator's own text framing (major type 3) computes its
// length prefix through the CBOR integer framing table instead and
// calls Append directly, so this method is not on the Generator's hot
// path, only available to callers that want a self-delimited string
// without going through CBOR framing at all.
func (b *ByteBuffer) WriteText(s string) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(len(s)))
	b.Append(buf[:])
	b.Append([]byte(s))
}

// Append appends a raw byte sequence.
func (b *ByteBuffer) Append(v []byte) {
	b.data = append(b.data, v...)
	b.serviceWaiters()
}

// Bytes returns the accumulated bytes not yet consumed by Wait, as a
// single contiguous sequence. Callers that mix Bytes with further Wait
// calls should not retain the returned slice across a later Wait, since
// ByteBuffer reuses its backing array.
func (b *ByteBuffer) Bytes() []byte {
	return b.data[b.pos:]
}

// Feed appends incoming bytes, exactly like Append. It exists as a
// distinct name for the read-side use case (the Stream Adapter pushing
// newly-arrived chunks), where "appending" reads oddly next to "Wait".
func (b *ByteBuffer) Feed(data []byte) {
	b.Append(data)
}

// Wait delivers the next n bytes to cb once at least n bytes are
// buffered and unconsumed — synchronously, if they are already
// available, otherwise as soon as enough bytes arrive via Append/Feed.
// Waits are served in FIFO order; a wait for n bytes consumes exactly n
// bytes from the front of the buffer. The continuation is invoked at
// most once.
func (b *ByteBuffer) Wait(n int, cb func([]byte)) {
	b.waiters = append(b.waiters, waiter{n: n, cb: cb})
	b.serviceWaiters()
}

// Pending reports whether a Wait is outstanding that cannot yet be
// satisfied — used by the Stream Adapter to detect truncation when the
// underlying source signals end-of-input.
func (b *ByteBuffer) Pending() bool {
	return len(b.waiters) > 0
}

// serviceWaiters delivers bytes to as many front-of-queue waiters as
// currently-buffered data allows, in FIFO order, stopping at the first
// waiter that cannot yet be satisfied.
func (b *ByteBuffer) serviceWaiters() {
	for len(b.waiters) > 0 {
		w := b.waiters[0]
		if b.len() < w.n {
			return
		}
		b.waiters = b.waiters[1:]
		// Copy before compact, which moves the remaining bytes down over
		// the front of the backing array.
		chunk := make([]byte, w.n)
		copy(chunk, b.data[b.pos:b.pos+w.n])
		b.pos += w.n
		b.consumed += w.n
		b.compact()
		w.cb(chunk)
	}
}

func (b *ByteBuffer) len() int {
	return len(b.data) - b.pos
}

// compact reclaims consumed prefix space once it grows large relative
// to the remaining data, so a long-lived streaming buffer does not grow
// without bound.
func (b *ByteBuffer) compact() {
	if b.pos == 0 {
		return
	}
	if b.pos < 4096 && b.pos < len(b.data)/2 {
		return
	}
	remaining := len(b.data) - b.pos
	copy(b.data[:remaining], b.data[b.pos:])
	b.data = b.data[:remaining]
	b.pos = 0
}
