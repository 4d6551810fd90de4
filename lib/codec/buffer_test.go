// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

func TestByteBufferAppendAndBytes(t *testing.T) {
	buf := NewByteBuffer()
	buf.WriteByte(0x01)
	buf.Append([]byte{0x02, 0x03})

	got := buf.Bytes()
	want := []byte{0x01, 0x02, 0x03}
	if !bytes.Equal(got, want) {
		t.Fatalf("Bytes() = %x, want %x", got, want)
	}
}

func TestByteBufferWaitImmediate(t *testing.T) {
	buf := NewByteBuffer()
	buf.Append([]byte{0xaa, 0xbb, 0xcc})

	var got []byte
	buf.Wait(2, func(d []byte) { got = append([]byte{}, d...) })

	if !bytes.Equal(got, []byte{0xaa, 0xbb}) {
		t.Fatalf("Wait delivered %x, want aabb", got)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xcc}) {
		t.Fatalf("remaining bytes = %x, want cc", buf.Bytes())
	}
}

func TestByteBufferWaitDeferred(t *testing.T) {
	buf := NewByteBuffer()

	var got []byte
	fired := false
	buf.Wait(3, func(d []byte) {
		fired = true
		got = append([]byte{}, d...)
	})

	if fired {
		t.Fatal("callback fired before enough bytes arrived")
	}
	if !buf.Pending() {
		t.Fatal("expected Pending() to report an outstanding wait")
	}

	buf.Append([]byte{0x01, 0x02})
	if fired {
		t.Fatal("callback fired with insufficient bytes")
	}

	buf.Append([]byte{0x03})
	if !fired {
		t.Fatal("callback did not fire once enough bytes arrived")
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("delivered %x, want 010203", got)
	}
	if buf.Pending() {
		t.Fatal("expected Pending() to clear once the wait is satisfied")
	}
}

func TestByteBufferWaitFIFO(t *testing.T) {
	buf := NewByteBuffer()

	var order []int
	buf.Wait(1, func(d []byte) { order = append(order, 1) })
	buf.Wait(1, func(d []byte) { order = append(order, 2) })

	buf.Append([]byte{0x00, 0x00})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("waiters delivered out of order: %v", order)
	}
}

func TestByteBufferFeedIsAppend(t *testing.T) {
	buf := NewByteBuffer()
	buf.Feed([]byte{0x10})
	buf.Feed([]byte{0x20})

	if !bytes.Equal(buf.Bytes(), []byte{0x10, 0x20}) {
		t.Fatalf("Bytes() = %x, want 1020", buf.Bytes())
	}
}

func TestByteBufferWriteWidths(t *testing.T) {
	buf := NewByteBuffer()
	buf.WriteUint16(0x0102)
	buf.WriteUint32(0x03040506)
	buf.WriteFloat64(1.0)

	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x3f, 0xf0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("Bytes() = %x, want %x", buf.Bytes(), want)
	}
}

func TestByteBufferCompactReclaimsConsumed(t *testing.T) {
	buf := NewByteBuffer()
	large := bytes.Repeat([]byte{0x7f}, 9000)
	buf.Append(large)

	buf.Wait(8000, func(d []byte) {})

	if cap(buf.data) == 0 {
		t.Fatal("expected buffer to retain a backing array")
	}
	if buf.pos != 0 {
		t.Fatalf("expected compact() to reset pos to 0, got %d", buf.pos)
	}
	if len(buf.data) != 1000 {
		t.Fatalf("expected 1000 bytes remaining after compaction, got %d", len(buf.data))
	}
}
