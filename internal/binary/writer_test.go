package binary

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	for _, offsetSize := range []int{4, 8} {
		cfg := Config{ByteOrder: binary.BigEndian, OffsetSize: offsetSize}
		buf := &Buffer{}
		w := NewWriter(buf, cfg)

		if err := w.WriteInt32(-1); err != nil {
			t.Fatalf("WriteInt32 failed: %v", err)
		}
		if err := w.WriteOffset(1234); err != nil {
			t.Fatalf("WriteOffset failed: %v", err)
		}
		if err := w.WriteString("epoch", 16); err != nil {
			t.Fatalf("WriteString failed: %v", err)
		}
		if err := w.WriteUint64(0xDEADBEEFCAFEBABE); err != nil {
			t.Fatalf("WriteUint64 failed: %v", err)
		}

		expectedLen := 4 + offsetSize + 16 + 8
		if buf.Len() != expectedLen {
			t.Fatalf("expected %d bytes, got %d", expectedLen, buf.Len())
		}

		r := NewReader(buf, cfg)
		i32, _ := r.ReadInt32()
		off, _ := r.ReadOffset()
		s, _ := r.ReadString(16)
		u64, err := r.ReadUint64()
		if err != nil {
			t.Fatalf("reading back failed: %v", err)
		}
		if i32 != -1 || off != 1234 || s != "epoch" || u64 != 0xDEADBEEFCAFEBABE {
			t.Errorf("offset size %d: round trip mismatch: %d %d %q %x", offsetSize, i32, off, s, u64)
		}
	}
}

func TestWriterAt(t *testing.T) {
	buf := &Buffer{}
	w := NewWriter(buf, DefaultConfig())
	if err := w.At(4).WriteUint32(0x01020304); err != nil {
		t.Fatalf("WriteUint32 failed: %v", err)
	}
	if err := w.WriteUint32(0x0A0B0C0D); err != nil {
		t.Fatalf("WriteUint32 failed: %v", err)
	}
	expected := []byte{0x0A, 0x0B, 0x0C, 0x0D, 0x01, 0x02, 0x03, 0x04}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
}

func TestWriterStringTruncates(t *testing.T) {
	buf := &Buffer{}
	w := NewWriter(buf, DefaultConfig())
	if err := w.WriteString("abcdef", 4); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}
	if string(buf.Bytes()) != "abcd" {
		t.Errorf("expected truncated field, got %q", buf.Bytes())
	}
}

func TestWriterLittleEndianValues(t *testing.T) {
	buf := &Buffer{}
	w := NewWriter(buf, DefaultConfig()).WithOrder(binary.LittleEndian)
	if err := w.WriteUint32(1); err != nil {
		t.Fatalf("WriteUint32 failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{1, 0, 0, 0}) {
		t.Errorf("expected little-endian bytes, got %v", buf.Bytes())
	}
}
