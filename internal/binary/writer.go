package binary

import (
	"encoding/binary"
	"io"
)

// Writer writes CDF internal records. It mirrors [Reader] and is used to
// assemble files in memory.
type Writer struct {
	w          io.WriterAt
	order      binary.ByteOrder
	offsetSize int
	pos        int64
}

// NewWriter creates a binary writer with the given configuration.
func NewWriter(w io.WriterAt, cfg Config) *Writer {
	return &Writer{
		w:          w,
		order:      cfg.ByteOrder,
		offsetSize: cfg.OffsetSize,
	}
}

// At returns a new writer positioned at the given offset.
// The new writer shares the underlying io.WriterAt but has independent position.
func (w *Writer) At(offset int64) *Writer {
	return &Writer{
		w:          w.w,
		order:      w.order,
		offsetSize: w.offsetSize,
		pos:        offset,
	}
}

// WithOrder returns a writer at the same position that encodes with order.
func (w *Writer) WithOrder(order binary.ByteOrder) *Writer {
	return &Writer{
		w:          w.w,
		order:      order,
		offsetSize: w.offsetSize,
		pos:        w.pos,
	}
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return w.pos
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.WriteAt(data, w.pos)
	w.pos += int64(n)
	return err
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) error {
	return w.WriteBytes([]byte{v})
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	buf := make([]byte, 4)
	w.order.PutUint32(buf, v)
	return w.WriteBytes(buf)
}

// WriteInt32 writes a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	buf := make([]byte, 8)
	w.order.PutUint64(buf, v)
	return w.WriteBytes(buf)
}

// WriteInt64 writes a signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) error {
	return w.WriteUint64(uint64(v))
}

// WriteOffset writes a file offset using the configured offset size.
func (w *Writer) WriteOffset(v int64) error {
	if w.offsetSize == 4 {
		return w.WriteInt32(int32(v))
	}
	return w.WriteInt64(v)
}

// WriteString writes s into a fixed-width field of n bytes, NUL padded.
// Longer strings are truncated.
func (w *Writer) WriteString(s string, n int) error {
	buf := make([]byte, n)
	copy(buf, s)
	return w.WriteBytes(buf)
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) error {
	if n <= 0 {
		return nil
	}
	return w.WriteBytes(make([]byte, n))
}

// OffsetSize returns the configured offset size in bytes.
func (w *Writer) OffsetSize() int {
	return w.offsetSize
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}

// Buffer is a growable in-memory io.WriterAt and io.ReaderAt.
type Buffer struct {
	buf []byte
}

// WriteAt implements io.WriterAt, growing the buffer as needed.
func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	end := int(off) + len(p)
	if end > len(b.buf) {
		grown := make([]byte, end)
		copy(grown, b.buf)
		b.buf = grown
	}
	copy(b.buf[off:], p)
	return len(p), nil
}

// ReadAt implements io.ReaderAt.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b.buf)) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Bytes returns the buffer contents.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.buf)
}
