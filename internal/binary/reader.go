// Package binary provides low-level binary I/O operations for CDF internal records.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidSize is returned when an invalid offset size is specified.
var ErrInvalidSize = errors.New("invalid offset size: must be 4 or 8")

// Reader reads CDF internal records. Record fields are always big-endian
// (XDR); the offset width depends on the file version: 4 bytes before
// CDF 3.0, 8 bytes afterwards.
type Reader struct {
	r          io.ReaderAt
	order      binary.ByteOrder
	offsetSize int
	pos        int64
}

// Config holds reader configuration, typically derived from the magic numbers.
type Config struct {
	ByteOrder  binary.ByteOrder
	OffsetSize int // 4 or 8 bytes
}

// DefaultConfig returns the configuration of a CDF 3.x file.
func DefaultConfig() Config {
	return Config{
		ByteOrder:  binary.BigEndian,
		OffsetSize: 8,
	}
}

// Validate reports whether the configuration describes a readable layout.
func (c Config) Validate() error {
	if c.OffsetSize != 4 && c.OffsetSize != 8 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, c.OffsetSize)
	}
	if c.ByteOrder == nil {
		return errors.New("nil byte order")
	}
	return nil
}

// NewReader creates a binary reader with the given configuration.
func NewReader(r io.ReaderAt, cfg Config) *Reader {
	return &Reader{
		r:          r,
		order:      cfg.ByteOrder,
		offsetSize: cfg.OffsetSize,
	}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{
		r:          r.r,
		order:      r.order,
		offsetSize: r.offsetSize,
		pos:        offset,
	}
}

// WithOrder returns a reader at the same position that decodes with order.
// Attribute entry values follow the file's data encoding rather than XDR.
func (r *Reader) WithOrder(order binary.ByteOrder) *Reader {
	return &Reader{
		r:          r.r,
		order:      order,
		offsetSize: r.offsetSize,
		pos:        r.pos,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := r.r.ReadAt(buf, r.pos)
	if read == n {
		err = nil
	}
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadInt32 reads a signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// ReadInt64 reads a signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadOffset reads a file offset using the configured offset size.
// Record sizes share the same width.
func (r *Reader) ReadOffset() (int64, error) {
	if r.offsetSize == 4 {
		v, err := r.ReadInt32()
		return int64(v), err
	}
	return r.ReadInt64()
}

// ReadString reads a fixed-width, NUL-padded character field.
func (r *Reader) ReadString(n int) (string, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return TrimNUL(buf), nil
}

// TrimNUL returns buf as a string, cut at the first NUL byte.
func TrimNUL(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

// Peek reads n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	pos := r.pos
	buf, err := r.ReadBytes(n)
	r.pos = pos
	return buf, err
}

// OffsetSize returns the configured offset size in bytes.
func (r *Reader) OffsetSize() int {
	return r.offsetSize
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// IsNullOffset reports whether offset terminates a linked list of records.
// CDF uses zero for "no next record".
func IsNullOffset(offset int64) bool {
	return offset == 0
}
