package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	binpkg "github.com/robert-malhotra/go-cdf/internal/binary"
)

// Magic numbers stored in the first eight bytes of a CDF.
const (
	MagicV3           uint32 = 0xCDF30001
	MagicV26          uint32 = 0xCDF26002
	MagicV25          uint32 = 0x0000FFFF
	MagicUncompressed uint32 = 0x0000FFFF
	MagicCompressed   uint32 = 0xCCCC0001
)

// MagicSize is the number of bytes occupied by the magic numbers.
const MagicSize = 8

// Errors
var (
	ErrNotCDF             = errors.New("not a CDF file: magic number not found")
	ErrInvalidRecord      = errors.New("invalid internal record")
	ErrUnsupportedVersion = errors.New("unsupported CDF version")
	ErrCycle              = errors.New("record list revisits an offset")
)

// Magic describes the version and compression of a file.
type Magic struct {
	// Major is the CDF major version: 2 or 3.
	Major int

	// Compressed is true when the file body is stored in a CCR.
	Compressed bool

	// Raw is the first magic number as stored.
	Raw uint32
}

// ReadMagic reads and validates the magic numbers at the start of r.
func ReadMagic(r io.ReaderAt) (Magic, error) {
	buf := make([]byte, MagicSize)
	if n, err := r.ReadAt(buf, 0); n < MagicSize {
		if err == nil || err == io.EOF {
			return Magic{}, ErrNotCDF
		}
		return Magic{}, err
	}

	first := binary.BigEndian.Uint32(buf[0:4])
	second := binary.BigEndian.Uint32(buf[4:8])

	m := Magic{Raw: first}
	switch first {
	case MagicV3:
		m.Major = 3
	case MagicV26, MagicV25:
		m.Major = 2
	default:
		return Magic{}, ErrNotCDF
	}

	switch second {
	case MagicUncompressed:
	case MagicCompressed:
		m.Compressed = true
	default:
		return Magic{}, fmt.Errorf("%w: second magic number 0x%08X", ErrNotCDF, second)
	}
	return m, nil
}

// Config returns the reader configuration for internal records.
func (m Magic) Config() binpkg.Config {
	cfg := binpkg.DefaultConfig()
	if m.Major < 3 {
		cfg.OffsetSize = 4
	}
	return cfg
}

// NameSize returns the width of attribute and variable name fields.
func (m Magic) NameSize() int {
	if m.Major < 3 {
		return 64
	}
	return 256
}

// Bytes returns the encoded magic numbers.
func (m Magic) Bytes() []byte {
	buf := make([]byte, MagicSize)
	first := m.Raw
	if first == 0 {
		first = MagicV3
		if m.Major == 2 {
			first = MagicV26
		}
	}
	binary.BigEndian.PutUint32(buf[0:4], first)
	second := MagicUncompressed
	if m.Compressed {
		second = MagicCompressed
	}
	binary.BigEndian.PutUint32(buf[4:8], second)
	return buf
}
