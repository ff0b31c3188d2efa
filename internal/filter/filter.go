package filter

import (
	"errors"
	"fmt"
)

// Compression identifies a CDF compression algorithm.
type Compression int32

// CDF compression types.
const (
	None  Compression = 0
	RLE0  Compression = 1
	Huff  Compression = 2
	AHuff Compression = 3
	GZIP  Compression = 5
)

// ErrUnsupported is returned for compression algorithms without a codec.
var ErrUnsupported = errors.New("unsupported compression")

// Filter is the interface implemented by all CDF compression codecs.
type Filter interface {
	// ID returns the compression type.
	ID() Compression

	// Decode transforms compressed data to its original form.
	Decode(input []byte) ([]byte, error)

	// Encode compresses data.
	Encode(input []byte) ([]byte, error)
}

// Registry maps compression types to codec constructors.
// params are the CPR compression parameters.
var Registry = map[Compression]func(params []int32) Filter{
	GZIP: func(p []int32) Filter { return NewGzip(p) },
	RLE0: func(p []int32) Filter { return NewRLE(p) },
}

// compressionNames maps known compression types to their names for better error messages.
var compressionNames = map[Compression]string{
	None:  "none",
	RLE0:  "RLE",
	Huff:  "Huffman",
	AHuff: "adaptive Huffman",
	GZIP:  "GZIP",
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("compression(%d)", int32(c))
}

// New creates the codec for a compression type.
func New(c Compression, params []int32) (Filter, error) {
	constructor, ok := Registry[c]
	if !ok {
		if _, known := compressionNames[c]; known {
			return nil, fmt.Errorf("%w: %s compression (type %d); this file cannot be read", ErrUnsupported, c, int32(c))
		}
		return nil, fmt.Errorf("%w: type %d", ErrUnsupported, int32(c))
	}
	return constructor(params), nil
}
