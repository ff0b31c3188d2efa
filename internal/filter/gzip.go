package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip implements the GZIP compression type.
type Gzip struct {
	level int
}

// NewGzip creates a GZIP codec.
// Params: [0] = compression level (1-9, or default if empty)
func NewGzip(params []int32) *Gzip {
	level := gzip.DefaultCompression
	if len(params) > 0 && params[0] >= gzip.BestSpeed && params[0] <= gzip.BestCompression {
		level = int(params[0])
	}
	return &Gzip{level: level}
}

func (f *Gzip) ID() Compression {
	return GZIP
}

func (f *Gzip) Decode(input []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer r.Close()

	output, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}

	return output, nil
}

func (f *Gzip) Encode(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, f.level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}
	if _, err := w.Write(input); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	return buf.Bytes(), nil
}
