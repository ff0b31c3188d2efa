package record

import (
	"bytes"
	"fmt"
	"io"

	binpkg "github.com/robert-malhotra/go-cdf/internal/binary"
	"github.com/robert-malhotra/go-cdf/internal/filter"
)

// CCR is a compressed CDF record holding the whole file body.
type CCR struct {
	Header

	CPROffset int64

	// USize is the size of the uncompressed body, excluding the magic numbers.
	USize int64

	Data []byte
}

// ReadCCR parses the CCR at offset.
func ReadCCR(r *binpkg.Reader, offset int64) (*CCR, error) {
	rr := r.At(offset)
	h, err := readHeader(rr, TypeCCR)
	if err != nil {
		return nil, fmt.Errorf("reading CCR: %w", err)
	}
	c := &CCR{Header: h}
	if c.CPROffset, err = rr.ReadOffset(); err != nil {
		return nil, fmt.Errorf("reading CCR: %w", err)
	}
	if c.USize, err = rr.ReadOffset(); err != nil {
		return nil, fmt.Errorf("reading CCR: %w", err)
	}
	rr.Skip(4) // rfuA

	dataLen := h.Offset + h.Size - rr.Pos()
	if dataLen < 0 {
		return nil, fmt.Errorf("%w: CCR at %d too small", ErrInvalidRecord, h.Offset)
	}
	if c.Data, err = rr.ReadBytes(int(dataLen)); err != nil {
		return nil, fmt.Errorf("reading CCR data: %w", err)
	}
	return c, nil
}

// CPR is a compression parameters record.
type CPR struct {
	Header

	Compression filter.Compression
	Params      []int32
}

// ReadCPR parses the CPR at offset.
func ReadCPR(r *binpkg.Reader, offset int64) (*CPR, error) {
	rr := r.At(offset)
	h, err := readHeader(rr, TypeCPR)
	if err != nil {
		return nil, fmt.Errorf("reading CPR: %w", err)
	}
	c := &CPR{Header: h}
	ctype, err := rr.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("reading CPR: %w", err)
	}
	c.Compression = filter.Compression(ctype)
	rr.Skip(4) // rfuA
	count, err := rr.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("reading CPR: %w", err)
	}
	if count < 0 || count > 16 {
		return nil, fmt.Errorf("%w: CPR at %d has %d parameters", ErrInvalidRecord, h.Offset, count)
	}
	c.Params = make([]int32, count)
	for i := range c.Params {
		if c.Params[i], err = rr.ReadInt32(); err != nil {
			return nil, fmt.Errorf("reading CPR parameters: %w", err)
		}
	}
	return c, nil
}

// CCRSize returns the encoded size of a CCR carrying dataLen bytes.
func CCRSize(offsetSize, dataLen int) int64 {
	return headerSize(offsetSize) + 2*int64(offsetSize) + 4 + int64(dataLen)
}

// CPRSize returns the encoded size of a CPR with n parameters.
func CPRSize(offsetSize, n int) int64 {
	return headerSize(offsetSize) + 3*4 + 4*int64(n)
}

// WriteCCR serializes c at the writer position.
func WriteCCR(w *binpkg.Writer, c *CCR) error {
	if err := writeHeader(w, CCRSize(w.OffsetSize(), len(c.Data)), TypeCCR); err != nil {
		return err
	}
	if err := w.WriteOffset(c.CPROffset); err != nil {
		return err
	}
	if err := w.WriteOffset(c.USize); err != nil {
		return err
	}
	if err := w.WriteInt32(0); err != nil {
		return err
	}
	return w.WriteBytes(c.Data)
}

// WriteCPR serializes c at the writer position.
func WriteCPR(w *binpkg.Writer, c *CPR) error {
	if err := writeHeader(w, CPRSize(w.OffsetSize(), len(c.Params)), TypeCPR); err != nil {
		return err
	}
	for _, v := range []int32{int32(c.Compression), 0, int32(len(c.Params))} {
		if err := w.WriteInt32(v); err != nil {
			return err
		}
	}
	for _, v := range c.Params {
		if err := w.WriteInt32(v); err != nil {
			return err
		}
	}
	return nil
}

// Decompress expands a compressed file into the equivalent uncompressed
// file: the magic numbers (marked uncompressed) followed by the decoded body.
func Decompress(r io.ReaderAt, m Magic) (*bytes.Reader, error) {
	br := binpkg.NewReader(r, m.Config())
	ccr, err := ReadCCR(br, MagicSize)
	if err != nil {
		return nil, err
	}
	cpr, err := ReadCPR(br, ccr.CPROffset)
	if err != nil {
		return nil, err
	}
	codec, err := filter.New(cpr.Compression, cpr.Params)
	if err != nil {
		return nil, err
	}
	body, err := codec.Decode(ccr.Data)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s body: %w", cpr.Compression, err)
	}
	if int64(len(body)) != ccr.USize {
		return nil, fmt.Errorf("%w: decompressed %d bytes, CCR declares %d", ErrInvalidRecord, len(body), ccr.USize)
	}

	plain := m
	plain.Compressed = false
	out := make([]byte, 0, MagicSize+len(body))
	out = append(out, plain.Bytes()...)
	out = append(out, body...)
	return bytes.NewReader(out), nil
}
