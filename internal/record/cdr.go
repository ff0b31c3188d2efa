package record

import (
	"fmt"

	binpkg "github.com/robert-malhotra/go-cdf/internal/binary"
	"github.com/robert-malhotra/go-cdf/internal/dtype"
)

// CDR flag bits.
const (
	FlagRowMajor   int32 = 1 << 0
	FlagSingleFile int32 = 1 << 1
	FlagChecksum   int32 = 1 << 2
	FlagMD5        int32 = 1 << 3
)

// CopyrightSize is the width of the copyright field in CDF 2.5 and later.
const CopyrightSize = 256

// CDR is the CDF descriptor record, found right after the magic numbers.
type CDR struct {
	Header

	// GDROffset is the file offset of the global descriptor record.
	GDROffset int64

	Version   int32
	Release   int32
	Increment int32

	// Encoding determines the byte order of entry values.
	Encoding dtype.Encoding

	Flags     int32
	Copyright string
}

// HasChecksum reports whether the file carries an MD5 checksum trailer.
func (c *CDR) HasChecksum() bool {
	return c.Flags&FlagChecksum != 0 && c.Flags&FlagMD5 != 0
}

// VersionString returns the library version that wrote the file.
func (c *CDR) VersionString() string {
	return fmt.Sprintf("%d.%d.%d", c.Version, c.Release, c.Increment)
}

// ReadCDR parses the CDR at offset 8.
func ReadCDR(r *binpkg.Reader) (*CDR, error) {
	rr := r.At(MagicSize)
	h, err := readHeader(rr, TypeCDR)
	if err != nil {
		return nil, fmt.Errorf("reading CDR: %w", err)
	}
	c := &CDR{Header: h}

	if c.GDROffset, err = rr.ReadOffset(); err != nil {
		return nil, fmt.Errorf("reading CDR: %w", err)
	}
	fields := make([]int32, 9)
	for i := range fields {
		if fields[i], err = rr.ReadInt32(); err != nil {
			return nil, fmt.Errorf("reading CDR: %w", err)
		}
	}
	c.Version = fields[0]
	c.Release = fields[1]
	c.Encoding = dtype.Encoding(fields[2])
	c.Flags = fields[3]
	// fields[4], fields[5] reserved
	c.Increment = fields[6]
	// fields[7] identifier, fields[8] reserved

	if remaining := h.Offset + h.Size - rr.Pos(); remaining >= CopyrightSize {
		if c.Copyright, err = rr.ReadString(CopyrightSize); err != nil {
			return nil, fmt.Errorf("reading CDR copyright: %w", err)
		}
	}
	return c, nil
}

// GDR is the global descriptor record.
type GDR struct {
	Header

	RVDRHead int64
	ZVDRHead int64
	ADRHead  int64
	EOF      int64

	NrVars   int32
	NumAttr  int32
	RMaxRec  int32
	RNumDims int32
	NzVars   int32
	UIRHead  int64

	LeapSecondLastUpdated int32
	RDimSizes             []int32
}

// ReadGDR parses the GDR at offset.
func ReadGDR(r *binpkg.Reader, offset int64) (*GDR, error) {
	rr := r.At(offset)
	h, err := readHeader(rr, TypeGDR)
	if err != nil {
		return nil, fmt.Errorf("reading GDR: %w", err)
	}
	g := &GDR{Header: h}

	for _, dst := range []*int64{&g.RVDRHead, &g.ZVDRHead, &g.ADRHead, &g.EOF} {
		if *dst, err = rr.ReadOffset(); err != nil {
			return nil, fmt.Errorf("reading GDR: %w", err)
		}
	}
	for _, dst := range []*int32{&g.NrVars, &g.NumAttr, &g.RMaxRec, &g.RNumDims, &g.NzVars} {
		if *dst, err = rr.ReadInt32(); err != nil {
			return nil, fmt.Errorf("reading GDR: %w", err)
		}
	}
	if g.UIRHead, err = rr.ReadOffset(); err != nil {
		return nil, fmt.Errorf("reading GDR: %w", err)
	}
	rr.Skip(4) // rfuC
	if g.LeapSecondLastUpdated, err = rr.ReadInt32(); err != nil {
		return nil, fmt.Errorf("reading GDR: %w", err)
	}
	rr.Skip(4) // rfuE

	if g.RNumDims < 0 {
		return nil, fmt.Errorf("%w: GDR has %d r-dimensions", ErrInvalidRecord, g.RNumDims)
	}
	g.RDimSizes = make([]int32, g.RNumDims)
	for i := range g.RDimSizes {
		if g.RDimSizes[i], err = rr.ReadInt32(); err != nil {
			return nil, fmt.Errorf("reading GDR dimension sizes: %w", err)
		}
	}
	return g, nil
}

// CDRSize returns the encoded size of a CDR.
func CDRSize(offsetSize int) int64 {
	return headerSize(offsetSize) + int64(offsetSize) + 9*4 + CopyrightSize
}

// GDRSize returns the encoded size of a GDR with rNumDims dimensions.
func GDRSize(offsetSize int, rNumDims int) int64 {
	return headerSize(offsetSize) + 5*int64(offsetSize) + 8*4 + 4*int64(rNumDims)
}

// WriteCDR serializes c at the writer position.
func WriteCDR(w *binpkg.Writer, c *CDR) error {
	if err := writeHeader(w, CDRSize(w.OffsetSize()), TypeCDR); err != nil {
		return err
	}
	if err := w.WriteOffset(c.GDROffset); err != nil {
		return err
	}
	for _, v := range []int32{c.Version, c.Release, int32(c.Encoding), c.Flags, 0, 0, c.Increment, -1, -1} {
		if err := w.WriteInt32(v); err != nil {
			return err
		}
	}
	return w.WriteString(c.Copyright, CopyrightSize)
}

// WriteGDR serializes g at the writer position.
func WriteGDR(w *binpkg.Writer, g *GDR) error {
	if err := writeHeader(w, GDRSize(w.OffsetSize(), len(g.RDimSizes)), TypeGDR); err != nil {
		return err
	}
	for _, v := range []int64{g.RVDRHead, g.ZVDRHead, g.ADRHead, g.EOF} {
		if err := w.WriteOffset(v); err != nil {
			return err
		}
	}
	for _, v := range []int32{g.NrVars, g.NumAttr, g.RMaxRec, int32(len(g.RDimSizes)), g.NzVars} {
		if err := w.WriteInt32(v); err != nil {
			return err
		}
	}
	if err := w.WriteOffset(g.UIRHead); err != nil {
		return err
	}
	for _, v := range []int32{0, g.LeapSecondLastUpdated, -1} {
		if err := w.WriteInt32(v); err != nil {
			return err
		}
	}
	for _, v := range g.RDimSizes {
		if err := w.WriteInt32(v); err != nil {
			return err
		}
	}
	return nil
}
