package record

import (
	"fmt"

	binpkg "github.com/robert-malhotra/go-cdf/internal/binary"
	"github.com/robert-malhotra/go-cdf/internal/dtype"
)

// VDR is a variable descriptor record. Only the fields needed to resolve
// variable names and numbers are parsed.
type VDR struct {
	Header

	Next     int64
	DataType dtype.DataType
	MaxRec   int32
	Flags    int32
	NumElems int32
	Num      int32
	Name     string

	// ZDimSizes holds the dimension sizes of a zVariable.
	ZDimSizes []int32
}

// IsZ reports whether the record describes a zVariable.
func (v *VDR) IsZ() bool {
	return v.Type == TypeZVDR
}

// ReadVDR parses the rVDR or zVDR at the reader position.
func ReadVDR(r *binpkg.Reader, nameSize int) (*VDR, error) {
	h, err := readHeader(r, TypeRVDR, TypeZVDR)
	if err != nil {
		return nil, fmt.Errorf("reading VDR: %w", err)
	}
	v := &VDR{Header: h}

	if v.Next, err = r.ReadOffset(); err != nil {
		return nil, fmt.Errorf("reading VDR: %w", err)
	}
	var dataType int32
	for _, dst := range []*int32{&dataType, &v.MaxRec} {
		if *dst, err = r.ReadInt32(); err != nil {
			return nil, fmt.Errorf("reading VDR: %w", err)
		}
	}
	v.DataType = dtype.DataType(dataType)
	r.Skip(2 * int64(r.OffsetSize())) // VXRhead, VXRtail
	if v.Flags, err = r.ReadInt32(); err != nil {
		return nil, fmt.Errorf("reading VDR: %w", err)
	}
	r.Skip(4 * 4) // SRecords, rfuB, rfuC, rfuF
	for _, dst := range []*int32{&v.NumElems, &v.Num} {
		if *dst, err = r.ReadInt32(); err != nil {
			return nil, fmt.Errorf("reading VDR: %w", err)
		}
	}
	r.Skip(int64(r.OffsetSize()) + 4) // CPRorSPRoffset, BlockingFactor
	if v.Name, err = r.ReadString(nameSize); err != nil {
		return nil, fmt.Errorf("reading VDR name: %w", err)
	}

	if v.IsZ() {
		numDims, err := r.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("reading zVDR dimensions: %w", err)
		}
		if numDims < 0 {
			return nil, fmt.Errorf("%w: zVDR at %d has %d dimensions", ErrInvalidRecord, h.Offset, numDims)
		}
		v.ZDimSizes = make([]int32, numDims)
		for i := range v.ZDimSizes {
			if v.ZDimSizes[i], err = r.ReadInt32(); err != nil {
				return nil, fmt.Errorf("reading zVDR dimensions: %w", err)
			}
		}
	}
	return v, nil
}

// VDRSize returns the encoded size of a VDR. numDims is the number of
// dimensions whose variances are recorded (rNumDims for rVariables).
func VDRSize(offsetSize, nameSize int, z bool, numDims int) int64 {
	size := headerSize(offsetSize) + 4*int64(offsetSize) + 10*4 + int64(nameSize)
	if z {
		size += 4 + 4*int64(numDims)
	}
	return size + 4*int64(numDims)
}

// WriteVDR serializes v at the writer position. v.Type selects rVDR or
// zVDR. Record variances are written as all true; no pad value is stored.
func WriteVDR(w *binpkg.Writer, v *VDR, nameSize int, rNumDims int) error {
	typ := v.Type
	if typ != TypeZVDR {
		typ = TypeRVDR
	}
	z := typ == TypeZVDR
	numDims := rNumDims
	if z {
		numDims = len(v.ZDimSizes)
	}
	if err := writeHeader(w, VDRSize(w.OffsetSize(), nameSize, z, numDims), typ); err != nil {
		return err
	}
	if err := w.WriteOffset(v.Next); err != nil {
		return err
	}
	for _, x := range []int32{int32(v.DataType), v.MaxRec} {
		if err := w.WriteInt32(x); err != nil {
			return err
		}
	}
	for i := 0; i < 2; i++ { // VXRhead, VXRtail
		if err := w.WriteOffset(0); err != nil {
			return err
		}
	}
	for _, x := range []int32{v.Flags, 0, 0, -1, -1, v.NumElems, v.Num} {
		if err := w.WriteInt32(x); err != nil {
			return err
		}
	}
	if err := w.WriteOffset(-1); err != nil { // CPRorSPRoffset
		return err
	}
	if err := w.WriteInt32(0); err != nil { // BlockingFactor
		return err
	}
	if err := w.WriteString(v.Name, nameSize); err != nil {
		return err
	}
	if z {
		if err := w.WriteInt32(int32(len(v.ZDimSizes))); err != nil {
			return err
		}
		for _, d := range v.ZDimSizes {
			if err := w.WriteInt32(d); err != nil {
				return err
			}
		}
	}
	for i := 0; i < numDims; i++ {
		if err := w.WriteInt32(-1); err != nil {
			return err
		}
	}
	return nil
}
