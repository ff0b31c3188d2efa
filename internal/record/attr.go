package record

import (
	"fmt"

	binpkg "github.com/robert-malhotra/go-cdf/internal/binary"
	"github.com/robert-malhotra/go-cdf/internal/dtype"
)

// Scope is the declared scope of an attribute.
type Scope int32

// Attribute scopes as stored in ADRs.
const (
	ScopeGlobal          Scope = 1
	ScopeVariable        Scope = 2
	ScopeGlobalAssumed   Scope = 3
	ScopeVariableAssumed Scope = 4
)

// IsGlobal reports whether the scope carries the global marker.
func (s Scope) IsGlobal() bool {
	return s == ScopeGlobal || s == ScopeGlobalAssumed
}

// Valid reports whether s is one of the defined scopes.
func (s Scope) Valid() bool {
	return s >= ScopeGlobal && s <= ScopeVariableAssumed
}

// ADR is an attribute descriptor record.
type ADR struct {
	Header

	Next       int64
	AgrEDRHead int64
	Scope      Scope
	Num        int32

	// NgrEntries and MaxGrEntry describe the AgrEDR list: gEntries for
	// global attributes, rEntries for variable attributes.
	NgrEntries int32
	MaxGrEntry int32

	AzEDRHead int64
	NzEntries int32
	MaxZEntry int32

	Name string
}

// ReadADR parses the ADR at the reader position.
func ReadADR(r *binpkg.Reader, nameSize int) (*ADR, error) {
	h, err := readHeader(r, TypeADR)
	if err != nil {
		return nil, fmt.Errorf("reading ADR: %w", err)
	}
	a := &ADR{Header: h}

	if a.Next, err = r.ReadOffset(); err != nil {
		return nil, fmt.Errorf("reading ADR: %w", err)
	}
	if a.AgrEDRHead, err = r.ReadOffset(); err != nil {
		return nil, fmt.Errorf("reading ADR: %w", err)
	}
	var scope int32
	for _, dst := range []*int32{&scope, &a.Num, &a.NgrEntries, &a.MaxGrEntry} {
		if *dst, err = r.ReadInt32(); err != nil {
			return nil, fmt.Errorf("reading ADR: %w", err)
		}
	}
	a.Scope = Scope(scope)
	r.Skip(4) // rfuA
	if a.AzEDRHead, err = r.ReadOffset(); err != nil {
		return nil, fmt.Errorf("reading ADR: %w", err)
	}
	for _, dst := range []*int32{&a.NzEntries, &a.MaxZEntry} {
		if *dst, err = r.ReadInt32(); err != nil {
			return nil, fmt.Errorf("reading ADR: %w", err)
		}
	}
	r.Skip(4) // rfuE
	if a.Name, err = r.ReadString(nameSize); err != nil {
		return nil, fmt.Errorf("reading ADR name: %w", err)
	}
	return a, nil
}

// AEDR is an attribute entry descriptor record. It holds one entry.
type AEDR struct {
	Header

	Next     int64
	AttrNum  int32
	DataType dtype.DataType

	// Num is the entry number: an index for gEntries, a variable number
	// for rEntries and zEntries.
	Num      int32
	NumElems int32

	// NumStrings is the number of strings packed in a character entry
	// (CDF 3.7 and later); zero in older files.
	NumStrings int32

	// Value is the raw entry value in the file's data encoding.
	Value []byte
}

// IsZ reports whether the entry belongs to the zEntry list.
func (e *AEDR) IsZ() bool {
	return e.Type == TypeAzEDR
}

// ReadAEDR parses the AEDR at the reader position, including its value.
func ReadAEDR(r *binpkg.Reader) (*AEDR, error) {
	h, err := readHeader(r, TypeAgrEDR, TypeAzEDR)
	if err != nil {
		return nil, fmt.Errorf("reading AEDR: %w", err)
	}
	e := &AEDR{Header: h}

	if e.Next, err = r.ReadOffset(); err != nil {
		return nil, fmt.Errorf("reading AEDR: %w", err)
	}
	var dataType int32
	for _, dst := range []*int32{&e.AttrNum, &dataType, &e.Num, &e.NumElems, &e.NumStrings} {
		if *dst, err = r.ReadInt32(); err != nil {
			return nil, fmt.Errorf("reading AEDR: %w", err)
		}
	}
	e.DataType = dtype.DataType(dataType)
	r.Skip(4 * 4) // rfB, rfC, rfD, rfE

	size, err := e.DataType.Size()
	if err != nil {
		return nil, fmt.Errorf("AEDR at %d: %w", h.Offset, err)
	}
	if e.NumElems < 0 {
		return nil, fmt.Errorf("%w: AEDR at %d has %d elements", ErrInvalidRecord, h.Offset, e.NumElems)
	}
	valueLen := size * int(e.NumElems)
	if end := r.Pos() + int64(valueLen); end > h.Offset+h.Size {
		return nil, fmt.Errorf("%w: AEDR at %d value overruns record", ErrInvalidRecord, h.Offset)
	}
	if e.Value, err = r.ReadBytes(valueLen); err != nil {
		return nil, fmt.Errorf("reading AEDR value: %w", err)
	}
	return e, nil
}

// ADRSize returns the encoded size of an ADR.
func ADRSize(offsetSize, nameSize int) int64 {
	return headerSize(offsetSize) + 3*int64(offsetSize) + 8*4 + int64(nameSize)
}

// AEDRSize returns the encoded size of an AEDR carrying valueLen bytes.
func AEDRSize(offsetSize, valueLen int) int64 {
	return headerSize(offsetSize) + int64(offsetSize) + 9*4 + int64(valueLen)
}

// WriteADR serializes a at the writer position.
func WriteADR(w *binpkg.Writer, a *ADR, nameSize int) error {
	if err := writeHeader(w, ADRSize(w.OffsetSize(), nameSize), TypeADR); err != nil {
		return err
	}
	if err := w.WriteOffset(a.Next); err != nil {
		return err
	}
	if err := w.WriteOffset(a.AgrEDRHead); err != nil {
		return err
	}
	for _, v := range []int32{int32(a.Scope), a.Num, a.NgrEntries, a.MaxGrEntry, 0} {
		if err := w.WriteInt32(v); err != nil {
			return err
		}
	}
	if err := w.WriteOffset(a.AzEDRHead); err != nil {
		return err
	}
	for _, v := range []int32{a.NzEntries, a.MaxZEntry, -1} {
		if err := w.WriteInt32(v); err != nil {
			return err
		}
	}
	return w.WriteString(a.Name, nameSize)
}

// WriteAEDR serializes e at the writer position. e.Type selects the
// gr or z list and defaults to AgrEDR.
func WriteAEDR(w *binpkg.Writer, e *AEDR) error {
	typ := e.Type
	if typ != TypeAzEDR {
		typ = TypeAgrEDR
	}
	if err := writeHeader(w, AEDRSize(w.OffsetSize(), len(e.Value)), typ); err != nil {
		return err
	}
	if err := w.WriteOffset(e.Next); err != nil {
		return err
	}
	for _, v := range []int32{e.AttrNum, int32(e.DataType), e.Num, e.NumElems, e.NumStrings, 0, 0, -1, -1} {
		if err := w.WriteInt32(v); err != nil {
			return err
		}
	}
	return w.WriteBytes(e.Value)
}
