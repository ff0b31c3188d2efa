// Package cdfbuild assembles CDF files in memory.
//
// It writes only the records needed to describe attributes and variables
// (no variable data) and is used to produce fixtures for tests. Entry
// counts recorded in the ADRs can be overridden to reproduce archives
// whose declared counts disagree with their entry lists.
package cdfbuild

import (
	"crypto/md5"
	"fmt"

	"github.com/robert-malhotra/go-cdf/internal/alloc"
	binpkg "github.com/robert-malhotra/go-cdf/internal/binary"
	"github.com/robert-malhotra/go-cdf/internal/dtype"
	"github.com/robert-malhotra/go-cdf/internal/filter"
	"github.com/robert-malhotra/go-cdf/internal/record"
)

// Entry is one attribute entry.
type Entry struct {
	Num        int32
	Type       dtype.DataType
	Elems      dtype.Elements
	NumStrings int32
}

// Attribute describes an attribute and its entries.
type Attribute struct {
	Name  string
	Scope record.Scope

	// GrEntries are gEntries for global attributes, rEntries otherwise.
	GrEntries []Entry
	ZEntries  []Entry

	// NumGrEntries and MaxGrEntry override the counts written to the ADR.
	NumGrEntries *int32
	MaxGrEntry   *int32
}

// Variable describes a variable; only its descriptor is written.
type Variable struct {
	Name string
	Z    bool
	Type dtype.DataType
	Dims []int32
}

// File describes a CDF to assemble.
type File struct {
	// Major is 2 or 3; zero means 3.
	Major    int
	Encoding dtype.Encoding

	Compression filter.Compression
	Checksum    bool

	Attributes []Attribute
	Variables  []Variable
}

// Count returns a pointer to n, for count overrides.
func Count(n int32) *int32 {
	return &n
}

// Doubles returns a CDF_DOUBLE entry.
func Doubles(num int32, vals ...float64) Entry {
	return Entry{Num: num, Type: dtype.Double, Elems: dtype.Elements{Floats: vals}}
}

// Floats returns a CDF_FLOAT entry.
func Floats(num int32, vals ...float64) Entry {
	return Entry{Num: num, Type: dtype.Float, Elems: dtype.Elements{Floats: vals}}
}

// Int4s returns a CDF_INT4 entry.
func Int4s(num int32, vals ...int64) Entry {
	return Entry{Num: num, Type: dtype.Int4, Elems: dtype.Elements{Ints: vals}}
}

// UInt2s returns a CDF_UINT2 entry.
func UInt2s(num int32, vals ...uint64) Entry {
	return Entry{Num: num, Type: dtype.UInt2, Elems: dtype.Elements{Uints: vals}}
}

// Epochs returns a CDF_EPOCH entry.
func Epochs(num int32, ms ...float64) Entry {
	return Entry{Num: num, Type: dtype.Epoch, Elems: dtype.Elements{Floats: ms}}
}

// Text returns a CDF_CHAR entry.
func Text(num int32, s string) Entry {
	return Entry{Num: num, Type: dtype.Char, Elems: dtype.Elements{Chars: []byte(s)}}
}

// layout holds the planned offsets of every record.
type layout struct {
	cdr, gdr int64
	adrs     []int64
	gr, z    [][]int64
	vdrs     []int64
	eof      int64
}

// Bytes assembles the file.
func (f *File) Bytes() ([]byte, error) {
	magic := record.Magic{Major: f.Major}
	if magic.Major == 0 {
		magic.Major = 3
	}
	if magic.Major != 2 && magic.Major != 3 {
		return nil, fmt.Errorf("unsupported major version %d", magic.Major)
	}
	encoding := f.Encoding
	if encoding == 0 {
		encoding = dtype.EncodingNetwork
	}

	values, err := f.encodeValues(encoding)
	if err != nil {
		return nil, err
	}

	cfg := magic.Config()
	lay := f.plan(cfg.OffsetSize, magic.NameSize(), values)

	buf := &binpkg.Buffer{}
	w := binpkg.NewWriter(buf, cfg)
	if err := w.WriteBytes(magic.Bytes()); err != nil {
		return nil, err
	}
	if err := f.writeRecords(w, magic, encoding, lay, values); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	if f.Compression != filter.None {
		if out, err = compress(out, magic, f.Compression); err != nil {
			return nil, err
		}
	}
	if f.Checksum {
		sum := md5.Sum(out)
		out = append(out, sum[:]...)
	}
	return out, nil
}

// encodeValues encodes every entry value up front so record sizes are known.
func (f *File) encodeValues(enc dtype.Encoding) ([][2][][]byte, error) {
	values := make([][2][][]byte, len(f.Attributes))
	for i, a := range f.Attributes {
		for list, entries := range [2][]Entry{a.GrEntries, a.ZEntries} {
			for _, e := range entries {
				data, _, err := dtype.Encode(e.Type, enc, e.Elems)
				if err != nil {
					return nil, fmt.Errorf("attribute %q entry %d: %w", a.Name, e.Num, err)
				}
				values[i][list] = append(values[i][list], data)
			}
		}
	}
	return values, nil
}

func (f *File) plan(offsetSize, nameSize int, values [][2][][]byte) layout {
	a := alloc.New(record.MagicSize)
	lay := layout{
		cdr: a.Alloc(record.CDRSize(offsetSize), "CDR"),
		gdr: a.Alloc(record.GDRSize(offsetSize, 0), "GDR"),
	}
	for i, attr := range f.Attributes {
		lay.adrs = append(lay.adrs, a.Alloc(record.ADRSize(offsetSize, nameSize), "ADR "+attr.Name))
		var gr, z []int64
		for _, v := range values[i][0] {
			gr = append(gr, a.Alloc(record.AEDRSize(offsetSize, len(v)), "AgrEDR "+attr.Name))
		}
		for _, v := range values[i][1] {
			z = append(z, a.Alloc(record.AEDRSize(offsetSize, len(v)), "AzEDR "+attr.Name))
		}
		lay.gr = append(lay.gr, gr)
		lay.z = append(lay.z, z)
	}
	for _, v := range f.Variables {
		lay.vdrs = append(lay.vdrs, a.Alloc(record.VDRSize(offsetSize, nameSize, v.Z, len(v.Dims)), "VDR "+v.Name))
	}
	lay.eof = a.EOF()
	return lay
}

func (f *File) writeRecords(w *binpkg.Writer, magic record.Magic, enc dtype.Encoding, lay layout, values [][2][][]byte) error {
	var flags int32 = record.FlagRowMajor | record.FlagSingleFile
	if f.Checksum {
		flags |= record.FlagChecksum | record.FlagMD5
	}
	cdr := &record.CDR{
		GDROffset: lay.gdr,
		Version:   int32(magic.Major),
		Release:   9,
		Encoding:  enc,
		Flags:     flags,
		Copyright: "Common Data Format (CDF)",
	}
	if magic.Major == 2 {
		cdr.Release = 7
	}
	if err := record.WriteCDR(w.At(lay.cdr), cdr); err != nil {
		return fmt.Errorf("writing CDR: %w", err)
	}

	gdr := &record.GDR{EOF: lay.eof, NumAttr: int32(len(f.Attributes)), UIRHead: 0}
	if len(lay.adrs) > 0 {
		gdr.ADRHead = lay.adrs[0]
	}

	var rIdx, zIdx []int
	for i, v := range f.Variables {
		if v.Z {
			zIdx = append(zIdx, i)
		} else {
			rIdx = append(rIdx, i)
		}
	}
	gdr.NzVars = int32(len(zIdx))
	gdr.NrVars = int32(len(rIdx))
	if len(zIdx) > 0 {
		gdr.ZVDRHead = lay.vdrs[zIdx[0]]
	}
	if len(rIdx) > 0 {
		gdr.RVDRHead = lay.vdrs[rIdx[0]]
	}
	if err := record.WriteGDR(w.At(lay.gdr), gdr); err != nil {
		return fmt.Errorf("writing GDR: %w", err)
	}

	for i, attr := range f.Attributes {
		if err := f.writeAttribute(w, magic, lay, i, attr, values[i]); err != nil {
			return err
		}
	}

	for _, group := range [][]int{zIdx, rIdx} {
		for n, i := range group {
			v := f.Variables[i]
			vdr := &record.VDR{
				DataType:  v.Type,
				MaxRec:    -1,
				NumElems:  1,
				Num:       int32(n),
				Name:      v.Name,
				ZDimSizes: v.Dims,
			}
			if v.Z {
				vdr.Type = record.TypeZVDR
			}
			if n+1 < len(group) {
				vdr.Next = lay.vdrs[group[n+1]]
			}
			if err := record.WriteVDR(w.At(lay.vdrs[i]), vdr, magic.NameSize(), 0); err != nil {
				return fmt.Errorf("writing VDR %q: %w", v.Name, err)
			}
		}
	}
	return nil
}

func (f *File) writeAttribute(w *binpkg.Writer, magic record.Magic, lay layout, i int, attr Attribute, values [2][][]byte) error {
	scope := attr.Scope
	if scope == 0 {
		scope = record.ScopeGlobal
	}
	adr := &record.ADR{
		Scope:      scope,
		Num:        int32(i),
		NgrEntries: int32(len(attr.GrEntries)),
		MaxGrEntry: maxNum(attr.GrEntries),
		NzEntries:  int32(len(attr.ZEntries)),
		MaxZEntry:  maxNum(attr.ZEntries),
		Name:       attr.Name,
	}
	if attr.NumGrEntries != nil {
		adr.NgrEntries = *attr.NumGrEntries
	}
	if attr.MaxGrEntry != nil {
		adr.MaxGrEntry = *attr.MaxGrEntry
	}
	if i+1 < len(lay.adrs) {
		adr.Next = lay.adrs[i+1]
	}
	if len(lay.gr[i]) > 0 {
		adr.AgrEDRHead = lay.gr[i][0]
	}
	if len(lay.z[i]) > 0 {
		adr.AzEDRHead = lay.z[i][0]
	}
	if err := record.WriteADR(w.At(lay.adrs[i]), adr, magic.NameSize()); err != nil {
		return fmt.Errorf("writing ADR %q: %w", attr.Name, err)
	}

	lists := [2][]Entry{attr.GrEntries, attr.ZEntries}
	offsets := [2][]int64{lay.gr[i], lay.z[i]}
	for list := range lists {
		for n, e := range lists[list] {
			aedr := &record.AEDR{
				AttrNum:    int32(i),
				DataType:   e.Type,
				Num:        e.Num,
				NumElems:   int32(e.Elems.Len()),
				NumStrings: e.NumStrings,
				Value:      values[list][n],
			}
			if list == 1 {
				aedr.Type = record.TypeAzEDR
			}
			if n+1 < len(offsets[list]) {
				aedr.Next = offsets[list][n+1]
			}
			if err := record.WriteAEDR(w.At(offsets[list][n]), aedr); err != nil {
				return fmt.Errorf("writing entry %d of %q: %w", e.Num, attr.Name, err)
			}
		}
	}
	return nil
}

func maxNum(entries []Entry) int32 {
	var m int32 = -1
	for _, e := range entries {
		if e.Num > m {
			m = e.Num
		}
	}
	return m
}

// compress wraps an uncompressed file image in a CCR and CPR.
func compress(plain []byte, magic record.Magic, c filter.Compression) ([]byte, error) {
	codec, err := filter.New(c, nil)
	if err != nil {
		return nil, err
	}
	body := plain[record.MagicSize:]
	data, err := codec.Encode(body)
	if err != nil {
		return nil, err
	}

	cfg := magic.Config()
	params := []int32{0}
	if c == filter.GZIP {
		params = []int32{6}
	}
	ccrSize := record.CCRSize(cfg.OffsetSize, len(data))
	packed := magic
	packed.Compressed = true

	buf := &binpkg.Buffer{}
	w := binpkg.NewWriter(buf, cfg)
	if err := w.WriteBytes(packed.Bytes()); err != nil {
		return nil, err
	}
	ccr := &record.CCR{
		CPROffset: record.MagicSize + ccrSize,
		USize:     int64(len(body)),
		Data:      data,
	}
	if err := record.WriteCCR(w, ccr); err != nil {
		return nil, fmt.Errorf("writing CCR: %w", err)
	}
	if err := record.WriteCPR(w, &record.CPR{Compression: c, Params: params}); err != nil {
		return nil, fmt.Errorf("writing CPR: %w", err)
	}
	return buf.Bytes(), nil
}
