package record

import (
	"encoding/binary"
	"fmt"
	"io"

	binpkg "github.com/robert-malhotra/go-cdf/internal/binary"
	"github.com/robert-malhotra/go-cdf/internal/dtype"
)

// EntryList selects one of an attribute's two entry lists.
type EntryList int

const (
	// GrEntries is the AgrEDR list: gEntries of global attributes,
	// rEntries of variable attributes.
	GrEntries EntryList = iota
	// ZEntries is the AzEDR list of variable attributes.
	ZEntries
)

func (l EntryList) String() string {
	if l == ZEntries {
		return "zEntry"
	}
	return "grEntry"
}

type entryKey struct {
	attr int32
	list EntryList
}

// File is a parsed index of a CDF's descriptor records. Attribute and
// variable descriptors are read eagerly; entry lists are indexed on first
// use. A File is not safe for concurrent use.
type File struct {
	Magic Magic
	CDR   *CDR
	GDR   *GDR

	// Compressed is true when the records were expanded from a CCR.
	Compressed bool

	reader     *binpkg.Reader
	valueOrder binary.ByteOrder

	attrs      []*ADR
	attrByName map[string]*ADR
	vars       []*VDR
	varByName  map[string]*VDR
	entries    map[entryKey]map[int32]*AEDR
}

// Open parses the descriptor records of the CDF readable through r.
// Compressed files are expanded in memory first.
func Open(r io.ReaderAt) (*File, error) {
	m, err := ReadMagic(r)
	if err != nil {
		return nil, err
	}
	compressed := m.Compressed
	if compressed {
		plain, err := Decompress(r, m)
		if err != nil {
			return nil, fmt.Errorf("expanding compressed file: %w", err)
		}
		r = plain
		m.Compressed = false
	}

	br := binpkg.NewReader(r, m.Config())
	cdr, err := ReadCDR(br)
	if err != nil {
		return nil, err
	}
	if cdr.Version < 2 || cdr.Version > 3 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, cdr.VersionString())
	}
	gdr, err := ReadGDR(br, cdr.GDROffset)
	if err != nil {
		return nil, err
	}
	order, err := cdr.Encoding.ByteOrder()
	if err != nil {
		return nil, err
	}

	f := &File{
		Magic:      m,
		Compressed: compressed,
		CDR:        cdr,
		GDR:        gdr,
		reader:     br,
		valueOrder: order,
		attrByName: make(map[string]*ADR),
		varByName:  make(map[string]*VDR),
		entries:    make(map[entryKey]map[int32]*AEDR),
	}
	if err := f.readAttributes(); err != nil {
		return nil, err
	}
	if err := f.readVariables(gdr.ZVDRHead); err != nil {
		return nil, err
	}
	if err := f.readVariables(gdr.RVDRHead); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) readAttributes() error {
	return chain(f.reader, f.GDR.ADRHead, func(r *binpkg.Reader) (int64, error) {
		a, err := ReadADR(r, f.Magic.NameSize())
		if err != nil {
			return 0, err
		}
		f.attrs = append(f.attrs, a)
		if _, dup := f.attrByName[a.Name]; !dup {
			f.attrByName[a.Name] = a
		}
		return a.Next, nil
	})
}

func (f *File) readVariables(head int64) error {
	return chain(f.reader, head, func(r *binpkg.Reader) (int64, error) {
		v, err := ReadVDR(r, f.Magic.NameSize())
		if err != nil {
			return 0, err
		}
		f.vars = append(f.vars, v)
		if _, dup := f.varByName[v.Name]; !dup {
			f.varByName[v.Name] = v
		}
		return v.Next, nil
	})
}

// Attributes returns the attribute descriptors in file order.
func (f *File) Attributes() []*ADR {
	return f.attrs
}

// Attribute looks up an attribute descriptor by name. Names are case sensitive.
func (f *File) Attribute(name string) (*ADR, bool) {
	a, ok := f.attrByName[name]
	return a, ok
}

// Variables returns the variable descriptors, zVariables first.
func (f *File) Variables() []*VDR {
	return f.vars
}

// Variable looks up a variable descriptor by name.
func (f *File) Variable(name string) (*VDR, bool) {
	v, ok := f.varByName[name]
	return v, ok
}

// Entries returns the entries of one list of a, keyed by entry number.
func (f *File) Entries(a *ADR, list EntryList) (map[int32]*AEDR, error) {
	key := entryKey{attr: a.Num, list: list}
	if idx, ok := f.entries[key]; ok {
		return idx, nil
	}

	head := a.AgrEDRHead
	if list == ZEntries {
		head = a.AzEDRHead
	}
	idx := make(map[int32]*AEDR)
	err := chain(f.reader, head, func(r *binpkg.Reader) (int64, error) {
		e, err := ReadAEDR(r)
		if err != nil {
			return 0, err
		}
		if _, dup := idx[e.Num]; !dup {
			idx[e.Num] = e
		}
		return e.Next, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s list of %q: %w", list, a.Name, err)
	}
	f.entries[key] = idx
	return idx, nil
}

// Entry returns one entry of a, reporting whether it exists.
func (f *File) Entry(a *ADR, list EntryList, num int32) (*AEDR, bool, error) {
	idx, err := f.Entries(a, list)
	if err != nil {
		return nil, false, err
	}
	e, ok := idx[num]
	return e, ok, nil
}

// Decode converts the value of e using the file's data encoding.
func (f *File) Decode(e *AEDR) (dtype.Elements, error) {
	return dtype.Decode(e.DataType, f.CDR.Encoding, int(e.NumElems), e.Value)
}

// ValueOrder returns the byte order of entry values.
func (f *File) ValueOrder() binary.ByteOrder {
	return f.valueOrder
}
