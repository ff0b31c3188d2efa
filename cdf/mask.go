package cdf

import "strings"

// EntryMask flags which entry numbers hold a value, from 0 to the highest
// entry scanned.
type EntryMask struct {
	flags    []bool
	count    int
	reported int
}

func newMask(size, reported int) EntryMask {
	if size < 0 {
		size = 0
	}
	return EntryMask{flags: make([]bool, size), reported: reported}
}

func (m *EntryMask) set(entry int) {
	if !m.flags[entry] {
		m.flags[entry] = true
		m.count++
	}
}

// Len returns the number of entry numbers covered.
func (m EntryMask) Len() int { return len(m.flags) }

// Has reports whether entry holds a value.
func (m EntryMask) Has(entry int) bool {
	return entry >= 0 && entry < len(m.flags) && m.flags[entry]
}

// Flags returns a copy of the flags.
func (m EntryMask) Flags() []bool {
	out := make([]bool, len(m.flags))
	copy(out, m.flags)
	return out
}

// Count returns the number of set flags: the entries observed.
func (m EntryMask) Count() int { return m.count }

// Reported returns the entry count declared by the file. For masks built
// from an explicit request it equals Count.
func (m EntryMask) Reported() int { return m.reported }

// Consistent reports whether the observed and declared counts agree.
func (m EntryMask) Consistent() bool { return m.count == m.reported }

// String renders the mask as a string of 0s and 1s.
func (m EntryMask) String() string {
	var b strings.Builder
	for _, f := range m.flags {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// MaskScan is the result of BuildMask.
type MaskScan struct {
	Mask EntryMask

	// Types holds the type of each present entry in increasing entry
	// order. It is nil unless types were requested.
	Types []TypeTag

	Diagnostics []Diagnostic
}

// BuildMask scans every entry number up to the attribute's declared
// maximum and records which exist. Entry types are read only when
// withTypes is set. Only global attributes have entry masks.
func (a *Attribute) BuildMask(withTypes bool) (*MaskScan, error) {
	if err := a.file.checkOpen(); err != nil {
		return nil, err
	}
	if !a.scope.IsGlobal() {
		return nil, &AttrError{Op: "build mask", Attr: a.name, Err: ErrUnsupportedScope}
	}

	p := a.file.prober
	info, err := p.AttrInfo(a.number, GEntry)
	if err != nil {
		return nil, &AttrError{Op: "build mask", Attr: a.name, Err: err}
	}

	scan := &MaskScan{Mask: newMask(info.MaxEntry+1, info.NumEntries)}
	for i := 0; i <= info.MaxEntry; i++ {
		ok, err := p.EntryExists(a.name, i)
		if err != nil {
			return nil, &AttrError{Op: "build mask", Attr: a.name, Err: err}
		}
		if !ok {
			continue
		}
		scan.Mask.set(i)
		if withTypes {
			v, err := p.Entry(a.name, i)
			if err != nil {
				return nil, &AttrError{Op: "build mask", Attr: a.name, Err: err}
			}
			scan.Types = append(scan.Types, v.Type())
		}
	}

	if !scan.Mask.Consistent() {
		scan.Diagnostics = append(scan.Diagnostics, a.file.diagnose(Diagnostic{
			Kind:     PartialEntries,
			Attr:     a.name,
			Reported: info.NumEntries,
			Observed: scan.Mask.Count(),
		}))
	}
	return scan, nil
}
