package cdf

import (
	"fmt"
	"math"

	"github.com/robert-malhotra/go-cdf/internal/record"
)

// fileProber implements EntryProber over the records of a CDF file.
type fileProber struct {
	rec           *record.File
	assumedScopes bool
}

func (p *fileProber) adr(name string) (*record.ADR, error) {
	a, ok := p.rec.Attribute(name)
	if !ok {
		return nil, ErrAttributeNotFound
	}
	return a, nil
}

func (p *fileProber) Attributes() ([]string, error) {
	adrs := p.rec.Attributes()
	names := make([]string, len(adrs))
	for i, a := range adrs {
		names[i] = a.Name
	}
	return names, nil
}

func (p *fileProber) Variables() ([]string, error) {
	vdrs := p.rec.Variables()
	names := make([]string, len(vdrs))
	for i, v := range vdrs {
		names[i] = v.Name
	}
	return names, nil
}

func (p *fileProber) Inquire(name string) (Inquiry, error) {
	a, err := p.adr(name)
	if err != nil {
		return Inquiry{}, err
	}
	scope := Scope(a.Scope)
	if !scope.Valid() {
		return Inquiry{}, fmt.Errorf("%w: attribute %q has scope %d", ErrUnsupported, name, a.Scope)
	}
	if !p.assumedScopes {
		scope = scope.Definite()
	}
	inq := Inquiry{
		Name:      a.Name,
		Number:    int(a.Num),
		Scope:     scope,
		MaxREntry: int(a.MaxGrEntry),
		MaxZEntry: -1,
	}
	if !scope.IsGlobal() {
		inq.MaxZEntry = int(a.MaxZEntry)
	}
	return inq, nil
}

func (p *fileProber) AttrInfo(number int, kind EntryKind) (EntryInfo, error) {
	var a *record.ADR
	for _, adr := range p.rec.Attributes() {
		if int(adr.Num) == number {
			a = adr
			break
		}
	}
	if a == nil {
		return EntryInfo{}, fmt.Errorf("%w: attribute number %d", ErrAttributeNotFound, number)
	}

	global := a.Scope.IsGlobal()
	switch kind {
	case GEntry, REntry:
		if global != (kind == GEntry) {
			return EntryInfo{}, fmt.Errorf("%w: %s of %s attribute %q", ErrUnsupportedScope, kind, Scope(a.Scope), a.Name)
		}
		return EntryInfo{NumEntries: int(a.NgrEntries), MaxEntry: int(a.MaxGrEntry)}, nil
	case ZEntry:
		if global {
			return EntryInfo{}, fmt.Errorf("%w: %s of %s attribute %q", ErrUnsupportedScope, kind, Scope(a.Scope), a.Name)
		}
		return EntryInfo{NumEntries: int(a.NzEntries), MaxEntry: int(a.MaxZEntry)}, nil
	default:
		return EntryInfo{}, fmt.Errorf("%w: entry kind %d", ErrInvalidArgument, int(kind))
	}
}

func (p *fileProber) EntryExists(name string, entry int) (bool, error) {
	a, err := p.adr(name)
	if err != nil {
		return false, err
	}
	if entry < 0 || entry > math.MaxInt32 {
		return false, nil
	}
	_, ok, err := p.rec.Entry(a, record.GrEntries, int32(entry))
	if err != nil {
		return false, translate(err)
	}
	return ok, nil
}

func (p *fileProber) Entry(name string, entry int) (Value, error) {
	a, err := p.adr(name)
	if err != nil {
		return Value{}, err
	}
	if entry < 0 || entry > math.MaxInt32 {
		return Value{}, &EntryError{Attr: name, Entry: entry, Position: -1, Err: ErrEntryNotFound}
	}
	e, ok, err := p.rec.Entry(a, record.GrEntries, int32(entry))
	if err != nil {
		return Value{}, translate(err)
	}
	if !ok {
		return Value{}, &EntryError{Attr: name, Entry: entry, Position: -1, Err: ErrEntryNotFound}
	}
	return p.decode(e)
}

func (p *fileProber) decode(e *record.AEDR) (Value, error) {
	elems, err := p.rec.Decode(e)
	if err != nil {
		return Value{}, translate(err)
	}
	return fromElements(TypeTag(e.DataType), elems)
}

func (p *fileProber) VariableEntry(attr, variable string) (VariableEntry, bool, error) {
	a, err := p.adr(attr)
	if err != nil {
		return VariableEntry{}, false, err
	}
	if a.Scope.IsGlobal() {
		return VariableEntry{}, false, nil
	}
	v, ok := p.rec.Variable(variable)
	if !ok {
		return VariableEntry{}, false, nil
	}

	list, kind := record.GrEntries, REntry
	if v.IsZ() {
		list, kind = record.ZEntries, ZEntry
	}
	e, ok, err := p.rec.Entry(a, list, v.Num)
	if err != nil {
		return VariableEntry{}, false, translate(err)
	}
	if !ok {
		return VariableEntry{}, false, nil
	}
	val, err := p.decode(e)
	if err != nil {
		return VariableEntry{}, false, err
	}
	return VariableEntry{Kind: kind, Value: val}, true, nil
}
