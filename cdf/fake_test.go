package cdf

import (
	"fmt"
	"sort"
)

// fakeAttr is an in-memory attribute for fakeProber.
type fakeAttr struct {
	number  int
	scope   Scope
	entries map[int]Value

	// numEntries and maxEntry override the counts derived from entries
	// when set.
	numEntries *int
	maxEntry   *int

	// variables maps variable names to their entry.
	variables map[string]Value
}

func (a *fakeAttr) info() EntryInfo {
	info := EntryInfo{NumEntries: len(a.entries), MaxEntry: -1}
	for e := range a.entries {
		info.MaxEntry = max(info.MaxEntry, e)
	}
	if a.numEntries != nil {
		info.NumEntries = *a.numEntries
	}
	if a.maxEntry != nil {
		info.MaxEntry = *a.maxEntry
	}
	return info
}

// fakeProber serves attributes from memory and counts calls.
type fakeProber struct {
	attrs map[string]*fakeAttr
	order []string

	existsCalls int
	entryCalls  int

	// failEntry makes Entry fail for this entry number.
	failEntry *int
}

func newFakeProber() *fakeProber {
	return &fakeProber{attrs: make(map[string]*fakeAttr)}
}

func (p *fakeProber) add(name string, a *fakeAttr) *fakeProber {
	a.number = len(p.order)
	if a.scope == 0 {
		a.scope = GlobalScope
	}
	p.attrs[name] = a
	p.order = append(p.order, name)
	return p
}

func (p *fakeProber) Attributes() ([]string, error) {
	return append([]string(nil), p.order...), nil
}

func (p *fakeProber) Inquire(name string) (Inquiry, error) {
	a, ok := p.attrs[name]
	if !ok {
		return Inquiry{}, ErrAttributeNotFound
	}
	info := a.info()
	return Inquiry{Name: name, Number: a.number, Scope: a.scope, MaxREntry: info.MaxEntry, MaxZEntry: -1}, nil
}

func (p *fakeProber) AttrInfo(number int, kind EntryKind) (EntryInfo, error) {
	for _, name := range p.order {
		if a := p.attrs[name]; a.number == number {
			if kind == ZEntry {
				return EntryInfo{MaxEntry: -1}, nil
			}
			return a.info(), nil
		}
	}
	return EntryInfo{}, ErrAttributeNotFound
}

func (p *fakeProber) EntryExists(name string, entry int) (bool, error) {
	p.existsCalls++
	a, ok := p.attrs[name]
	if !ok {
		return false, ErrAttributeNotFound
	}
	_, ok = a.entries[entry]
	return ok, nil
}

func (p *fakeProber) Entry(name string, entry int) (Value, error) {
	p.entryCalls++
	if p.failEntry != nil && *p.failEntry == entry {
		return Value{}, fmt.Errorf("read error at entry %d", entry)
	}
	a, ok := p.attrs[name]
	if !ok {
		return Value{}, ErrAttributeNotFound
	}
	v, ok := a.entries[entry]
	if !ok {
		return Value{}, ErrEntryNotFound
	}
	return v, nil
}

func (p *fakeProber) VariableEntry(attr, variable string) (VariableEntry, bool, error) {
	a, ok := p.attrs[attr]
	if !ok {
		return VariableEntry{}, false, ErrAttributeNotFound
	}
	if a.scope.IsGlobal() {
		return VariableEntry{}, false, nil
	}
	v, ok := a.variables[variable]
	if !ok {
		return VariableEntry{}, false, nil
	}
	return VariableEntry{Kind: ZEntry, Value: v}, true, nil
}

func (p *fakeProber) Variables() ([]string, error) {
	seen := make(map[string]bool)
	for _, a := range p.attrs {
		for v := range a.variables {
			seen[v] = true
		}
	}
	var out []string
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func intp(n int) *int { return &n }

func mustInts(t TypeTag, v ...int64) Value {
	val, err := NewInts(t, v...)
	if err != nil {
		panic(err)
	}
	return val
}
