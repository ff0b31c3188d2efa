package cdf

import "fmt"

// Attribute describes one attribute of a File. Descriptors are created by
// File.Attr and friends and remain owned by that File.
type Attribute struct {
	file *File

	name     string
	isGlobal bool
	number   int
	scope    Scope
	state    State

	value    AggregatedValue
	hasValue bool
	typ      TypeTag
	hasType  bool
}

func newAttribute(f *File, inq Inquiry) *Attribute {
	return &Attribute{
		file:     f,
		name:     inq.Name,
		isGlobal: inq.Scope.IsGlobal(),
		number:   inq.Number,
		scope:    inq.Scope,
	}
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.name }

// IsGlobal reports whether the attribute was global when the descriptor
// was created.
func (a *Attribute) IsGlobal() bool { return a.isGlobal }

// Number returns the attribute number.
func (a *Attribute) Number() int { return a.number }

// Scope returns the scope, as of the most recent parse.
func (a *Attribute) Scope() Scope { return a.scope }

// State returns the resolution state.
func (a *Attribute) State() State { return a.state }

// Value returns the value cached by ParseGlobal. ok is false before a
// successful parse and for attributes without entries.
func (a *Attribute) Value() (v AggregatedValue, ok bool) {
	return a.value, a.hasValue
}

// DataType returns the type cached by ParseGlobal. ok is false unless
// every entry shares one type.
func (a *Attribute) DataType() (t TypeTag, ok bool) {
	return a.typ, a.hasType
}

// Aggregation is the result of Aggregate.
type Aggregation struct {
	Value AggregatedValue
	Mask  EntryMask

	// Entries holds the entry number of each folded value.
	Entries []int

	// Types holds the type of each folded value.
	Types []TypeTag

	Diagnostics []Diagnostic
}

// Aggregate reads entries of a global attribute and folds them into one
// value.
//
// With no indices every existing entry up to the declared maximum is read
// in increasing order. With indices, exactly those entries are read in the
// order given; each must exist. The mask then spans entry numbers up to
// the largest requested, with a flag for each requested entry.
func (a *Attribute) Aggregate(indices ...int) (*Aggregation, error) {
	for pos, e := range indices {
		if e < 0 {
			return nil, &EntryError{Attr: a.name, Entry: e, Position: pos, Err: ErrInvalidArgument}
		}
	}
	if err := a.file.checkOpen(); err != nil {
		return nil, err
	}
	if !a.scope.IsGlobal() {
		return nil, &AttrError{Op: "aggregate", Attr: a.name, Err: ErrUnsupportedScope}
	}
	if len(indices) > 0 {
		return a.aggregateEntries(indices)
	}
	return a.aggregateAll(a.number, GEntry)
}

func (a *Attribute) aggregateEntries(indices []int) (*Aggregation, error) {
	p := a.file.prober
	items := make([]Item, 0, len(indices))
	maxEntry := 0
	for pos, e := range indices {
		ok, err := p.EntryExists(a.name, e)
		if err != nil {
			return nil, &AttrError{Op: "aggregate", Attr: a.name, Err: err}
		}
		if !ok {
			return nil, &EntryError{Attr: a.name, Entry: e, Position: pos, Err: ErrEntryNotFound}
		}
		v, err := p.Entry(a.name, e)
		if err != nil {
			return nil, &AttrError{Op: "aggregate", Attr: a.name, Err: err}
		}
		maxEntry = max(maxEntry, e)
		items = append(items, Item{Value: v, Type: v.Type()})
	}

	// Sized only after every entry was found to exist.
	mask := newMask(maxEntry+1, 0)
	for _, e := range indices {
		mask.set(e)
	}
	mask.reported = mask.count

	return finish(items, mask, append([]int(nil), indices...), nil), nil
}

// aggregateAll walks the declared entry range of one entry space, stopping
// once the declared number of entries has been found.
func (a *Attribute) aggregateAll(number int, kind EntryKind) (*Aggregation, error) {
	p := a.file.prober
	info, err := p.AttrInfo(number, kind)
	if err != nil {
		return nil, &AttrError{Op: "aggregate", Attr: a.name, Err: err}
	}

	mask := newMask(info.MaxEntry+1, info.NumEntries)
	var (
		items   []Item
		entries []int
	)
	for pos := 0; len(items) < info.NumEntries && pos <= info.MaxEntry; pos++ {
		ok, err := p.EntryExists(a.name, pos)
		if err != nil {
			return nil, &AttrError{Op: "aggregate", Attr: a.name, Err: err}
		}
		if !ok {
			continue
		}
		v, err := p.Entry(a.name, pos)
		if err != nil {
			return nil, &AttrError{Op: "aggregate", Attr: a.name, Err: err}
		}
		mask.set(pos)
		entries = append(entries, pos)
		items = append(items, Item{Value: v, Type: v.Type()})
	}

	var diags []Diagnostic
	if len(items) < info.NumEntries {
		diags = append(diags, a.file.diagnose(Diagnostic{
			Kind:     PartialEntries,
			Attr:     a.name,
			Reported: info.NumEntries,
			Observed: len(items),
		}))
	}
	return finish(items, mask, entries, diags), nil
}

func finish(items []Item, mask EntryMask, entries []int, diags []Diagnostic) *Aggregation {
	types := make([]TypeTag, len(items))
	for i, it := range items {
		types[i] = it.Type
	}
	return &Aggregation{
		Value:       fold(decodeTexts(items)),
		Mask:        mask,
		Entries:     entries,
		Types:       types,
		Diagnostics: diags,
	}
}

// ParseGlobal resolves the attribute and caches its value. The scope and
// number are re-read from the file; a scope that disagrees with the
// descriptor is reported as a diagnostic and the file's scope is adopted.
//
// On error the descriptor is left as it was. Attributes without entries
// resolve with no cached value.
func (a *Attribute) ParseGlobal() ([]Diagnostic, error) {
	if err := a.file.checkOpen(); err != nil {
		return nil, err
	}
	inq, err := a.file.prober.Inquire(a.name)
	if err != nil {
		return nil, &AttrError{Op: "parse", Attr: a.name, Err: err}
	}

	var diags []Diagnostic
	if !inq.Scope.IsGlobal() || !a.isGlobal {
		diags = append(diags, a.file.diagnose(Diagnostic{
			Kind:     ScopeMismatch,
			Attr:     a.name,
			Reported: int(a.scope),
			Observed: int(inq.Scope),
		}))
	}

	kind := GEntry
	if !inq.Scope.IsGlobal() {
		kind = REntry
	}
	agg, err := a.aggregateAll(inq.Number, kind)
	if err != nil {
		return nil, err
	}
	diags = append(diags, agg.Diagnostics...)

	a.number = inq.Number
	a.scope = inq.Scope
	a.state = Resolved
	a.value, a.hasValue = agg.Value, agg.Value.Kind() != Absent
	a.typ, a.hasType = agg.Value.Type()
	return diags, nil
}

// ParseVariable returns the entry the attribute holds for variable.
// Character values are decoded to text. The value is not cached.
func (a *Attribute) ParseVariable(variable string) (Value, error) {
	if variable == "" {
		return Value{}, &VariableAttrError{Attr: a.name, Err: fmt.Errorf("%w: empty variable name", ErrInvalidArgument)}
	}
	if err := a.file.checkOpen(); err != nil {
		return Value{}, err
	}
	inq, err := a.file.prober.Inquire(a.name)
	if err != nil {
		return Value{}, &AttrError{Op: "parse", Attr: a.name, Err: err}
	}

	entry, ok, err := a.file.prober.VariableEntry(a.name, variable)
	if err != nil {
		return Value{}, &VariableAttrError{Attr: a.name, Variable: variable, Err: err}
	}
	if !ok {
		return Value{}, &VariableAttrError{Attr: a.name, Variable: variable, Err: ErrAttributeNotOnVariable}
	}

	a.number = inq.Number
	a.scope = inq.Scope
	a.state = Resolved
	return entry.Value.decodeText(), nil
}
