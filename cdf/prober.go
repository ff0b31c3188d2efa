package cdf

// EntryProber is the read-only file access an attribute session is built
// on. Implementations report which entries exist and decode their values.
//
// Entry numbers passed to EntryExists and Entry address gEntries of
// global attributes and rEntries of variable attributes.
type EntryProber interface {
	// Attributes lists attribute names in file order.
	Attributes() ([]string, error)

	// Inquire describes the named attribute. It fails with
	// ErrAttributeNotFound when there is no such attribute.
	Inquire(name string) (Inquiry, error)

	// AttrInfo reports the entry counts of one entry space of the
	// attribute with the given number.
	AttrInfo(number int, kind EntryKind) (EntryInfo, error)

	// EntryExists reports whether the attribute holds the entry.
	EntryExists(name string, entry int) (bool, error)

	// Entry returns the value of an entry. Its result is only defined when
	// EntryExists reported true for the same entry.
	Entry(name string, entry int) (Value, error)

	// VariableEntry returns the entry the attribute holds for a variable.
	// ok is false when the attribute is not variable scoped or the
	// variable has no entry.
	VariableEntry(attr, variable string) (entry VariableEntry, ok bool, err error)
}

// VariableLister is implemented by probers that can list variable names.
type VariableLister interface {
	Variables() ([]string, error)
}

// Inquiry describes an attribute.
type Inquiry struct {
	Name   string
	Number int
	Scope  Scope

	// MaxREntry is the highest gEntry or rEntry number, -1 if none.
	MaxREntry int
	// MaxZEntry is the highest zEntry number, -1 if none.
	MaxZEntry int
}

// EntryInfo holds the declared counts of one entry space.
type EntryInfo struct {
	NumEntries int

	// MaxEntry is the highest entry number, -1 if the space is empty.
	MaxEntry int
}

// VariableEntry is an attribute entry for one variable.
type VariableEntry struct {
	Kind  EntryKind
	Value Value
}
