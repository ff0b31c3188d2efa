package cdf

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrAttributeNotFound      = errors.New("attribute not found")
	ErrAttributeNotOnVariable = errors.New("attribute has no entry for variable")
	ErrEntryNotFound          = errors.New("entry not found")
	ErrUnsupportedScope       = errors.New("operation not supported for attribute scope")
	ErrNotCDF                 = errors.New("not a CDF file")
	ErrUnsupported            = errors.New("unsupported feature")
	ErrClosed                 = errors.New("file is closed")
	ErrChecksum               = errors.New("checksum mismatch")
)

// EntryError reports an entry that was requested but does not exist.
type EntryError struct {
	Attr string

	// Entry is the entry number that was requested.
	Entry int

	// Position is the index of Entry in the caller's request, or -1 when
	// the entry was not part of an explicit request.
	Position int

	Err error
}

func (e *EntryError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("entry %d of attribute %q: %v", e.Entry, e.Attr, e.Err)
	}
	return fmt.Sprintf("entry %d (request position %d) of attribute %q: %v", e.Entry, e.Position, e.Attr, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// VariableAttrError reports a failed variable attribute lookup.
type VariableAttrError struct {
	Attr     string
	Variable string
	Err      error
}

func (e *VariableAttrError) Error() string {
	return fmt.Sprintf("attribute %q, variable %q: %v", e.Attr, e.Variable, e.Err)
}

func (e *VariableAttrError) Unwrap() error {
	return e.Err
}

// AttrError records the operation and attribute of a failure.
type AttrError struct {
	Op   string
	Attr string
	Err  error
}

func (e *AttrError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Attr, e.Err)
}

func (e *AttrError) Unwrap() error {
	return e.Err
}

// DiagnosticKind classifies a non-fatal inconsistency.
type DiagnosticKind int

const (
	// PartialEntries means the entry count declared by the file differs
	// from the number of entries observed.
	PartialEntries DiagnosticKind = iota + 1
	// ScopeMismatch means the scope found while parsing disagrees with
	// the scope the descriptor was constructed with.
	ScopeMismatch
)

func (k DiagnosticKind) String() string {
	switch k {
	case PartialEntries:
		return "partial entries"
	case ScopeMismatch:
		return "scope mismatch"
	default:
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
}

// Diagnostic describes an inconsistency found while completing an operation.
// For PartialEntries, Reported and Observed are entry counts. For
// ScopeMismatch they are scope codes.
type Diagnostic struct {
	Kind     DiagnosticKind
	Attr     string
	Reported int
	Observed int
}

func (d Diagnostic) String() string {
	if d.Kind == ScopeMismatch {
		return fmt.Sprintf("%s: attribute %q expected %s, file reports %s",
			d.Kind, d.Attr, Scope(d.Reported), Scope(d.Observed))
	}
	return fmt.Sprintf("%s: attribute %q declares %d entries, found %d",
		d.Kind, d.Attr, d.Reported, d.Observed)
}
