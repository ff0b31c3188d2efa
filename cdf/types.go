package cdf

import (
	"fmt"

	"github.com/robert-malhotra/go-cdf/internal/dtype"
)

// TypeTag identifies the CDF data type of a value. The numeric values are
// the codes stored in CDF files.
type TypeTag int32

// CDF data types.
const (
	Int1       TypeTag = 1
	Int2       TypeTag = 2
	Int4       TypeTag = 4
	Int8       TypeTag = 8
	UInt1      TypeTag = 11
	UInt2      TypeTag = 12
	UInt4      TypeTag = 14
	Real4      TypeTag = 21
	Real8      TypeTag = 22
	Epoch      TypeTag = 31
	Epoch16    TypeTag = 32
	TimeTT2000 TypeTag = 33
	Byte       TypeTag = 41
	Float      TypeTag = 44
	Double     TypeTag = 45
	Char       TypeTag = 51
	UChar      TypeTag = 52
)

// String returns the CDF library name of the type, e.g. "CDF_DOUBLE".
func (t TypeTag) String() string {
	return dtype.DataType(t).String()
}

// Valid reports whether t is one of the defined types.
func (t TypeTag) Valid() bool {
	return dtype.DataType(t).Valid()
}

// IsChar reports whether t is CDF_CHAR or CDF_UCHAR.
func (t TypeTag) IsChar() bool {
	return t == Char || t == UChar
}

// valueClass is the backing slice a type's elements are held in.
type valueClass int

const (
	classInvalid valueClass = iota
	classInt
	classUint
	classFloat
	classEpoch16
	classChar
)

func (t TypeTag) class() valueClass {
	switch t {
	case Int1, Int2, Int4, Int8, TimeTT2000, Byte:
		return classInt
	case UInt1, UInt2, UInt4:
		return classUint
	case Real4, Real8, Float, Double, Epoch:
		return classFloat
	case Epoch16:
		return classEpoch16
	case Char, UChar:
		return classChar
	default:
		return classInvalid
	}
}

// Scope is the declared applicability of an attribute.
type Scope int32

// Attribute scopes. The assumed variants are reported for attributes whose
// scope was inferred by the writing library rather than declared.
const (
	GlobalScope          Scope = 1
	VariableScope        Scope = 2
	GlobalScopeAssumed   Scope = 3
	VariableScopeAssumed Scope = 4
)

// IsGlobal reports whether the scope carries the global marker.
func (s Scope) IsGlobal() bool {
	return s == GlobalScope || s == GlobalScopeAssumed
}

// Valid reports whether s is one of the defined scopes.
func (s Scope) Valid() bool {
	return s >= GlobalScope && s <= VariableScopeAssumed
}

// Definite returns the scope with the assumed marker removed.
func (s Scope) Definite() Scope {
	switch s {
	case GlobalScopeAssumed:
		return GlobalScope
	case VariableScopeAssumed:
		return VariableScope
	default:
		return s
	}
}

func (s Scope) String() string {
	switch s {
	case GlobalScope:
		return "GLOBAL_SCOPE"
	case VariableScope:
		return "VARIABLE_SCOPE"
	case GlobalScopeAssumed:
		return "GLOBAL_SCOPE_ASSUMED"
	case VariableScopeAssumed:
		return "VARIABLE_SCOPE_ASSUMED"
	default:
		return fmt.Sprintf("SCOPE(%d)", int32(s))
	}
}

// EntryKind selects one of an attribute's entry spaces.
type EntryKind int

const (
	// GEntry entries belong to global attributes.
	GEntry EntryKind = iota
	// REntry entries belong to variable attributes and are numbered by
	// rVariable.
	REntry
	// ZEntry entries belong to variable attributes and are numbered by
	// zVariable.
	ZEntry
)

func (k EntryKind) String() string {
	switch k {
	case GEntry:
		return "gEntry"
	case REntry:
		return "rEntry"
	case ZEntry:
		return "zEntry"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

// State is the resolution state of an [Attribute].
type State int

const (
	// Constructed descriptors have not been parsed.
	Constructed State = iota
	// Resolved descriptors have completed ParseGlobal or ParseVariable.
	Resolved
)

func (s State) String() string {
	if s == Resolved {
		return "resolved"
	}
	return "constructed"
}
