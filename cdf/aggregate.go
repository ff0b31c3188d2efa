package cdf

import "fmt"

// Kind classifies an AggregatedValue.
type Kind int

const (
	// Absent means no entries were found.
	Absent Kind = iota
	// Scalar holds exactly one entry.
	Scalar
	// HomogeneousArray holds two or more entries of one type.
	HomogeneousArray
	// MixedCollection holds two or more entries of differing types, each
	// paired with its own type.
	MixedCollection
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Scalar:
		return "scalar"
	case HomogeneousArray:
		return "homogeneous array"
	case MixedCollection:
		return "mixed collection"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Item is one accumulated entry value with its type.
type Item struct {
	Value Value
	Type  TypeTag
}

// AggregatedValue is the folded result of reading an attribute's entries.
// The zero value is Absent.
type AggregatedValue struct {
	kind  Kind
	typ   TypeTag
	items []Item
}

// fold decides the shape of an accumulation. It is applied once, after
// every entry has been read.
func fold(items []Item) AggregatedValue {
	switch len(items) {
	case 0:
		return AggregatedValue{kind: Absent}
	case 1:
		return AggregatedValue{kind: Scalar, typ: items[0].Type, items: items}
	}
	first := items[0].Type
	for _, it := range items[1:] {
		if it.Type != first {
			return AggregatedValue{kind: MixedCollection, items: items}
		}
	}
	return AggregatedValue{kind: HomogeneousArray, typ: first, items: items}
}

// decodeTexts converts every character item of an accumulation to text.
func decodeTexts(items []Item) []Item {
	for i := range items {
		if items[i].Type.IsChar() {
			items[i].Value = items[i].Value.decodeText()
		}
	}
	return items
}

// Kind returns the shape of the value.
func (a AggregatedValue) Kind() Kind {
	return a.kind
}

// Type returns the common type of a Scalar or HomogeneousArray.
func (a AggregatedValue) Type() (TypeTag, bool) {
	if a.kind != Scalar && a.kind != HomogeneousArray {
		return 0, false
	}
	return a.typ, true
}

// Len returns the number of entries folded into the value.
func (a AggregatedValue) Len() int {
	return len(a.items)
}

// Scalar returns the value of a Scalar.
func (a AggregatedValue) Scalar() (Value, bool) {
	if a.kind != Scalar {
		return Value{}, false
	}
	return a.items[0].Value, true
}

// Array returns the values of a HomogeneousArray in entry order.
func (a AggregatedValue) Array() ([]Value, bool) {
	if a.kind != HomogeneousArray {
		return nil, false
	}
	out := make([]Value, len(a.items))
	for i, it := range a.items {
		out[i] = it.Value
	}
	return out, true
}

// Items returns every folded entry with its type, in accumulation order.
// It is valid for all kinds.
func (a AggregatedValue) Items() []Item {
	out := make([]Item, len(a.items))
	copy(out, a.items)
	return out
}

// Interface returns the value as plain Go values: nil when absent, the
// element value for a scalar, and a slice for arrays and collections.
func (a AggregatedValue) Interface() any {
	switch a.kind {
	case Scalar:
		return a.items[0].Value.Interface()
	case HomogeneousArray, MixedCollection:
		out := make([]any, len(a.items))
		for i, it := range a.items {
			out[i] = it.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

func (a AggregatedValue) String() string {
	switch a.kind {
	case Absent:
		return "<absent>"
	case Scalar:
		return fmt.Sprintf("%s %s", a.typ, a.items[0].Value)
	case HomogeneousArray:
		vals, _ := a.Array()
		return fmt.Sprintf("%s %v", a.typ, vals)
	default:
		s := "["
		for i, it := range a.items {
			if i > 0 {
				s += " "
			}
			s += fmt.Sprintf("(%s %s)", it.Type, it.Value)
		}
		return s + "]"
	}
}
