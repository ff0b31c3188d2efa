package cdf

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/robert-malhotra/go-cdf/internal/dtype"
)

// StringDelimiter separates the strings of a multi-string character entry.
const StringDelimiter = `\N `

// Value is one attribute entry: a data type and its elements. Exactly one
// backing slice is populated, selected by the type. Character values are
// held as raw bytes until decoded to text.
type Value struct {
	typ TypeTag

	ints    []int64
	uints   []uint64
	floats  []float64
	epoch16 [][2]float64
	chars   []byte

	text    string
	decoded bool
}

// NewInts returns a value of a signed integer type (Int1, Int2, Int4,
// Int8, Byte or TimeTT2000).
func NewInts(t TypeTag, v ...int64) (Value, error) {
	if t.class() != classInt {
		return Value{}, fmt.Errorf("%w: %s is not a signed integer type", ErrInvalidArgument, t)
	}
	return Value{typ: t, ints: nonNil(v)}, nil
}

// NewUints returns a value of an unsigned integer type.
func NewUints(t TypeTag, v ...uint64) (Value, error) {
	if t.class() != classUint {
		return Value{}, fmt.Errorf("%w: %s is not an unsigned integer type", ErrInvalidArgument, t)
	}
	return Value{typ: t, uints: nonNil(v)}, nil
}

// NewFloats returns a value of a floating point type (Real4, Real8,
// Float, Double or Epoch).
func NewFloats(t TypeTag, v ...float64) (Value, error) {
	if t.class() != classFloat {
		return Value{}, fmt.Errorf("%w: %s is not a floating point type", ErrInvalidArgument, t)
	}
	return Value{typ: t, floats: nonNil(v)}, nil
}

// NewChars returns an undecoded value of a character type.
func NewChars(t TypeTag, b []byte) (Value, error) {
	if t.class() != classChar {
		return Value{}, fmt.Errorf("%w: %s is not a character type", ErrInvalidArgument, t)
	}
	return Value{typ: t, chars: nonNil(bytes.Clone(b))}, nil
}

// Doubles returns a CDF_DOUBLE value.
func Doubles(v ...float64) Value {
	return Value{typ: Double, floats: nonNil(v)}
}

// Text returns an undecoded CDF_CHAR value holding s.
func Text(s string) Value {
	return Value{typ: Char, chars: []byte(s)}
}

// Epoch16Value returns a CDF_EPOCH16 value from (seconds, picoseconds) pairs.
func Epoch16Value(v ...[2]float64) Value {
	return Value{typ: Epoch16, epoch16: nonNil(v)}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// fromElements wraps decoded file elements.
func fromElements(t TypeTag, e dtype.Elements) (Value, error) {
	switch t.class() {
	case classInt:
		return Value{typ: t, ints: nonNil(e.Ints)}, nil
	case classUint:
		return Value{typ: t, uints: nonNil(e.Uints)}, nil
	case classFloat:
		return Value{typ: t, floats: nonNil(e.Floats)}, nil
	case classEpoch16:
		return Value{typ: t, epoch16: nonNil(e.Epoch16)}, nil
	case classChar:
		return Value{typ: t, chars: nonNil(e.Chars)}, nil
	default:
		return Value{}, fmt.Errorf("%w: data type %s", ErrUnsupported, t)
	}
}

// Type returns the data type of the value.
func (v Value) Type() TypeTag {
	return v.typ
}

// Len returns the number of elements. Decoded text counts as one element.
func (v Value) Len() int {
	switch v.typ.class() {
	case classInt:
		return len(v.ints)
	case classUint:
		return len(v.uints)
	case classFloat:
		return len(v.floats)
	case classEpoch16:
		return len(v.epoch16)
	case classChar:
		if v.decoded {
			return 1
		}
		return len(v.chars)
	default:
		return 0
	}
}

// Ints returns a copy of the elements of a signed integer value.
func (v Value) Ints() []int64 { return slices.Clone(v.ints) }

// Uints returns the elements of an unsigned integer value.
func (v Value) Uints() []uint64 { return slices.Clone(v.uints) }

// Floats returns the elements of a floating point or CDF_EPOCH value.
func (v Value) Floats() []float64 { return slices.Clone(v.floats) }

// Epoch16 returns the (seconds, picoseconds) pairs of a CDF_EPOCH16 value.
func (v Value) Epoch16() [][2]float64 { return slices.Clone(v.epoch16) }

// Bytes returns the raw characters of a character value as stored.
func (v Value) Bytes() []byte { return slices.Clone(v.chars) }

// IsText reports whether the value is a decoded character value.
func (v Value) IsText() bool { return v.decoded }

// Text returns the decoded text of a character value.
func (v Value) Text() (string, bool) {
	if !v.decoded {
		return "", false
	}
	return v.text, true
}

// Strings splits decoded text into the strings of a multi-string entry.
// Single-string values yield one element.
func (v Value) Strings() []string {
	if !v.decoded {
		return nil
	}
	return strings.Split(v.text, StringDelimiter)
}

// decodeText converts a character value to text: trailing NUL padding is
// dropped. Values of other types are returned unchanged.
func (v Value) decodeText() Value {
	if !v.typ.IsChar() || v.decoded {
		return v
	}
	v.text = string(bytes.TrimRight(v.chars, "\x00"))
	v.decoded = true
	return v
}

// Times converts CDF_EPOCH and CDF_EPOCH16 values to UTC times.
func (v Value) Times() ([]time.Time, error) {
	switch v.typ {
	case Epoch:
		out := make([]time.Time, len(v.floats))
		for i, ms := range v.floats {
			out[i] = EpochTime(ms)
		}
		return out, nil
	case Epoch16:
		out := make([]time.Time, len(v.epoch16))
		for i, p := range v.epoch16 {
			out[i] = Epoch16Time(p[0], p[1])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: time conversion of %s", ErrUnsupported, v.typ)
	}
}

// Interface returns the elements as plain Go values: a single element is
// returned bare, several as a slice. Decoded text is returned as a string.
func (v Value) Interface() any {
	switch v.typ.class() {
	case classInt:
		return single(v.ints)
	case classUint:
		return single(v.uints)
	case classFloat:
		return single(v.floats)
	case classEpoch16:
		return single(v.epoch16)
	case classChar:
		if v.decoded {
			return v.text
		}
		return v.chars
	default:
		return nil
	}
}

func single[T any](s []T) any {
	if len(s) == 1 {
		return s[0]
	}
	return s
}

func (v Value) String() string {
	if v.decoded {
		return fmt.Sprintf("%q", v.text)
	}
	return fmt.Sprint(v.Interface())
}
