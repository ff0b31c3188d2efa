package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Elements holds the decoded elements of one entry. Exactly one field is
// populated, selected by the data type (see the package documentation).
type Elements struct {
	Ints    []int64
	Uints   []uint64
	Floats  []float64
	Epoch16 [][2]float64
	Chars   []byte
}

// Len returns the number of decoded elements.
func (e Elements) Len() int {
	switch {
	case e.Ints != nil:
		return len(e.Ints)
	case e.Uints != nil:
		return len(e.Uints)
	case e.Floats != nil:
		return len(e.Floats)
	case e.Epoch16 != nil:
		return len(e.Epoch16)
	default:
		return len(e.Chars)
	}
}

// Decode converts numElems elements of type dt stored with encoding enc.
func Decode(dt DataType, enc Encoding, numElems int, data []byte) (Elements, error) {
	if numElems < 0 {
		return Elements{}, fmt.Errorf("negative element count: %d", numElems)
	}
	size, err := dt.Size()
	if err != nil {
		return Elements{}, err
	}
	if need := size * numElems; len(data) < need {
		return Elements{}, fmt.Errorf("%s data truncated: need %d bytes, have %d", dt, need, len(data))
	}

	if dt.IsChar() {
		chars := make([]byte, numElems)
		copy(chars, data)
		return Elements{Chars: chars}, nil
	}

	order, err := enc.ByteOrder()
	if err != nil {
		return Elements{}, err
	}

	switch dt {
	case Int1, Byte:
		out := make([]int64, numElems)
		for i := range out {
			out[i] = int64(int8(data[i]))
		}
		return Elements{Ints: out}, nil
	case Int2:
		out := make([]int64, numElems)
		for i := range out {
			out[i] = int64(int16(order.Uint16(data[i*2:])))
		}
		return Elements{Ints: out}, nil
	case Int4:
		out := make([]int64, numElems)
		for i := range out {
			out[i] = int64(int32(order.Uint32(data[i*4:])))
		}
		return Elements{Ints: out}, nil
	case Int8, TimeTT2000:
		out := make([]int64, numElems)
		for i := range out {
			out[i] = int64(order.Uint64(data[i*8:]))
		}
		return Elements{Ints: out}, nil
	case UInt1:
		out := make([]uint64, numElems)
		for i := range out {
			out[i] = uint64(data[i])
		}
		return Elements{Uints: out}, nil
	case UInt2:
		out := make([]uint64, numElems)
		for i := range out {
			out[i] = uint64(order.Uint16(data[i*2:]))
		}
		return Elements{Uints: out}, nil
	case UInt4:
		out := make([]uint64, numElems)
		for i := range out {
			out[i] = uint64(order.Uint32(data[i*4:]))
		}
		return Elements{Uints: out}, nil
	case Real4, Float:
		if !enc.IEEEFloats() {
			return Elements{}, fmt.Errorf("%w: %s floats in %s encoding", ErrUnsupported, dt, enc)
		}
		out := make([]float64, numElems)
		for i := range out {
			out[i] = float64(math.Float32frombits(order.Uint32(data[i*4:])))
		}
		return Elements{Floats: out}, nil
	case Real8, Double, Epoch:
		if !enc.IEEEFloats() {
			return Elements{}, fmt.Errorf("%w: %s floats in %s encoding", ErrUnsupported, dt, enc)
		}
		return Elements{Floats: decodeFloat64s(order, data, numElems)}, nil
	case Epoch16:
		if !enc.IEEEFloats() {
			return Elements{}, fmt.Errorf("%w: %s floats in %s encoding", ErrUnsupported, dt, enc)
		}
		flat := decodeFloat64s(order, data, numElems*2)
		out := make([][2]float64, numElems)
		for i := range out {
			out[i] = [2]float64{flat[2*i], flat[2*i+1]}
		}
		return Elements{Epoch16: out}, nil
	default:
		return Elements{}, fmt.Errorf("%w: %s", ErrUnsupported, dt)
	}
}

func decodeFloat64s(order binary.ByteOrder, data []byte, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(order.Uint64(data[i*8:]))
	}
	return out
}
