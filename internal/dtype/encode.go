package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode converts elements of type dt to raw bytes in the byte order of enc.
// It returns the bytes and the element count to record alongside them.
func Encode(dt DataType, enc Encoding, elems Elements) ([]byte, int, error) {
	size, err := dt.Size()
	if err != nil {
		return nil, 0, err
	}
	n := elems.Len()

	if dt.IsChar() {
		if elems.Chars == nil && n > 0 {
			return nil, 0, fmt.Errorf("%s requires character elements", dt)
		}
		out := make([]byte, len(elems.Chars))
		copy(out, elems.Chars)
		return out, len(out), nil
	}

	order, err := enc.ByteOrder()
	if err != nil {
		return nil, 0, err
	}
	out := make([]byte, size*n)

	switch dt {
	case Int1, Byte:
		if err := need(dt, elems.Ints, n); err != nil {
			return nil, 0, err
		}
		for i, v := range elems.Ints {
			out[i] = byte(int8(v))
		}
	case Int2:
		if err := need(dt, elems.Ints, n); err != nil {
			return nil, 0, err
		}
		for i, v := range elems.Ints {
			order.PutUint16(out[i*2:], uint16(int16(v)))
		}
	case Int4:
		if err := need(dt, elems.Ints, n); err != nil {
			return nil, 0, err
		}
		for i, v := range elems.Ints {
			order.PutUint32(out[i*4:], uint32(int32(v)))
		}
	case Int8, TimeTT2000:
		if err := need(dt, elems.Ints, n); err != nil {
			return nil, 0, err
		}
		for i, v := range elems.Ints {
			order.PutUint64(out[i*8:], uint64(v))
		}
	case UInt1:
		if err := need(dt, elems.Uints, n); err != nil {
			return nil, 0, err
		}
		for i, v := range elems.Uints {
			out[i] = byte(v)
		}
	case UInt2:
		if err := need(dt, elems.Uints, n); err != nil {
			return nil, 0, err
		}
		for i, v := range elems.Uints {
			order.PutUint16(out[i*2:], uint16(v))
		}
	case UInt4:
		if err := need(dt, elems.Uints, n); err != nil {
			return nil, 0, err
		}
		for i, v := range elems.Uints {
			order.PutUint32(out[i*4:], uint32(v))
		}
	case Real4, Float:
		if err := need(dt, elems.Floats, n); err != nil {
			return nil, 0, err
		}
		for i, v := range elems.Floats {
			order.PutUint32(out[i*4:], math.Float32bits(float32(v)))
		}
	case Real8, Double, Epoch:
		if err := need(dt, elems.Floats, n); err != nil {
			return nil, 0, err
		}
		putFloat64s(order, out, elems.Floats)
	case Epoch16:
		if err := need(dt, elems.Epoch16, n); err != nil {
			return nil, 0, err
		}
		for i, v := range elems.Epoch16 {
			order.PutUint64(out[i*16:], math.Float64bits(v[0]))
			order.PutUint64(out[i*16+8:], math.Float64bits(v[1]))
		}
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupported, dt)
	}
	return out, n, nil
}

func need[T any](dt DataType, s []T, n int) error {
	if len(s) != n {
		return fmt.Errorf("%s requires %T elements", dt, s)
	}
	return nil
}

func putFloat64s(order binary.ByteOrder, out []byte, vals []float64) {
	for i, v := range vals {
		order.PutUint64(out[i*8:], math.Float64bits(v))
	}
}
