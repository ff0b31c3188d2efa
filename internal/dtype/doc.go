// Package dtype provides CDF datatype handling and Go value conversion.
//
// This package bridges the gap between CDF's data type codes and Go's
// type system, providing functionality to:
//
//   - Describe the CDF data types and their element sizes
//   - Map a file's data encoding to a byte order
//   - Decode raw entry bytes into typed Go slices
//   - Encode typed Go slices into raw entry bytes
//
// # Type Mapping Strategy
//
// CDF data types are mapped to the fields of [Elements] as follows:
//
//	CDF Type                         | Elements field
//	---------------------------------|------------------
//	INT1, INT2, INT4, INT8, TT2000   | Ints   ([]int64)
//	BYTE                             | Ints   ([]int64)
//	UINT1, UINT2, UINT4              | Uints  ([]uint64)
//	REAL4, FLOAT, REAL8, DOUBLE      | Floats ([]float64)
//	EPOCH                            | Floats ([]float64, milliseconds)
//	EPOCH16                          | Epoch16 ([][2]float64)
//	CHAR, UCHAR                      | Chars  ([]byte)
//
// # Encodings
//
// Internal record fields are always big-endian. Entry values follow the
// encoding recorded in the file's descriptor record; see [Encoding.ByteOrder].
// VAX floating-point encodings are recognized but cannot be decoded.
//
// # Key Functions
//
//   - [Decode]: Converts entry bytes to [Elements]
//   - [Encode]: Converts [Elements] to entry bytes
//   - [DataType.Size]: Returns the size of a single element in bytes
package dtype
