package dtype

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnsupported is returned for data types or encodings this package cannot handle.
var ErrUnsupported = errors.New("unsupported datatype")

// DataType is a CDF data type code as stored in entry and variable records.
type DataType int32

// CDF data type codes.
const (
	Int1       DataType = 1
	Int2       DataType = 2
	Int4       DataType = 4
	Int8       DataType = 8
	UInt1      DataType = 11
	UInt2      DataType = 12
	UInt4      DataType = 14
	Real4      DataType = 21
	Real8      DataType = 22
	Epoch      DataType = 31
	Epoch16    DataType = 32
	TimeTT2000 DataType = 33
	Byte       DataType = 41
	Float      DataType = 44
	Double     DataType = 45
	Char       DataType = 51
	UChar      DataType = 52
)

var typeNames = map[DataType]string{
	Int1:       "CDF_INT1",
	Int2:       "CDF_INT2",
	Int4:       "CDF_INT4",
	Int8:       "CDF_INT8",
	UInt1:      "CDF_UINT1",
	UInt2:      "CDF_UINT2",
	UInt4:      "CDF_UINT4",
	Real4:      "CDF_REAL4",
	Real8:      "CDF_REAL8",
	Epoch:      "CDF_EPOCH",
	Epoch16:    "CDF_EPOCH16",
	TimeTT2000: "CDF_TIME_TT2000",
	Byte:       "CDF_BYTE",
	Float:      "CDF_FLOAT",
	Double:     "CDF_DOUBLE",
	Char:       "CDF_CHAR",
	UChar:      "CDF_UCHAR",
}

// String returns the CDF library name of the data type.
func (t DataType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CDF_TYPE(%d)", int32(t))
}

// Valid reports whether t is a known CDF data type.
func (t DataType) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// Size returns the size in bytes of one element of the data type.
func (t DataType) Size() (int, error) {
	switch t {
	case Int1, UInt1, Byte, Char, UChar:
		return 1, nil
	case Int2, UInt2:
		return 2, nil
	case Int4, UInt4, Real4, Float:
		return 4, nil
	case Int8, Real8, Double, Epoch, TimeTT2000:
		return 8, nil
	case Epoch16:
		return 16, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
}

// IsChar reports whether t is one of the character types.
func (t DataType) IsChar() bool {
	return t == Char || t == UChar
}

// Encoding is the data encoding recorded in a file's descriptor record.
type Encoding int32

// CDF data encodings.
const (
	EncodingNetwork    Encoding = 1
	EncodingSun        Encoding = 2
	EncodingVAX        Encoding = 3
	EncodingDECStation Encoding = 4
	EncodingSGi        Encoding = 5
	EncodingIBMPC      Encoding = 6
	EncodingIBMRS      Encoding = 7
	EncodingPPC        Encoding = 9
	EncodingHP         Encoding = 11
	EncodingNeXT       Encoding = 12
	EncodingAlphaOSF1  Encoding = 13
	EncodingAlphaVMSd  Encoding = 14
	EncodingAlphaVMSg  Encoding = 15
	EncodingAlphaVMSi  Encoding = 16
	EncodingARMLittle  Encoding = 17
	EncodingARMBig     Encoding = 18
	EncodingIA64VMSi   Encoding = 19
	EncodingIA64VMSd   Encoding = 20
	EncodingIA64VMSg   Encoding = 21
)

var encodingNames = map[Encoding]string{
	EncodingNetwork:    "NETWORK",
	EncodingSun:        "SUN",
	EncodingVAX:        "VAX",
	EncodingDECStation: "DECSTATION",
	EncodingSGi:        "SGi",
	EncodingIBMPC:      "IBMPC",
	EncodingIBMRS:      "IBMRS",
	EncodingPPC:        "PPC",
	EncodingHP:         "HP",
	EncodingNeXT:       "NeXT",
	EncodingAlphaOSF1:  "ALPHAOSF1",
	EncodingAlphaVMSd:  "ALPHAVMSd",
	EncodingAlphaVMSg:  "ALPHAVMSg",
	EncodingAlphaVMSi:  "ALPHAVMSi",
	EncodingARMLittle:  "ARM_LITTLE",
	EncodingARMBig:     "ARM_BIG",
	EncodingIA64VMSi:   "IA64VMSi",
	EncodingIA64VMSd:   "IA64VMSd",
	EncodingIA64VMSg:   "IA64VMSg",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("ENCODING(%d)", int32(e))
}

// ByteOrder returns the byte order of values stored with this encoding.
func (e Encoding) ByteOrder() (binary.ByteOrder, error) {
	switch e {
	case EncodingNetwork, EncodingSun, EncodingSGi, EncodingIBMRS,
		EncodingPPC, EncodingHP, EncodingNeXT, EncodingARMBig:
		return binary.BigEndian, nil
	case EncodingVAX, EncodingDECStation, EncodingIBMPC, EncodingAlphaOSF1,
		EncodingAlphaVMSd, EncodingAlphaVMSg, EncodingAlphaVMSi,
		EncodingARMLittle, EncodingIA64VMSi, EncodingIA64VMSd, EncodingIA64VMSg:
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("%w: encoding %d", ErrUnsupported, int32(e))
	}
}

// IEEEFloats reports whether floating-point values use IEEE 754.
// The VAX D and G float encodings do not.
func (e Encoding) IEEEFloats() bool {
	switch e {
	case EncodingVAX, EncodingAlphaVMSd, EncodingAlphaVMSg, EncodingIA64VMSd, EncodingIA64VMSg:
		return false
	default:
		return true
	}
}
