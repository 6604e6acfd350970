package format

import "math"

// Maximum number of significant decimal digits that quantization can retain.
// Values beyond these carry no information for the type's mantissa width.
const (
	MaxFloatNSD  = 7
	MaxDoubleNSD = 15
)

// Default fill values, written for elements that were never stored.
const (
	FillByte   int8    = -127
	FillChar   uint8   = 0
	FillShort  int16   = -32767
	FillInt    int32   = -2147483647
	FillFloat  float32 = 9.9692099683868690e+36
	FillDouble float64 = 9.9692099683868690e+36
	FillUByte  uint8   = 255
	FillUShort uint16  = 65535
	FillUInt   uint32  = 4294967295
	FillInt64  int64   = -9223372036854775806
	FillUInt64 uint64  = 18446744073709551614
)

// MaxNSD returns the largest NSD accepted for quantizing values of type t.
//
// The bound depends only on the declared type. The second return value is
// false for types that cannot be quantized.
func MaxNSD(t DataType) (int, bool) {
	switch t { //nolint: exhaustive
	case Float:
		return MaxFloatNSD, true
	case Double:
		return MaxDoubleNSD, true
	default:
		return 0, false
	}
}

// MantissaBits returns the number of explicitly stored mantissa bits of a
// floating point type, or 0 for other types.
func MantissaBits(t DataType) int {
	switch t { //nolint: exhaustive
	case Float:
		return 23
	case Double:
		return 52
	default:
		return 0
	}
}

// IsFillFloat reports whether v is the default float fill value.
func IsFillFloat(v float32) bool {
	return math.Float32bits(v) == math.Float32bits(FillFloat)
}

// IsFillDouble reports whether v is the default double fill value.
func IsFillDouble(v float64) bool {
	return math.Float64bits(v) == math.Float64bits(FillDouble)
}
