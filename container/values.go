package container

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/ncpipe/endian"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

// Number is the set of element types a variable can hold.
type Number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// sliceLen returns the length of values if its Go type matches t.
func sliceLen(t format.DataType, values any) (int, error) {
	n := -1
	switch v := values.(type) {
	case []int8:
		if t == format.Byte {
			n = len(v)
		}
	case []uint8:
		if t == format.Char || t == format.UByte {
			n = len(v)
		}
	case []int16:
		if t == format.Short {
			n = len(v)
		}
	case []uint16:
		if t == format.UShort {
			n = len(v)
		}
	case []int32:
		if t == format.Int {
			n = len(v)
		}
	case []uint32:
		if t == format.UInt {
			n = len(v)
		}
	case []int64:
		if t == format.Int64 {
			n = len(v)
		}
	case []uint64:
		if t == format.UInt64 {
			n = len(v)
		}
	case []float32:
		if t == format.Float {
			n = len(v)
		}
	case []float64:
		if t == format.Double {
			n = len(v)
		}
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %T for %s variable", errs.ErrTypeMismatch, values, t)
	}

	return n, nil
}

// cloneValues returns a copy of a typed slice accepted by sliceLen.
func cloneValues(values any) any {
	switch v := values.(type) {
	case []int8:
		return slices.Clone(v)
	case []uint8:
		return slices.Clone(v)
	case []int16:
		return slices.Clone(v)
	case []uint16:
		return slices.Clone(v)
	case []int32:
		return slices.Clone(v)
	case []uint32:
		return slices.Clone(v)
	case []int64:
		return slices.Clone(v)
	case []uint64:
		return slices.Clone(v)
	case []float32:
		return slices.Clone(v)
	case []float64:
		return slices.Clone(v)
	default:
		return values
	}
}

// appendValues appends the elements of a typed slice to buf in engine order.
func appendValues(buf []byte, values any, engine endian.EndianEngine) []byte {
	switch v := values.(type) {
	case []int8:
		for _, x := range v {
			buf = append(buf, byte(x))
		}
	case []uint8:
		buf = append(buf, v...)
	case []int16:
		for _, x := range v {
			buf = engine.AppendUint16(buf, uint16(x))
		}
	case []uint16:
		for _, x := range v {
			buf = engine.AppendUint16(buf, x)
		}
	case []int32:
		for _, x := range v {
			buf = engine.AppendUint32(buf, uint32(x))
		}
	case []uint32:
		for _, x := range v {
			buf = engine.AppendUint32(buf, x)
		}
	case []int64:
		for _, x := range v {
			buf = engine.AppendUint64(buf, uint64(x))
		}
	case []uint64:
		for _, x := range v {
			buf = engine.AppendUint64(buf, x)
		}
	case []float32:
		for _, x := range v {
			buf = engine.AppendUint32(buf, math.Float32bits(x))
		}
	case []float64:
		for _, x := range v {
			buf = engine.AppendUint64(buf, math.Float64bits(x))
		}
	}

	return buf
}

// decodeValues converts n elements of type t from data into a typed slice.
func decodeValues(t format.DataType, data []byte, n int, engine endian.EndianEngine) (any, error) {
	size := t.Size()
	if len(data) != n*size {
		return nil, fmt.Errorf("%w: %d bytes for %d %s values", errs.ErrInvalidRecord, len(data), n, t)
	}

	switch t {
	case format.Byte:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(data[i])
		}
		return out, nil
	case format.Char, format.UByte:
		return slices.Clone(data), nil
	case format.Short:
		out := make([]int16, n)
		for i := range out {
			out[i] = int16(engine.Uint16(data[i*2:]))
		}
		return out, nil
	case format.UShort:
		out := make([]uint16, n)
		for i := range out {
			out[i] = engine.Uint16(data[i*2:])
		}
		return out, nil
	case format.Int:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(engine.Uint32(data[i*4:]))
		}
		return out, nil
	case format.UInt:
		out := make([]uint32, n)
		for i := range out {
			out[i] = engine.Uint32(data[i*4:])
		}
		return out, nil
	case format.Int64:
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(engine.Uint64(data[i*8:]))
		}
		return out, nil
	case format.UInt64:
		out := make([]uint64, n)
		for i := range out {
			out[i] = engine.Uint64(data[i*8:])
		}
		return out, nil
	case format.Float:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(engine.Uint32(data[i*4:]))
		}
		return out, nil
	case format.Double:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(engine.Uint64(data[i*8:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: data type %d", errs.ErrInvalidRecord, t)
	}
}

// fillValues returns n copies of the default fill value of type t.
func fillValues(t format.DataType, n int) any {
	switch t {
	case format.Byte:
		return repeat(format.FillByte, n)
	case format.Char:
		return repeat(format.FillChar, n)
	case format.UByte:
		return repeat(format.FillUByte, n)
	case format.Short:
		return repeat(format.FillShort, n)
	case format.UShort:
		return repeat(format.FillUShort, n)
	case format.Int:
		return repeat(format.FillInt, n)
	case format.UInt:
		return repeat(format.FillUInt, n)
	case format.Int64:
		return repeat(format.FillInt64, n)
	case format.UInt64:
		return repeat(format.FillUInt64, n)
	case format.Float:
		return repeat(format.FillFloat, n)
	case format.Double:
		return repeat(format.FillDouble, n)
	default:
		return nil
	}
}

func repeat[T Number](v T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}

	return out
}
