// Package quantize implements the lossy quantization applied to floating
// point data before the filter pipeline runs.
//
// BitGroom keeps enough mantissa bits to represent nsd significant decimal
// digits and alternately shaves (zeroes) and sets (ones) the remaining bits of
// consecutive values. The alternation keeps the mean of the quantized data
// unbiased, while the constant trailing bits let compression filters shrink
// the data far more than they could shrink full-precision values.
package quantize

import (
	"fmt"
	"math"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

// bitsPerDigit is log2(10), the number of bits carrying one decimal digit.
const bitsPerDigit = math.Ln10 / math.Ln2

// RequiredBits returns the number of explicit mantissa bits retained for nsd
// significant digits, including one guard bit.
func RequiredBits(nsd int) int {
	return int(math.Ceil(float64(nsd)*bitsPerDigit)) + 1
}

// masks32 returns the shave and set masks for float32 values. ok is false
// when nsd already needs every mantissa bit.
func masks32(nsd int) (zero uint32, one uint32, ok bool) {
	discard := format.MantissaBits(format.Float) - RequiredBits(nsd)
	if discard <= 0 {
		return 0, 0, false
	}
	zero = math.MaxUint32 << uint(discard)

	return zero, ^zero, true
}

func masks64(nsd int) (zero uint64, one uint64, ok bool) {
	discard := format.MantissaBits(format.Double) - RequiredBits(nsd)
	if discard <= 0 {
		return 0, 0, false
	}
	zero = math.MaxUint64 << uint(discard)

	return zero, ^zero, true
}

// BitGroom32 quantizes vals in place to nsd significant digits.
//
// Zero, NaN, infinities and fill values are left untouched.
func BitGroom32(vals []float32, nsd int, fill float32) {
	zero, one, ok := masks32(nsd)
	if !ok {
		return
	}

	fillBits := math.Float32bits(fill)
	for i, v := range vals {
		bits := math.Float32bits(v)
		if bits == fillBits || v == 0 || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			continue
		}
		if i%2 == 0 {
			bits &= zero
		} else {
			bits |= one
		}
		vals[i] = math.Float32frombits(bits)
	}
}

// BitGroom64 quantizes vals in place to nsd significant digits.
//
// Zero, NaN, infinities and fill values are left untouched.
func BitGroom64(vals []float64, nsd int, fill float64) {
	zero, one, ok := masks64(nsd)
	if !ok {
		return
	}

	fillBits := math.Float64bits(fill)
	for i, v := range vals {
		bits := math.Float64bits(v)
		if bits == fillBits || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if i%2 == 0 {
			bits &= zero
		} else {
			bits |= one
		}
		vals[i] = math.Float64frombits(bits)
	}
}

// Apply quantizes a []float32 or []float64 in place with the given mode.
//
// QuantizeNone and non-positive nsd leave values unchanged. Other types are
// rejected with errs.ErrTypeMismatch and unrecognized modes with
// errs.ErrInvalidArgument.
func Apply(mode format.QuantizeMode, nsd int, values any) error {
	if mode == format.QuantizeNone || nsd <= 0 {
		return nil
	}
	if mode != format.QuantizeBitGroom {
		return fmt.Errorf("%w: quantize mode %s", errs.ErrInvalidArgument, mode)
	}

	switch v := values.(type) {
	case []float32:
		BitGroom32(v, nsd, format.FillFloat)
	case []float64:
		BitGroom64(v, nsd, format.FillDouble)
	default:
		return fmt.Errorf("%w: cannot quantize %T", errs.ErrTypeMismatch, values)
	}

	return nil
}
