package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataTypeSize(t *testing.T) {
	sizes := map[DataType]int{
		Byte: 1, Char: 1, UByte: 1,
		Short: 2, UShort: 2,
		Int: 4, UInt: 4, Float: 4,
		Double: 8, Int64: 8, UInt64: 8,
	}
	for typ, size := range sizes {
		require.Equal(t, size, typ.Size(), typ.String())
		require.True(t, typ.IsValid())
	}

	require.Equal(t, 0, DataType(0).Size())
	require.False(t, DataType(12).IsValid())
	require.Equal(t, "Unknown", DataType(99).String())
}

func TestDataTypeIsFloating(t *testing.T) {
	require.True(t, Float.IsFloating())
	require.True(t, Double.IsFloating())
	require.False(t, Int.IsFloating())
	require.False(t, Char.IsFloating())
}

func TestMaxNSD(t *testing.T) {
	n, ok := MaxNSD(Float)
	require.True(t, ok)
	require.Equal(t, 7, n)

	n, ok = MaxNSD(Double)
	require.True(t, ok)
	require.Equal(t, 15, n)

	for _, typ := range []DataType{Byte, Char, Short, Int, UByte, UShort, UInt, Int64, UInt64} {
		_, ok := MaxNSD(typ)
		require.False(t, ok, typ.String())
	}
}

func TestMantissaBits(t *testing.T) {
	require.Equal(t, 23, MantissaBits(Float))
	require.Equal(t, 52, MantissaBits(Double))
	require.Equal(t, 0, MantissaBits(Int))
}

func TestQuantizeModeSupportedIn(t *testing.T) {
	require.True(t, QuantizeNone.SupportedIn(CurrentVersion))
	require.True(t, QuantizeBitGroom.SupportedIn(CurrentVersion))
	require.False(t, QuantizeGranularBR.SupportedIn(CurrentVersion))
	require.False(t, QuantizeBitRound.SupportedIn(CurrentVersion))
	require.False(t, QuantizeBitGroom.SupportedIn(0))
	require.False(t, QuantizeMode(9).SupportedIn(CurrentVersion))
}

func TestFillValues(t *testing.T) {
	require.True(t, IsFillFloat(FillFloat))
	require.False(t, IsFillFloat(1.5))
	require.False(t, IsFillFloat(float32(math.NaN())))
	require.True(t, IsFillDouble(FillDouble))
	require.False(t, IsFillDouble(0))
}

func TestParse(t *testing.T) {
	t.Run("DataType", func(t *testing.T) {
		typ, err := ParseDataType("Float")
		require.NoError(t, err)
		require.Equal(t, Float, typ)

		for _, want := range []DataType{Byte, Char, Short, Int, Float, Double, UByte, UShort, UInt, Int64, UInt64} {
			got, err := ParseDataType(want.String())
			require.NoError(t, err)
			require.Equal(t, want, got)
		}

		_, err = ParseDataType("complex")
		require.Error(t, err)
	})

	t.Run("QuantizeMode", func(t *testing.T) {
		m, err := ParseQuantizeMode("BITGROOM")
		require.NoError(t, err)
		require.Equal(t, QuantizeBitGroom, m)

		m, err = ParseQuantizeMode("none")
		require.NoError(t, err)
		require.Equal(t, QuantizeNone, m)

		_, err = ParseQuantizeMode("round")
		require.Error(t, err)
	})

	t.Run("FilterID", func(t *testing.T) {
		for _, want := range []FilterID{FilterDeflate, FilterShuffle, FilterFletcher32, FilterLZ4, FilterZstd, FilterS2, FilterXXHash64} {
			got, err := ParseFilterID(want.String())
			require.NoError(t, err)
			require.Equal(t, want, got)
		}

		_, err := ParseFilterID("bzip2")
		require.Error(t, err)
		require.Equal(t, "Unknown", FilterID(307).String())
	})

	t.Run("Kind", func(t *testing.T) {
		k, err := ParseKind("Classic")
		require.NoError(t, err)
		require.Equal(t, Classic, k)

		k, err = ParseKind("enhanced")
		require.NoError(t, err)
		require.Equal(t, Enhanced, k)

		_, err = ParseKind("netcdf4")
		require.Error(t, err)
	})
}
