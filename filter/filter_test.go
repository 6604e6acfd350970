package filter

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

func float64Chunk(n int) []byte {
	buf := make([]byte, 0, n*8)
	for i := 0; i < n; i++ {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(1000.0+float64(i)*0.25))
	}

	return buf
}

func TestRegistry_Builtins(t *testing.T) {
	tests := []struct {
		id   format.FilterID
		name string
		role Role
	}{
		{format.FilterDeflate, "deflate", RoleCompression},
		{format.FilterShuffle, "shuffle", RolePreconditioner},
		{format.FilterFletcher32, "fletcher32", RoleChecksum},
		{format.FilterLZ4, "lz4", RoleCompression},
		{format.FilterZstd, "zstd", RoleCompression},
		{format.FilterS2, "s2", RoleCompression},
		{format.FilterXXHash64, "xxhash64", RoleChecksum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := Lookup(tt.id)
			require.True(t, ok)
			require.Equal(t, tt.name, info.Name)
			require.Equal(t, tt.role, info.Role)
			require.True(t, Available(tt.id))
		})
	}

	require.GreaterOrEqual(t, len(Registered()), len(tests))
	require.False(t, Available(format.FilterID(999)))
}

func TestRegister(t *testing.T) {
	const id = format.FilterID(40001)

	if !Available(id) {
		err := Register(id, "reverse", RolePreconditioner, func(params []uint32, _ int) (Filter, error) {
			return reverseFilter{}, nil
		})
		require.NoError(t, err)
	}

	err := Register(id, "reverse", RolePreconditioner, func(params []uint32, _ int) (Filter, error) {
		return reverseFilter{}, nil
	})
	require.Error(t, err)

	require.Error(t, Register(40002, "nil", RoleCompression, nil))

	f, err := New(Spec{ID: id}, 4)
	require.NoError(t, err)
	out, err := f.Encode([]byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []byte{3, 2, 1}, out)
}

type reverseFilter struct{}

func (reverseFilter) ID() format.FilterID { return 40001 }

func (reverseFilter) Encode(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	for i, b := range data {
		out[len(data)-1-i] = b
	}

	return out, nil
}

func (r reverseFilter) Decode(data []byte) ([]byte, error) { return r.Encode(data) }

func TestNew_Errors(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		_, err := New(Spec{ID: 999}, 4)
		require.ErrorIs(t, err, errs.ErrFilterUnavailable)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	bad := []Spec{
		{ID: format.FilterDeflate, Params: []uint32{10}},
		{ID: format.FilterDeflate, Params: []uint32{1, 2}},
		{ID: format.FilterZstd, Params: []uint32{23}},
		{ID: format.FilterShuffle, Params: []uint32{0}},
		{ID: format.FilterFletcher32, Params: []uint32{1}},
		{ID: format.FilterLZ4, Params: []uint32{1}},
		{ID: format.FilterS2, Params: []uint32{1}},
		{ID: format.FilterXXHash64, Params: []uint32{1}},
	}
	for _, spec := range bad {
		t.Run(spec.ID.String(), func(t *testing.T) {
			err := Validate(spec)
			require.ErrorIs(t, err, errs.ErrInvalidArgument)
		})
	}
}

func TestFilters_RoundTrip(t *testing.T) {
	input := float64Chunk(1000)

	specs := []Spec{
		{ID: format.FilterDeflate},
		{ID: format.FilterDeflate, Params: []uint32{0}},
		{ID: format.FilterDeflate, Params: []uint32{9}},
		{ID: format.FilterShuffle},
		{ID: format.FilterShuffle, Params: []uint32{4}},
		{ID: format.FilterFletcher32},
		{ID: format.FilterLZ4},
		{ID: format.FilterZstd},
		{ID: format.FilterZstd, Params: []uint32{19}},
		{ID: format.FilterS2},
		{ID: format.FilterXXHash64},
	}

	for _, spec := range specs {
		t.Run(spec.ID.String(), func(t *testing.T) {
			f, err := New(spec, 8)
			require.NoError(t, err)
			require.Equal(t, spec.ID, f.ID())

			encoded, err := f.Encode(input)
			require.NoError(t, err)
			decoded, err := f.Decode(encoded)
			require.NoError(t, err)
			require.Equal(t, input, decoded)
		})
	}
}

func TestShuffle(t *testing.T) {
	original := []byte{
		0x01, 0x02, 0x03, 0x04,
		0x11, 0x12, 0x13, 0x14,
		0x21, 0x22, 0x23, 0x24,
		0x31, 0x32, 0x33, 0x34,
		0xAA, 0xBB,
	}
	shuffled := []byte{
		0x01, 0x11, 0x21, 0x31,
		0x02, 0x12, 0x22, 0x32,
		0x03, 0x13, 0x23, 0x33,
		0x04, 0x14, 0x24, 0x34,
		0xAA, 0xBB,
	}

	f, err := New(Spec{ID: format.FilterShuffle}, 4)
	require.NoError(t, err)

	got, err := f.Encode(original)
	require.NoError(t, err)
	require.Equal(t, shuffled, got)

	back, err := f.Decode(shuffled)
	require.NoError(t, err)
	require.Equal(t, original, back)

	t.Run("single byte elements pass through", func(t *testing.T) {
		f, err := New(Spec{ID: format.FilterShuffle}, 1)
		require.NoError(t, err)
		got, err := f.Encode(original)
		require.NoError(t, err)
		require.Equal(t, original, got)
	})
}

func TestChecksums_DetectCorruption(t *testing.T) {
	for _, id := range []format.FilterID{format.FilterFletcher32, format.FilterXXHash64} {
		t.Run(id.String(), func(t *testing.T) {
			f, err := New(Spec{ID: id}, 4)
			require.NoError(t, err)

			encoded, err := f.Encode([]byte("chunk payload"))
			require.NoError(t, err)

			encoded[2] ^= 0xFF
			_, err = f.Decode(encoded)
			require.ErrorIs(t, err, errs.ErrChecksumMismatch)

			_, err = f.Decode([]byte{1, 2, 3})
			require.Error(t, err)
		})
	}
}

func TestFletcher32(t *testing.T) {
	require.Equal(t, uint32(0), Fletcher32(nil))
	// "abcde": words 0x6261, 0x6463, 0x0065
	require.Equal(t, uint32(0xF04FC729), Fletcher32([]byte("abcde")))
	require.NotEqual(t, Fletcher32([]byte("ab")), Fletcher32([]byte("ba")))
}

func TestChain_OrderAndReverse(t *testing.T) {
	p, err := NewPipeline(
		Spec{ID: format.FilterShuffle},
		Spec{ID: format.FilterZstd, Params: []uint32{5}},
		Spec{ID: format.FilterFletcher32},
	)
	require.NoError(t, err)

	chain, err := p.Build(8)
	require.NoError(t, err)
	require.Equal(t, 3, chain.Len())
	require.False(t, chain.Empty())

	input := float64Chunk(2048)
	encoded, err := chain.Encode(input)
	require.NoError(t, err)
	require.Less(t, len(encoded), len(input))

	// The last stage is the checksum, so its trailer covers the compressed bytes.
	payload := encoded[:len(encoded)-4]
	require.Equal(t, binary.LittleEndian.Uint32(encoded[len(encoded)-4:]), Fletcher32(payload))

	decoded, err := chain.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, input, decoded)

	t.Run("decode fails on corruption", func(t *testing.T) {
		corrupt := bytes.Clone(encoded)
		corrupt[0] ^= 0x01
		_, err := chain.Decode(corrupt)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("empty chain is identity", func(t *testing.T) {
		var empty Pipeline
		chain, err := empty.Build(4)
		require.NoError(t, err)
		require.True(t, chain.Empty())
		out, err := chain.Encode(input)
		require.NoError(t, err)
		require.Equal(t, input, out)
	})
}
