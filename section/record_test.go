package section

import (
	"testing"

	"github.com/arloliu/ncpipe/endian"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
	"github.com/stretchr/testify/require"
)

func sampleEncoding() EncodingRecord {
	return EncodingRecord{
		QuantizeMode: format.QuantizeBitGroom,
		NSD:          3,
		Filters: []FilterEntry{
			{ID: format.FilterShuffle},
			{ID: format.FilterDeflate, Params: []uint32{6}},
			{ID: format.FilterFletcher32},
		},
	}
}

func TestEncodingRecord_RoundTrip(t *testing.T) {
	engines := map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			rec := sampleEncoding()

			buf, err := rec.AppendTo(nil, engine)
			require.NoError(t, err)
			require.Len(t, buf, rec.Size())

			parsed, n, err := ParseEncodingRecord(buf, engine)
			require.NoError(t, err)
			require.Equal(t, len(buf), n)
			require.Equal(t, rec, parsed)
		})
	}

	t.Run("Empty pipeline", func(t *testing.T) {
		engine := endian.GetLittleEndianEngine()
		buf, err := EncodingRecord{}.AppendTo(nil, engine)
		require.NoError(t, err)
		require.Equal(t, []byte{0, 0, 0, 0}, buf)

		parsed, n, err := ParseEncodingRecord(buf, engine)
		require.NoError(t, err)
		require.Equal(t, 4, n)
		require.Equal(t, EncodingRecord{}, parsed)
	})
}

func TestEncodingRecord_Layout(t *testing.T) {
	rec := EncodingRecord{
		QuantizeMode: format.QuantizeBitGroom,
		NSD:          9,
		Filters:      []FilterEntry{{ID: format.FilterDeflate, Params: []uint32{5}}},
	}

	buf, err := rec.AppendTo(nil, endian.GetLittleEndianEngine())
	require.NoError(t, err)
	require.Equal(t, []byte{
		1, 9, // mode, nsd
		1, 0, // filter count
		1, 0, 0, 0, // id
		1, 0, // param count
		5, 0, 0, 0, // level
	}, buf)
}

func TestEncodingRecord_Clone(t *testing.T) {
	rec := sampleEncoding()
	clone := rec.Clone()
	clone.Filters[1].Params[0] = 9

	require.Equal(t, uint32(6), rec.Filters[1].Params[0])
	require.Nil(t, EncodingRecord{}.Clone().Filters)
}

func TestParseEncodingRecord_Truncated(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	buf, err := sampleEncoding().AppendTo(nil, engine)
	require.NoError(t, err)

	for i := 0; i < len(buf); i++ {
		_, _, err := ParseEncodingRecord(buf[:i], engine)
		require.ErrorIs(t, err, errs.ErrInvalidRecord, "length %d", i)
	}
}

func TestVarRecord_RoundTrip(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	rec := VarRecord{
		Name:        "temperature",
		DataType:    format.Float,
		Length:      10,
		ChunkLength: 4,
		Encoding:    sampleEncoding(),
		ChunkSizes:  []uint32{20, 21, 12},
	}
	require.Equal(t, 3, rec.ChunkCount())
	require.Equal(t, uint64(53), rec.DataSize())

	buf, err := rec.AppendTo([]byte{0xAA}, engine)
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), buf[0])

	parsed, n, err := ParseVarRecord(buf[1:], engine)
	require.NoError(t, err)
	require.Equal(t, len(buf)-1, n)
	require.Equal(t, rec, parsed)
}

func TestVarRecord_Invalid(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	t.Run("Empty name", func(t *testing.T) {
		_, err := VarRecord{DataType: format.Int, Length: 1, ChunkLength: 1}.AppendTo(nil, engine)
		require.ErrorIs(t, err, errs.ErrInvalidRecord)
	})

	t.Run("Unknown data type", func(t *testing.T) {
		buf, err := VarRecord{Name: "x", DataType: format.DataType(99), Length: 1, ChunkLength: 1}.AppendTo(nil, engine)
		require.NoError(t, err)

		_, _, err = ParseVarRecord(buf, engine)
		require.ErrorIs(t, err, errs.ErrInvalidRecord)
	})

	t.Run("Chunk table does not match length", func(t *testing.T) {
		buf, err := VarRecord{
			Name: "x", DataType: format.Int, Length: 8, ChunkLength: 4,
			ChunkSizes: []uint32{16},
		}.AppendTo(nil, engine)
		require.NoError(t, err)

		_, _, err = ParseVarRecord(buf, engine)
		require.ErrorIs(t, err, errs.ErrInvalidRecord)
	})

	t.Run("Truncated", func(t *testing.T) {
		buf, err := VarRecord{
			Name: "x", DataType: format.Double, Length: 2, ChunkLength: 2,
			ChunkSizes: []uint32{16},
		}.AppendTo(nil, engine)
		require.NoError(t, err)

		_, _, err = ParseVarRecord(buf[:len(buf)-1], engine)
		require.ErrorIs(t, err, errs.ErrInvalidRecord)
	})
}

func TestMetadata(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	records := []VarRecord{
		{Name: "a", DataType: format.Float, Length: 4, ChunkLength: 4, Encoding: sampleEncoding()},
		{Name: "b", DataType: format.Int64, Length: 3, ChunkLength: 2, ChunkSizes: []uint32{16, 8}},
	}

	buf, err := AppendMetadata(nil, records, engine)
	require.NoError(t, err)

	parsed, err := ParseMetadata(buf, len(records), engine)
	require.NoError(t, err)
	require.Equal(t, records, parsed)

	_, err = ParseMetadata(append(buf, 0), len(records), engine)
	require.ErrorIs(t, err, errs.ErrInvalidRecord)

	header := NewHeader(format.Enhanced)
	header.MetadataLength = uint32(len(buf))
	header.MetadataChecksum = MetadataChecksum(buf)
	require.NoError(t, header.VerifyMetadata(buf))

	buf[0] ^= 0xFF
	require.ErrorIs(t, header.VerifyMetadata(buf), errs.ErrChecksumMismatch)
	require.ErrorIs(t, header.VerifyMetadata(buf[1:]), errs.ErrInvalidHeader)
}
