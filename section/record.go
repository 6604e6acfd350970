package section

import (
	"fmt"
	"slices"

	"github.com/arloliu/ncpipe/endian"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

// FilterEntry is one stored pipeline stage.
type FilterEntry struct {
	ID     format.FilterID
	Params []uint32
}

// EncodingRecord is the persisted form of a variable's encoding state.
type EncodingRecord struct {
	QuantizeMode format.QuantizeMode
	NSD          uint8
	Filters      []FilterEntry
}

// Clone returns a deep copy of the record.
func (r EncodingRecord) Clone() EncodingRecord {
	out := EncodingRecord{QuantizeMode: r.QuantizeMode, NSD: r.NSD}
	if len(r.Filters) > 0 {
		out.Filters = make([]FilterEntry, len(r.Filters))
		for i, f := range r.Filters {
			out.Filters[i] = FilterEntry{ID: f.ID, Params: slices.Clone(f.Params)}
		}
	}

	return out
}

// Size returns the encoded size of the record in bytes.
func (r EncodingRecord) Size() int {
	n := 1 + 1 + 2
	for _, f := range r.Filters {
		n += 4 + 2 + 4*len(f.Params)
	}

	return n
}

// AppendTo appends the encoded record to buf using the given byte order.
//
// Returns an error when the filter or parameter counts exceed the fields
// that hold them.
func (r EncodingRecord) AppendTo(buf []byte, engine endian.EndianEngine) ([]byte, error) {
	if len(r.Filters) > MaxFilterCount {
		return buf, fmt.Errorf("%w: %d filters", errs.ErrInvalidRecord, len(r.Filters))
	}

	buf = append(buf, byte(r.QuantizeMode), r.NSD)
	buf = engine.AppendUint16(buf, uint16(len(r.Filters)))
	for _, f := range r.Filters {
		if len(f.Params) > MaxParamCount {
			return buf, fmt.Errorf("%w: filter %d has %d params", errs.ErrInvalidRecord, f.ID, len(f.Params))
		}
		buf = engine.AppendUint32(buf, uint32(f.ID))
		buf = engine.AppendUint16(buf, uint16(len(f.Params)))
		for _, p := range f.Params {
			buf = engine.AppendUint32(buf, p)
		}
	}

	return buf, nil
}

// ParseEncodingRecord decodes an EncodingRecord from the start of data.
//
// Returns the record and the number of bytes consumed.
func ParseEncodingRecord(data []byte, engine endian.EndianEngine) (EncodingRecord, int, error) {
	r := reader{data: data, engine: engine}

	rec := EncodingRecord{
		QuantizeMode: format.QuantizeMode(r.uint8()),
		NSD:          r.uint8(),
	}
	count := int(r.uint16())
	if r.err != nil {
		return EncodingRecord{}, 0, r.err
	}

	if count > 0 {
		rec.Filters = make([]FilterEntry, 0, min(count, len(data)/6))
	}
	for k := 0; k < count; k++ {
		id := format.FilterID(r.uint32())
		nparams := int(r.uint16())
		if r.err != nil {
			return EncodingRecord{}, 0, r.err
		}

		var params []uint32
		if nparams > 0 {
			if r.remaining() < 4*nparams {
				return EncodingRecord{}, 0, fmt.Errorf("%w: filter %d params truncated", errs.ErrInvalidRecord, id)
			}
			params = make([]uint32, nparams)
			for i := range params {
				params[i] = r.uint32()
			}
		}
		rec.Filters = append(rec.Filters, FilterEntry{ID: id, Params: params})
	}
	if r.err != nil {
		return EncodingRecord{}, 0, r.err
	}

	return rec, r.off, nil
}

// VarRecord is the persisted description of one variable.
type VarRecord struct {
	Name        string
	DataType    format.DataType
	Length      uint64 // element count
	ChunkLength uint64 // elements per chunk
	Encoding    EncodingRecord
	// ChunkSizes holds the encoded byte size of every stored chunk. It is
	// empty when the variable has no data.
	ChunkSizes []uint32
}

// DataSize returns the total number of encoded bytes stored for the variable.
func (v VarRecord) DataSize() uint64 {
	var total uint64
	for _, s := range v.ChunkSizes {
		total += uint64(s)
	}

	return total
}

// ChunkCount returns the number of chunks the variable is split into.
func (v VarRecord) ChunkCount() int {
	if v.ChunkLength == 0 {
		return 0
	}

	return int((v.Length + v.ChunkLength - 1) / v.ChunkLength)
}

// AppendTo appends the encoded record to buf.
//
// Layout:
//
//	NameLen uint16 | Name | DataType uint8 | Reserved uint8 |
//	Length uint64 | ChunkLength uint64 | EncodingRecord |
//	ChunkCount uint32 | ChunkCount × uint32
func (v VarRecord) AppendTo(buf []byte, engine endian.EndianEngine) ([]byte, error) {
	if len(v.Name) == 0 || len(v.Name) > MaxNameLength {
		return buf, fmt.Errorf("%w: name length %d", errs.ErrInvalidRecord, len(v.Name))
	}

	buf = engine.AppendUint16(buf, uint16(len(v.Name)))
	buf = append(buf, v.Name...)
	buf = append(buf, byte(v.DataType), 0)
	buf = engine.AppendUint64(buf, v.Length)
	buf = engine.AppendUint64(buf, v.ChunkLength)

	var err error
	if buf, err = v.Encoding.AppendTo(buf, engine); err != nil {
		return buf, err
	}

	buf = engine.AppendUint32(buf, uint32(len(v.ChunkSizes)))
	for _, s := range v.ChunkSizes {
		buf = engine.AppendUint32(buf, s)
	}

	return buf, nil
}

// ParseVarRecord decodes a VarRecord from the start of data.
//
// Returns the record and the number of bytes consumed.
func ParseVarRecord(data []byte, engine endian.EndianEngine) (VarRecord, int, error) {
	r := reader{data: data, engine: engine}

	nameLen := int(r.uint16())
	if r.err == nil && (nameLen == 0 || nameLen > MaxNameLength) {
		return VarRecord{}, 0, fmt.Errorf("%w: name length %d", errs.ErrInvalidRecord, nameLen)
	}
	name := r.take(nameLen)
	typ := format.DataType(r.uint8())
	r.uint8() // reserved
	length := r.uint64()
	chunkLength := r.uint64()
	if r.err != nil {
		return VarRecord{}, 0, r.err
	}
	if !typ.IsValid() {
		return VarRecord{}, 0, fmt.Errorf("%w: data type %d", errs.ErrInvalidRecord, typ)
	}

	enc, n, err := ParseEncodingRecord(data[r.off:], engine)
	if err != nil {
		return VarRecord{}, 0, err
	}
	r.off += n

	chunkCount := int(r.uint32())
	if r.err != nil {
		return VarRecord{}, 0, r.err
	}
	if r.remaining() < 4*chunkCount {
		return VarRecord{}, 0, fmt.Errorf("%w: chunk table truncated", errs.ErrInvalidRecord)
	}

	var sizes []uint32
	if chunkCount > 0 {
		sizes = make([]uint32, chunkCount)
		for i := range sizes {
			sizes[i] = r.uint32()
		}
	}

	rec := VarRecord{
		Name:        string(name),
		DataType:    typ,
		Length:      length,
		ChunkLength: chunkLength,
		Encoding:    enc,
		ChunkSizes:  sizes,
	}
	if len(sizes) > 0 && len(sizes) != rec.ChunkCount() {
		return VarRecord{}, 0, fmt.Errorf("%w: %q has %d chunks, want %d",
			errs.ErrInvalidRecord, rec.Name, len(sizes), rec.ChunkCount())
	}

	return rec, r.off, nil
}

// reader is a bounds-checked cursor. The first short read sets err and all
// later reads return zero values.
type reader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
	err    error
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.remaining() < n {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrInvalidRecord, n, r.off, r.remaining())
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n

	return b
}

func (r *reader) uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}

	return b[0]
}

func (r *reader) uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}

	return r.engine.Uint16(b)
}

func (r *reader) uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}

	return r.engine.Uint32(b)
}

func (r *reader) uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}

	return r.engine.Uint64(b)
}
