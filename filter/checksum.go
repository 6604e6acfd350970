package filter

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
	"github.com/arloliu/ncpipe/internal/hash"
)

// Fletcher32Filter appends a Fletcher-32 checksum to each chunk and verifies
// it on read. The checksum is stored as 4 little-endian trailing bytes.
type Fletcher32Filter struct{}

func newFletcher32(params []uint32, _ int) (Filter, error) {
	if err := noParams(params); err != nil {
		return nil, err
	}

	return Fletcher32Filter{}, nil
}

func (Fletcher32Filter) ID() format.FilterID {
	return format.FilterFletcher32
}

func (Fletcher32Filter) Encode(data []byte) ([]byte, error) {
	out := make([]byte, len(data), len(data)+4)
	copy(out, data)

	return binary.LittleEndian.AppendUint32(out, Fletcher32(data)), nil
}

func (Fletcher32Filter) Decode(input []byte) ([]byte, error) {
	if len(input) < 4 {
		return nil, fmt.Errorf("fletcher32: input too short for checksum")
	}

	data := input[:len(input)-4]
	stored := binary.LittleEndian.Uint32(input[len(input)-4:])
	if computed := Fletcher32(data); stored != computed {
		return nil, fmt.Errorf("%w: fletcher32 stored=0x%08x computed=0x%08x", errs.ErrChecksumMismatch, stored, computed)
	}

	return data, nil
}

// Fletcher32 computes the Fletcher-32 checksum over 16-bit little-endian
// words, padding an odd trailing byte with zero.
func Fletcher32(data []byte) uint32 {
	var sum1, sum2 uint32

	i := 0
	for ; i+1 < len(data); i += 2 {
		word := uint32(data[i]) | uint32(data[i+1])<<8
		sum1 = (sum1 + word) % 65535
		sum2 = (sum2 + sum1) % 65535
	}
	if i < len(data) {
		sum1 = (sum1 + uint32(data[i])) % 65535
		sum2 = (sum2 + sum1) % 65535
	}

	return (sum2 << 16) | sum1
}

// XXHash64Filter appends an xxHash64 digest to each chunk and verifies it on
// read. The digest is stored as 8 little-endian trailing bytes.
type XXHash64Filter struct{}

func newXXHash64(params []uint32, _ int) (Filter, error) {
	if err := noParams(params); err != nil {
		return nil, err
	}

	return XXHash64Filter{}, nil
}

func (XXHash64Filter) ID() format.FilterID {
	return format.FilterXXHash64
}

func (XXHash64Filter) Encode(data []byte) ([]byte, error) {
	out := make([]byte, len(data), len(data)+8)
	copy(out, data)

	return binary.LittleEndian.AppendUint64(out, hash.Sum64(data)), nil
}

func (XXHash64Filter) Decode(input []byte) ([]byte, error) {
	if len(input) < 8 {
		return nil, fmt.Errorf("xxhash64: input too short for digest")
	}

	data := input[:len(input)-8]
	stored := binary.LittleEndian.Uint64(input[len(input)-8:])
	if computed := hash.Sum64(data); stored != computed {
		return nil, fmt.Errorf("%w: xxhash64 stored=0x%016x computed=0x%016x", errs.ErrChecksumMismatch, stored, computed)
	}

	return data, nil
}
