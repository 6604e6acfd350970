package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// s2MaxDecodedSize bounds the size a chunk header may claim before any
// output buffer is allocated.
const s2MaxDecodedSize = 128 * 1024 * 1024

// S2Compressor backs the s2 filter. Chunks are encoded once and read many
// times, so it uses the better-ratio encoder; decoding speed is unaffected.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as a single S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes an S2 block, rejecting blocks whose declared size
// exceeds s2MaxDecodedSize.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n > s2MaxDecodedSize {
		return nil, fmt.Errorf("s2 block declares %d bytes, limit is %d", n, s2MaxDecodedSize)
	}

	return s2.Decode(make([]byte, n), data)
}
