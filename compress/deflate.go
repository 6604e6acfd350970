package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Deflate levels accepted by the deflate filter parameter.
const (
	DeflateMinLevel     = 0
	DeflateMaxLevel     = 9
	DeflateDefaultLevel = 6
)

// DeflateCompressor provides zlib-wrapped DEFLATE compression, the most widely
// readable of the built-in codecs.
type DeflateCompressor struct {
	level int
}

var _ Codec = (*DeflateCompressor)(nil)

// NewDeflateCompressor creates a DEFLATE compressor with the default level.
func NewDeflateCompressor() DeflateCompressor {
	return DeflateCompressor{level: DeflateDefaultLevel}
}

// NewDeflateCompressorLevel creates a DEFLATE compressor with a level in
// [DeflateMinLevel, DeflateMaxLevel]. Level 0 stores data uncompressed inside
// the zlib framing, so DefaultLevel cannot be used to request the default
// here; use NewDeflateCompressor instead.
func NewDeflateCompressorLevel(level int) (DeflateCompressor, error) {
	if level < DeflateMinLevel || level > DeflateMaxLevel {
		return DeflateCompressor{}, fmt.Errorf("deflate level %d out of range [%d, %d]", level, DeflateMinLevel, DeflateMaxLevel)
	}

	return DeflateCompressor{level: level}, nil
}

// Level returns the configured deflate level.
func (c DeflateCompressor) Level() int {
	return c.level
}

// Compress compresses the input data using zlib DEFLATE.
func (c DeflateCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses zlib DEFLATE data.
func (c DeflateCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}

	return out, nil
}
