package compress

import "fmt"

// Zstandard levels accepted by the zstd filter parameter.
const (
	ZstdMinLevel     = 1
	ZstdMaxLevel     = 22
	ZstdDefaultLevel = 3
)

// ZstdCompressor provides Zstandard compression for chunk payloads.
//
// Zstd gives the best ratio of the built-in codecs at moderate speed, which
// suits quantized floating point data whose trailing bits were zeroed.
//
// The pure Go implementation from klauspost/compress is used by default. Build
// with the gozstd tag (and cgo) to switch to the libzstd binding.
type ZstdCompressor struct {
	level int
}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with the default level.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{level: ZstdDefaultLevel}
}

// NewZstdCompressorLevel creates a Zstd compressor using a zstd level in
// [ZstdMinLevel, ZstdMaxLevel]. DefaultLevel selects ZstdDefaultLevel.
//
// Returns:
//   - ZstdCompressor: Configured compressor
//   - error: Level out of range
func NewZstdCompressorLevel(level int) (ZstdCompressor, error) {
	if level == DefaultLevel {
		return NewZstdCompressor(), nil
	}
	if level < ZstdMinLevel || level > ZstdMaxLevel {
		return ZstdCompressor{}, fmt.Errorf("zstd level %d out of range [%d, %d]", level, ZstdMinLevel, ZstdMaxLevel)
	}

	return ZstdCompressor{level: level}, nil
}

// Level returns the configured zstd level.
func (c ZstdCompressor) Level() int {
	return c.level
}
