package compress

import (
	"fmt"

	"github.com/arloliu/ncpipe/format"
)

// Compressor compresses one encoded chunk of variable data.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// The input must have been produced by the same algorithm. Corrupted or
// foreign input is reported as an error, never as silently wrong output.
//
// Thread Safety: Decompressor implementations must be safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// DefaultLevel asks a leveled codec to use its own default level.
const DefaultLevel = 0

// CreateCodec is a factory function that creates a Codec for the given
// compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or Deflate)
//   - level: Algorithm specific level, DefaultLevel selects the default.
//     Ignored by algorithms without levels.
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type or level
func CreateCodec(compressionType format.CompressionType, level int) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressorLevel(level)
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionDeflate:
		return NewDeflateCompressorLevel(level)
	default:
		return nil, fmt.Errorf("invalid compression: %s", compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:    NewNoOpCompressor(),
	format.CompressionZstd:    NewZstdCompressor(),
	format.CompressionS2:      NewS2Compressor(),
	format.CompressionLZ4:     NewLZ4Compressor(),
	format.CompressionDeflate: NewDeflateCompressor(),
}

// GetCodec retrieves the built-in Codec with default settings for the
// specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
