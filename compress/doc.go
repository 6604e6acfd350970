// Package compress provides the compression codecs behind the compression
// filters of a variable's pipeline.
//
// Each codec turns one encoded chunk into a smaller byte slice and back:
//
//	codec, _ := compress.CreateCodec(format.CompressionZstd, 9)
//	packed, _ := codec.Compress(chunk)
//	chunk, _ = codec.Decompress(packed)
//
// Supported algorithms:
//   - None: pass-through
//   - Zstd: best ratio, levels 1-22 (klauspost/compress, or libzstd with the gozstd build tag)
//   - S2: fast, moderate ratio (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4)
//   - Deflate: zlib framing, levels 0-9 (klauspost/compress/zlib)
//
// Quantized floating point data compresses markedly better with every codec,
// because zeroed trailing mantissa bits turn into long repeated runs.
package compress
