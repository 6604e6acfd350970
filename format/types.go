// Package format defines the small enumerated types shared by every layer of
// an ncpipe container: declared data types, quantization modes, filter ids,
// compression algorithms and the container format kind.
package format

type (
	// DataType is the declared numeric type of a variable.
	DataType uint8
	// QuantizeMode selects the quantization algorithm applied before filters.
	QuantizeMode uint8
	// FilterID identifies a filter in a variable's pipeline.
	FilterID uint32
	// CompressionType identifies a general purpose compression algorithm.
	CompressionType uint8
	// Kind is the container format capability tier.
	Kind uint8
	// Version is the format capability version written to the header.
	Version uint8
)

const (
	Byte   DataType = 1  // Byte is a signed 8-bit integer.
	Char   DataType = 2  // Char is an 8-bit character, stored as bytes.
	Short  DataType = 3  // Short is a signed 16-bit integer.
	Int    DataType = 4  // Int is a signed 32-bit integer.
	Float  DataType = 5  // Float is an IEEE 754 single precision value.
	Double DataType = 6  // Double is an IEEE 754 double precision value.
	UByte  DataType = 7  // UByte is an unsigned 8-bit integer.
	UShort DataType = 8  // UShort is an unsigned 16-bit integer.
	UInt   DataType = 9  // UInt is an unsigned 32-bit integer.
	Int64  DataType = 10 // Int64 is a signed 64-bit integer.
	UInt64 DataType = 11 // UInt64 is an unsigned 64-bit integer.
)

const (
	QuantizeNone     QuantizeMode = 0 // QuantizeNone disables quantization.
	QuantizeBitGroom QuantizeMode = 1 // QuantizeBitGroom alternately shaves and sets trailing bits.

	// QuantizeGranularBR and QuantizeBitRound are reserved tags. They are not
	// recognized until the format capability version is bumped.
	QuantizeGranularBR QuantizeMode = 2
	QuantizeBitRound   QuantizeMode = 3
)

const (
	FilterDeflate    FilterID = 1     // FilterDeflate is zlib DEFLATE compression.
	FilterShuffle    FilterID = 2     // FilterShuffle is the byte shuffle preconditioner.
	FilterFletcher32 FilterID = 3     // FilterFletcher32 is the Fletcher-32 checksum.
	FilterLZ4        FilterID = 32004 // FilterLZ4 is LZ4 block compression.
	FilterZstd       FilterID = 32015 // FilterZstd is Zstandard compression.
	FilterS2         FilterID = 32769 // FilterS2 is S2 (Snappy extension) compression.
	FilterXXHash64   FilterID = 32770 // FilterXXHash64 is an xxHash64 checksum.
)

const (
	CompressionNone    CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd    CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4     CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionDeflate CompressionType = 0x5 // CompressionDeflate represents zlib DEFLATE compression.
)

const (
	Classic  Kind = 0x1 // Classic containers store variables without filters or quantization.
	Enhanced Kind = 0x2 // Enhanced containers support per-variable pipelines and quantization.
)

const (
	Version1 Version = 1

	// CurrentVersion is written to every new container.
	CurrentVersion = Version1
)

// Size returns the size in bytes of one element, or 0 for an unknown type.
func (t DataType) Size() int {
	switch t {
	case Byte, Char, UByte:
		return 1
	case Short, UShort:
		return 2
	case Int, UInt, Float:
		return 4
	case Double, Int64, UInt64:
		return 8
	default:
		return 0
	}
}

// IsValid reports whether t is a known data type.
func (t DataType) IsValid() bool {
	return t.Size() != 0
}

// IsFloating reports whether t is a floating point type.
func (t DataType) IsFloating() bool {
	return t == Float || t == Double
}

func (t DataType) String() string {
	switch t {
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Float:
		return "float"
	case Double:
		return "double"
	case UByte:
		return "ubyte"
	case UShort:
		return "ushort"
	case UInt:
		return "uint"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	default:
		return "Unknown"
	}
}

// SupportedIn reports whether m is recognized by containers of version v.
func (m QuantizeMode) SupportedIn(v Version) bool {
	switch m {
	case QuantizeNone, QuantizeBitGroom:
		return v >= Version1
	default:
		return false
	}
}

func (m QuantizeMode) String() string {
	switch m {
	case QuantizeNone:
		return "None"
	case QuantizeBitGroom:
		return "BitGroom"
	case QuantizeGranularBR:
		return "GranularBR"
	case QuantizeBitRound:
		return "BitRound"
	default:
		return "Unknown"
	}
}

func (id FilterID) String() string {
	switch id {
	case FilterDeflate:
		return "deflate"
	case FilterShuffle:
		return "shuffle"
	case FilterFletcher32:
		return "fletcher32"
	case FilterLZ4:
		return "lz4"
	case FilterZstd:
		return "zstd"
	case FilterS2:
		return "s2"
	case FilterXXHash64:
		return "xxhash64"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionDeflate:
		return "Deflate"
	default:
		return "Unknown"
	}
}

func (k Kind) String() string {
	switch k {
	case Classic:
		return "Classic"
	case Enhanced:
		return "Enhanced"
	default:
		return "Unknown"
	}
}
