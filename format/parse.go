package format

import (
	"fmt"
	"strings"
)

var dataTypeNames = map[string]DataType{
	"byte":   Byte,
	"char":   Char,
	"short":  Short,
	"int":    Int,
	"float":  Float,
	"double": Double,
	"ubyte":  UByte,
	"ushort": UShort,
	"uint":   UInt,
	"int64":  Int64,
	"uint64": UInt64,
}

var quantizeModeNames = map[string]QuantizeMode{
	"none":       QuantizeNone,
	"bitgroom":   QuantizeBitGroom,
	"granularbr": QuantizeGranularBR,
	"bitround":   QuantizeBitRound,
}

var filterNames = map[string]FilterID{
	"deflate":    FilterDeflate,
	"shuffle":    FilterShuffle,
	"fletcher32": FilterFletcher32,
	"lz4":        FilterLZ4,
	"zstd":       FilterZstd,
	"s2":         FilterS2,
	"xxhash64":   FilterXXHash64,
}

var kindNames = map[string]Kind{
	"classic":  Classic,
	"enhanced": Enhanced,
}

// ParseDataType parses a case-insensitive type name such as "float".
func ParseDataType(name string) (DataType, error) {
	if t, ok := dataTypeNames[strings.ToLower(name)]; ok {
		return t, nil
	}

	return 0, fmt.Errorf("unknown data type: %q", name)
}

// ParseQuantizeMode parses a case-insensitive quantization mode name.
func ParseQuantizeMode(name string) (QuantizeMode, error) {
	if m, ok := quantizeModeNames[strings.ToLower(name)]; ok {
		return m, nil
	}

	return 0, fmt.Errorf("unknown quantize mode: %q", name)
}

// ParseFilterID parses a built-in filter name such as "zstd".
func ParseFilterID(name string) (FilterID, error) {
	if id, ok := filterNames[strings.ToLower(name)]; ok {
		return id, nil
	}

	return 0, fmt.Errorf("unknown filter: %q", name)
}

// ParseKind parses a container format kind name.
func ParseKind(name string) (Kind, error) {
	if k, ok := kindNames[strings.ToLower(name)]; ok {
		return k, nil
	}

	return 0, fmt.Errorf("unknown format kind: %q", name)
}
