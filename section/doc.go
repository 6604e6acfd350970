// Package section defines the binary layout of an ncpipe container file.
//
// A container file has three parts:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Options word, version, variable count                │
//	│  - Metadata length, data offset, metadata checksum      │
//	├─────────────────────────────────────────────────────────┤
//	│ Metadata (variable)                                     │
//	│  - One VarRecord per variable, in id order              │
//	│  - Each record carries the variable's EncodingRecord    │
//	├─────────────────────────────────────────────────────────┤
//	│ Data (variable)                                         │
//	│  - Encoded chunks, variable by variable                 │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|--------------------------------------
//	0-1    | Options          | uint16 | bit0 endianness, bit1 enhanced, bits 4-15 magic
//	2      | Version          | uint8  | format capability version
//	3      | Reserved         | uint8  | must be 0
//	4-7    | VarCount         | uint32 | number of VarRecords
//	8-11   | MetadataLength   | uint32 | byte length of the metadata section
//	12-15  | Reserved         | uint32 | must be 0
//	16-23  | DataOffset       | uint64 | absolute offset of the data section
//	24-31  | MetadataChecksum | uint64 | xxHash64 of the metadata section
//
// The options word is always little-endian so the byte order of the remaining
// fields can be read from it. Every other field, every record and all stored
// data elements use the byte order it selects.
//
// # Encoding Record
//
// The encoding record stores the quantization setting and the filter pipeline
// exactly as they are held in memory:
//
//	QuantizeMode uint8 | NSD uint8 | FilterCount uint16 |
//	FilterCount × (ID uint32 | ParamCount uint16 | ParamCount × uint32)
//
// Filters appear in pipeline order, which is the order they run when writing.
package section
