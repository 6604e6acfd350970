package section

const (
	// Bit masks of the header options word.
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0), set for big-endian
	EnhancedMask     = 0x0002 // Mask for the enhanced format bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicContainerV1 identifies an ncpipe container file.
	MagicContainerV1 = 0xCD10
)

const (
	HeaderSize     = 32         // fixed header size in bytes
	MetadataOffset = HeaderSize // byte offset where the metadata section starts
	MaxNameLength  = 1024       // maximum variable name length in bytes
	MaxFilterCount = 0xFFFF     // upper bound imposed by the uint16 filter count
	MaxParamCount  = 0xFFFF     // upper bound imposed by the uint16 parameter count
)
