package section

import (
	"fmt"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

// Header is the fixed-size section at the start of a container file.
type Header struct {
	Flag             ContainerFlag  // byte offset 0-1
	Version          format.Version // byte offset 2
	VarCount         uint32         // byte offset 4-7
	MetadataLength   uint32         // byte offset 8-11
	DataOffset       uint64         // byte offset 16-23
	MetadataChecksum uint64         // byte offset 24-31
}

// NewHeader creates a header for a container of the given kind at the
// current format version. Counts and offsets are filled in when the file is
// written.
func NewHeader(kind format.Kind) *Header {
	return &Header{
		Flag:       NewContainerFlag(kind),
		Version:    format.CurrentVersion,
		DataOffset: MetadataOffset,
	}
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes.
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidHeader or ErrUnsupportedVersion
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The options word is always little-endian.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	if err := h.Flag.Validate(); err != nil {
		return err
	}
	if data[3] != 0 {
		return errs.ErrInvalidHeader
	}

	h.Version = format.Version(data[2])
	if h.Version < format.Version1 || h.Version > format.CurrentVersion {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}

	engine := h.Flag.GetEndianEngine()
	h.VarCount = engine.Uint32(data[4:8])
	h.MetadataLength = engine.Uint32(data[8:12])
	if engine.Uint32(data[12:16]) != 0 {
		return errs.ErrInvalidHeader
	}
	h.DataOffset = engine.Uint64(data[16:24])
	h.MetadataChecksum = engine.Uint64(data[24:32])

	if h.DataOffset != uint64(MetadataOffset)+uint64(h.MetadataLength) {
		return fmt.Errorf("%w: data offset %d does not follow metadata", errs.ErrInvalidHeader, h.DataOffset)
	}

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = byte(h.Version)

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[4:8], h.VarCount)
	engine.PutUint32(b[8:12], h.MetadataLength)
	engine.PutUint64(b[16:24], h.DataOffset)
	engine.PutUint64(b[24:32], h.MetadataChecksum)

	return b
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

// IsContainerFile reports whether data starts with a valid container options word.
func IsContainerFile(data []byte) bool {
	if len(data) < HeaderSize {
		return false
	}
	flag := ContainerFlag{Options: uint16(data[0]) | (uint16(data[1]) << 8)}

	return flag.Validate() == nil
}
