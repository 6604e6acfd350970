package section

import (
	"github.com/arloliu/ncpipe/endian"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

// ContainerFlag is the packed options word at the start of the header.
type ContainerFlag struct {
	// Options holds the flag bits and the magic number:
	//   - Bit 0: endianness, 0 little-endian, 1 big-endian
	//   - Bit 1: format kind, 0 classic, 1 enhanced
	//   - Bits 2-3: reserved, must be 0
	//   - Bits 4-15: magic number 0xCD1
	Options uint16
}

// NewContainerFlag creates a little-endian flag for the given format kind.
func NewContainerFlag(kind format.Kind) ContainerFlag {
	flag := ContainerFlag{Options: MagicContainerV1}
	flag.SetKind(kind)

	return flag
}

// IsLittleEndian returns whether the data is little-endian.
func (f ContainerFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f ContainerFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *ContainerFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *ContainerFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// Kind returns the container format kind.
func (f ContainerFlag) Kind() format.Kind {
	if f.Options&EnhancedMask != 0 {
		return format.Enhanced
	}

	return format.Classic
}

// SetKind records the container format kind.
func (f *ContainerFlag) SetKind(kind format.Kind) {
	if kind == format.Enhanced {
		f.Options |= EnhancedMask
	} else {
		f.Options &^= EnhancedMask
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f ContainerFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Validate checks the magic number and reserved bits.
func (f ContainerFlag) Validate() error {
	if f.GetMagicNumber() != MagicContainerV1 {
		return errs.ErrInvalidHeader
	}
	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeader
	}

	return nil
}

// GetEndianEngine returns the engine selected by the endianness bit.
func (f ContainerFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
