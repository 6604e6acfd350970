// Package ncpipe provides a self-describing, chunked array container whose
// variables carry an ordered filter pipeline and a quantization setting.
//
// Quantization zeroes the mantissa bits that do not contribute to a requested
// number of significant decimal digits (NSD), which makes floating point data
// far more compressible. Filters then run on each stored chunk in the order
// they were defined: byte shuffle, compression (deflate, zstd, lz4, s2) and a
// checksum (fletcher32 or xxhash64).
//
// # Core Features
//
//   - Two-phase lifecycle: encoding is configured in the definition phase and
//     frozen once data is written
//   - BitGroom quantization with per-type NSD bounds (7 for float, 15 for double)
//   - Pluggable filter registry with built-in compression and checksum filters
//   - Classic and enhanced container formats; only enhanced containers carry
//     filters and quantization
//   - Exact persistence: a reopened container reports the committed
//     configuration bit for bit
//
// # Basic Usage
//
//	c, err := ncpipe.Create("obs.ncp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	temp, _ := c.DefineVar("temperature", format.Float, 1000)
//	_ = ncpipe.DefineFilter(c, temp, format.FilterShuffle, nil)
//	_ = ncpipe.DefineFilter(c, temp, format.FilterDeflate, []uint32{6})
//	_ = ncpipe.DefineQuantize(c, temp, format.QuantizeBitGroom, 3)
//
//	_ = c.EndDef()
//	_ = c.PutVar(temp, values)
//	_ = c.Close()
//
// Reading it back:
//
//	c, _ := ncpipe.Open("obs.ncp")
//	mode, nsd, _ := ncpipe.InquireQuantize(c, temp)
//	values, _ := container.Values[float32](c, temp)
//
// # Package Structure
//
// This package provides top-level wrappers around the container package. The
// filter package holds the registry and pipeline, quantize the BitGroom
// transform, encoding the per-variable state and section the file layout.
package ncpipe

import (
	"github.com/arloliu/ncpipe/container"
	"github.com/arloliu/ncpipe/filter"
	"github.com/arloliu/ncpipe/format"
)

// Create creates a new container file in the definition phase.
//
// The default is an enhanced format, little-endian container that replaces
// any existing file.
//
// Available options:
//   - container.WithFormat(format.Classic|format.Enhanced)
//   - container.WithLittleEndian() / container.WithBigEndian()
//   - container.WithNoClobber()
//   - container.WithLogger(logger)
func Create(path string, opts ...container.Option) (*container.Container, error) {
	return container.Create(path, opts...)
}

// Open opens an existing container file in the data phase.
//
// The container is read-only unless container.WithWrite() is given.
func Open(path string, opts ...container.Option) (*container.Container, error) {
	return container.Open(path, opts...)
}

// DefineFilter appends filter id with params to the pipeline of variable v,
// or replaces the parameters of an existing entry with the same id.
//
// Returns errs.ErrUnsupportedContainer, errs.ErrInvalidTarget, errs.ErrNotFound,
// errs.ErrFilterUnavailable, errs.ErrInvalidArgument or errs.ErrTooLateToDefine.
func DefineFilter(c *container.Container, v container.VarID, id format.FilterID, params []uint32) error {
	return c.DefineFilter(v, id, params)
}

// DefineQuantize sets the quantization mode and number of significant digits
// of variable v.
//
// Example:
//
//	err := ncpipe.DefineQuantize(c, temp, format.QuantizeBitGroom, 3)
//	if errors.Is(err, errs.ErrTooLateToDefine) {
//	    // the container already left the definition phase
//	}
func DefineQuantize(c *container.Container, v container.VarID, mode format.QuantizeMode, nsd int) error {
	return c.DefineQuantize(v, mode, nsd)
}

// InquireQuantize returns the quantization mode and number of significant
// digits of variable v.
func InquireQuantize(c *container.Container, v container.VarID) (format.QuantizeMode, int, error) {
	return c.InquireQuantize(v)
}

// Filters lists the registered filters ordered by id.
func Filters() []filter.Info {
	return filter.Registered()
}
