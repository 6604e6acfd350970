// Package container implements a self-describing, chunked array file whose
// variables carry a quantization setting and an ordered filter pipeline.
//
// # Lifecycle
//
// A container is either in its definition phase or in its data phase.
// Variables and their encoding configuration are declared in the definition
// phase; values are written and read in the data phase:
//
//	c, err := container.Create("obs.ncp")
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	temp, _ := c.DefineVar("temperature", format.Float, 1024, container.WithChunkLength(256))
//	_ = c.DefineFilter(temp, format.FilterShuffle, nil)
//	_ = c.DefineFilter(temp, format.FilterDeflate, []uint32{6})
//	_ = c.DefineQuantize(temp, format.QuantizeBitGroom, 3)
//
//	if err := c.EndDef(); err != nil {
//	    return err
//	}
//	err = c.PutVar(temp, values)
//
// Create starts in the definition phase, Open starts in the data phase and
// Redef returns a writable container to the definition phase. A variable that
// already holds data keeps its encoding configuration even after Redef.
//
// # Format capability
//
// Filters and quantization need an enhanced format container. On a classic
// container every encoding call, including the inquiries, fails with
// errs.ErrUnsupportedContainer.
//
// # Persistence
//
// Encoding states are committed when the definition phase ends and the whole
// file is rewritten at EndDef, Sync and Close. Rewrites go to a temporary file
// in the same directory that then replaces the target, so a reader never sees
// a partially written container.
//
// A Container is not safe for concurrent use.
package container
