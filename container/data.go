package container

import (
	"bytes"
	"fmt"

	"github.com/bdlm/log"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/internal/pool"
	"github.com/arloliu/ncpipe/quantize"
)

// PutVar stores all values of a variable, replacing earlier data.
//
// values must be a slice whose element type matches the declared type
// ([]float32 for format.Float, []int32 for format.Int, and so on) and whose
// length equals the variable length. The caller's slice is not modified.
// Quantization runs first, then the pipeline filters in order on each chunk.
func (c *Container) PutVar(id VarID, values any) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if !c.writable {
		return errs.ErrReadOnly
	}
	if c.defining {
		return errs.ErrInDefineMode
	}

	v, err := c.lookup(id)
	if err != nil {
		return err
	}

	n, err := sliceLen(v.typ, values)
	if err != nil {
		return err
	}
	if uint64(n) != v.length {
		return fmt.Errorf("%w: %d values for variable %q of length %d", errs.ErrInvalidArgument, n, v.name, v.length)
	}

	mode, nsd := v.state.Quantize()
	if v.typ.IsFloating() {
		values = cloneValues(values)
		if err := quantize.Apply(mode, nsd, values); err != nil {
			return err
		}
	}

	raw := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(raw)

	raw.Grow(n * v.typ.Size())
	raw.B = appendValues(raw.B, values, c.engine)

	chunks, err := c.encodeChunks(v, raw.Bytes())
	if err != nil {
		return fmt.Errorf("variable %q: %w", v.name, err)
	}

	v.chunks = chunks
	c.dirty = true

	c.entry().WithFields(log.Fields{
		"var":    v.name,
		"chunks": len(chunks),
		"raw":    raw.Len(),
		"stored": storedBytes(chunks),
	}).Debug("variable written")

	return nil
}

func (c *Container) encodeChunks(v *variable, raw []byte) ([][]byte, error) {
	chain, err := v.state.Pipeline().Build(v.typ.Size())
	if err != nil {
		return nil, err
	}

	chunkBytes := int(v.chunkLength) * v.typ.Size() //nolint: gosec
	chunks := make([][]byte, 0, v.chunkCount())
	for off := 0; off < len(raw); off += chunkBytes {
		end := min(off+chunkBytes, len(raw))
		out, err := chain.Encode(raw[off:end:end])
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", len(chunks), err)
		}
		if uint64(len(out)) > uint64(^uint32(0)) {
			return nil, fmt.Errorf("%w: chunk %d encodes to %d bytes", errs.ErrInvalidArgument, len(chunks), len(out))
		}
		chunks = append(chunks, bytes.Clone(out))
	}

	return chunks, nil
}

// GetVar returns all values of a variable as a typed slice. A variable
// without stored data reads as its type's fill value.
func (c *Container) GetVar(id VarID) (any, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	v, err := c.lookup(id)
	if err != nil {
		return nil, err
	}
	if !v.hasData() {
		return fillValues(v.typ, int(v.length)), nil //nolint: gosec
	}

	chain, err := v.state.Pipeline().Build(v.typ.Size())
	if err != nil {
		return nil, err
	}

	raw := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(raw)

	raw.Grow(int(v.length) * v.typ.Size()) //nolint: gosec
	for i, chunk := range v.chunks {
		out, err := chain.Decode(chunk)
		if err != nil {
			return nil, fmt.Errorf("variable %q chunk %d: %w", v.name, i, err)
		}
		raw.MustWrite(out)
	}

	return decodeValues(v.typ, raw.Bytes(), int(v.length), c.engine) //nolint: gosec
}

// Values returns the values of a variable as []T.
//
// T must be the Go element type of the variable's declared type.
func Values[T Number](c *Container, id VarID) ([]T, error) {
	values, err := c.GetVar(id)
	if err != nil {
		return nil, err
	}

	out, ok := values.([]T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: variable holds %T, not []%T", errs.ErrTypeMismatch, values, zero)
	}

	return out, nil
}

func storedBytes(chunks [][]byte) int {
	n := 0
	for _, chunk := range chunks {
		n += len(chunk)
	}

	return n
}
