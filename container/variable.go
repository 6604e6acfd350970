package container

import (
	"fmt"

	"github.com/bdlm/log"

	"github.com/arloliu/ncpipe/encoding"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
	"github.com/arloliu/ncpipe/internal/options"
	"github.com/arloliu/ncpipe/section"
)

// VarID identifies a variable within a container. Ids are dense and assigned
// from 0 in definition order.
type VarID int

// Global is the whole-container id. It is never a valid target for encoding
// operations.
const Global VarID = -1

// VarInfo describes a defined variable.
type VarInfo struct {
	ID          VarID
	Name        string
	DataType    format.DataType
	Length      int
	ChunkLength int
	HasData     bool
}

type variable struct {
	name        string
	typ         format.DataType
	length      uint64
	chunkLength uint64
	state       *encoding.State
	// chunks holds the encoded chunks, nil until values are stored.
	chunks [][]byte
}

func (v *variable) hasData() bool {
	return v.chunks != nil
}

func (v *variable) chunkCount() int {
	return int((v.length + v.chunkLength - 1) / v.chunkLength)
}

func (v *variable) record(enc section.EncodingRecord) section.VarRecord {
	rec := section.VarRecord{
		Name:        v.name,
		DataType:    v.typ,
		Length:      v.length,
		ChunkLength: v.chunkLength,
		Encoding:    enc,
	}
	if v.hasData() {
		rec.ChunkSizes = make([]uint32, len(v.chunks))
		for i, chunk := range v.chunks {
			rec.ChunkSizes[i] = uint32(len(chunk)) //nolint: gosec
		}
	}

	return rec
}

// varGate decides whether one variable's encoding state may change.
type varGate struct {
	c *Container
	v *variable
}

var _ encoding.Gate = varGate{}

func (g varGate) InDefineMode() bool {
	return g.c.defining && !g.v.hasData()
}

func (g varGate) Enhanced() bool {
	return g.c.kind == format.Enhanced
}

// DefineVar adds a variable of the given type and element count.
//
// The variable starts with quantization off and an empty pipeline.
func (c *Container) DefineVar(name string, typ format.DataType, length int, opts ...VarOption) (VarID, error) {
	if err := c.checkOpen(); err != nil {
		return 0, err
	}
	if !c.writable {
		return 0, errs.ErrReadOnly
	}
	if !c.defining {
		return 0, errs.ErrNotInDefineMode
	}
	if len(name) == 0 || len(name) > section.MaxNameLength {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidName, name)
	}
	if !typ.IsValid() {
		return 0, fmt.Errorf("%w: data type %d", errs.ErrInvalidArgument, typ)
	}
	if length <= 0 {
		return 0, fmt.Errorf("%w: length %d", errs.ErrInvalidArgument, length)
	}

	cfg := &varConfig{chunkLength: uint64(min(length, DefaultChunkLength))}
	if err := options.Apply(cfg, opts...); err != nil {
		return 0, err
	}
	cfg.chunkLength = min(cfg.chunkLength, uint64(length))

	id := VarID(len(c.vars))
	if err := c.names.Add(name, int(id)); err != nil {
		return 0, fmt.Errorf("%w: %q", err, name)
	}

	c.vars = append(c.vars, &variable{
		name:        name,
		typ:         typ,
		length:      uint64(length),
		chunkLength: cfg.chunkLength,
		state:       encoding.NewState(),
	})

	c.entry().WithFields(log.Fields{
		"var":    name,
		"id":     id,
		"type":   typ.String(),
		"length": length,
	}).Debug("variable defined")

	return id, nil
}

// VarID returns the id of the variable with the given name.
func (c *Container) VarID(name string) (VarID, error) {
	if err := c.checkOpen(); err != nil {
		return 0, err
	}

	id, ok := c.names.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: variable %q", errs.ErrNotFound, name)
	}

	return VarID(id), nil
}

// Var returns the description of a variable.
func (c *Container) Var(id VarID) (VarInfo, error) {
	if err := c.checkOpen(); err != nil {
		return VarInfo{}, err
	}

	v, err := c.lookup(id)
	if err != nil {
		return VarInfo{}, err
	}

	return VarInfo{
		ID:          id,
		Name:        v.name,
		DataType:    v.typ,
		Length:      int(v.length),      //nolint: gosec
		ChunkLength: int(v.chunkLength), //nolint: gosec
		HasData:     v.hasData(),
	}, nil
}

// NumVars returns the number of defined variables.
func (c *Container) NumVars() int {
	return len(c.vars)
}

// lookup resolves id to a variable.
func (c *Container) lookup(id VarID) (*variable, error) {
	if id == Global {
		return nil, errs.ErrInvalidTarget
	}
	if id < 0 || int(id) >= len(c.vars) {
		return nil, fmt.Errorf("%w: variable id %d", errs.ErrNotFound, id)
	}

	return c.vars[id], nil
}
