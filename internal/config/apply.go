package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arloliu/ncpipe/container"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

// Apply defines the schema's variables and their encoding configuration on c,
// which must be in its definition phase.
//
// Returns the ids of the defined variables in schema order.
func (s *Schema) Apply(c *container.Container) ([]container.VarID, error) {
	ids := make([]container.VarID, 0, len(s.Variables))
	for _, v := range s.Variables {
		id, err := v.define(c)
		if err != nil {
			return ids, fmt.Errorf("variable %q: %w", v.Name, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (v Variable) define(c *container.Container) (container.VarID, error) {
	typ, err := format.ParseDataType(v.Type)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrInvalidSchema, err)
	}

	var opts []container.VarOption
	if v.Chunk != 0 {
		opts = append(opts, container.WithChunkLength(v.Chunk))
	}

	id, err := c.DefineVar(v.Name, typ, v.Length, opts...)
	if err != nil {
		return 0, err
	}

	for _, f := range v.Filters {
		fid, err := f.FilterID()
		if err != nil {
			return id, fmt.Errorf("%w: %v", errs.ErrInvalidSchema, err)
		}
		if err := c.DefineFilter(id, fid, f.Params); err != nil {
			return id, err
		}
	}

	if v.Quantize != nil {
		mode, err := format.ParseQuantizeMode(v.Quantize.Mode)
		if err != nil {
			return id, fmt.Errorf("%w: %v", errs.ErrInvalidSchema, err)
		}
		if err := c.DefineQuantize(id, mode, v.Quantize.NSD); err != nil {
			return id, err
		}
	}

	return id, nil
}

// Describe builds the schema of an open container.
func Describe(c *container.Container) (*Schema, error) {
	s := &Schema{
		Format:    strings.ToLower(c.Format().String()),
		Endian:    "little",
		Variables: make([]Variable, 0, c.NumVars()),
	}

	if c.BigEndian() {
		s.Endian = "big"
	}

	for i := 0; i < c.NumVars(); i++ {
		id := container.VarID(i)
		info, err := c.Var(id)
		if err != nil {
			return nil, err
		}

		v := Variable{
			Name:   info.Name,
			Type:   info.DataType.String(),
			Length: info.Length,
			Chunk:  info.ChunkLength,
		}

		mode, nsd, err := c.InquireQuantize(id)
		switch {
		case errors.Is(err, errs.ErrUnsupportedContainer):
			s.Variables = append(s.Variables, v)
			continue
		case err != nil:
			return nil, err
		}
		if mode != format.QuantizeNone {
			v.Quantize = &Quantize{Mode: strings.ToLower(mode.String()), NSD: nsd}
		}

		specs, err := c.InquireFilters(id)
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			f := Filter{Params: spec.Params}
			if _, err := format.ParseFilterID(spec.ID.String()); err == nil {
				f.Name = spec.ID.String()
			} else {
				f.ID = uint32(spec.ID)
			}
			v.Filters = append(v.Filters, f)
		}

		s.Variables = append(s.Variables, v)
	}

	return s, nil
}
