package filter

import (
	"fmt"
	"slices"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

// MaxFilters is the maximum number of entries in one pipeline.
const MaxFilters = 10

// Pipeline is the ordered filter configuration of a variable.
//
// Entries keep insertion order. Adding an id that is already present replaces
// that entry's parameters in place and keeps its position. The zero value is an
// empty pipeline ready to use.
type Pipeline struct {
	specs []Spec
}

// NewPipeline builds a pipeline by adding specs in order.
func NewPipeline(specs ...Spec) (Pipeline, error) {
	var p Pipeline
	for _, s := range specs {
		if err := p.Add(s); err != nil {
			return Pipeline{}, err
		}
	}

	return p, nil
}

// Add appends spec, or replaces the parameters of the entry with the same id.
//
// Returns errs.ErrFilterUnavailable for unknown ids, and errs.ErrInvalidArgument
// for rejected parameters, a full pipeline, or a second checksum filter.
// The pipeline is unchanged on error.
func (p *Pipeline) Add(spec Spec) error {
	if err := Validate(spec); err != nil {
		return err
	}

	spec = spec.Clone()
	if i := p.Index(spec.ID); i >= 0 {
		p.specs[i] = spec
		return nil
	}

	if len(p.specs) >= MaxFilters {
		return fmt.Errorf("%w: pipeline already holds %d filters", errs.ErrInvalidArgument, MaxFilters)
	}

	info, _ := Lookup(spec.ID)
	if info.Role == RoleChecksum {
		if existing, ok := p.checksum(); ok {
			return fmt.Errorf("%w: %s conflicts with checksum filter %s", errs.ErrInvalidArgument, info.Name, existing)
		}
	}

	p.specs = append(p.specs, spec)

	return nil
}

// Remove deletes the entry with the given id.
//
// Returns errs.ErrNotFound if the pipeline has no such entry.
func (p *Pipeline) Remove(id format.FilterID) error {
	i := p.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: filter %d not in pipeline", errs.ErrNotFound, id)
	}
	p.specs = slices.Delete(slices.Clone(p.specs), i, i+1)

	return nil
}

// Index returns the position of id in the pipeline, or -1.
func (p Pipeline) Index(id format.FilterID) int {
	for i, s := range p.specs {
		if s.ID == id {
			return i
		}
	}

	return -1
}

// Params returns a copy of the parameters of id.
func (p Pipeline) Params(id format.FilterID) ([]uint32, bool) {
	i := p.Index(id)
	if i < 0 {
		return nil, false
	}

	return p.specs[i].Clone().Params, true
}

// Len returns the number of entries.
func (p Pipeline) Len() int {
	return len(p.specs)
}

// Specs returns a deep copy of the entries in pipeline order.
func (p Pipeline) Specs() []Spec {
	out := make([]Spec, len(p.specs))
	for i, s := range p.specs {
		out[i] = s.Clone()
	}

	return out
}

// Clone returns a deep copy of p.
func (p Pipeline) Clone() Pipeline {
	if len(p.specs) == 0 {
		return Pipeline{}
	}

	return Pipeline{specs: p.Specs()}
}

// Equal reports whether both pipelines hold the same entries in the same order.
func (p Pipeline) Equal(other Pipeline) bool {
	if len(p.specs) != len(other.specs) {
		return false
	}
	for i := range p.specs {
		if !p.specs[i].Equal(other.specs[i]) {
			return false
		}
	}

	return true
}

// Build instantiates the filters for elements of elemSize bytes.
func (p Pipeline) Build(elemSize int) (*Chain, error) {
	c := &Chain{filters: make([]Filter, 0, len(p.specs))}
	for _, s := range p.specs {
		f, err := New(s, elemSize)
		if err != nil {
			return nil, err
		}
		c.filters = append(c.filters, f)
	}

	return c, nil
}

func (p Pipeline) checksum() (string, bool) {
	for _, s := range p.specs {
		if info, ok := Lookup(s.ID); ok && info.Role == RoleChecksum {
			return info.Name, true
		}
	}

	return "", false
}

// Chain runs instantiated filters over chunk data.
type Chain struct {
	filters []Filter
}

// Empty reports whether the chain has no filters.
func (c *Chain) Empty() bool {
	return len(c.filters) == 0
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int {
	return len(c.filters)
}

// Encode applies the filters in pipeline order.
func (c *Chain) Encode(data []byte) ([]byte, error) {
	for _, f := range c.filters {
		var err error
		data, err = f.Encode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %s encode: %w", name(f.ID()), err)
		}
	}

	return data, nil
}

// Decode applies the filters in reverse pipeline order.
func (c *Chain) Decode(data []byte) ([]byte, error) {
	for i := len(c.filters) - 1; i >= 0; i-- {
		var err error
		data, err = c.filters[i].Decode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %s decode: %w", name(c.filters[i].ID()), err)
		}
	}

	return data, nil
}
