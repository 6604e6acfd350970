package container

import (
	"github.com/bdlm/log"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/filter"
	"github.com/arloliu/ncpipe/format"
)

// resolve runs the checks shared by every encoding operation: the container
// must be open and enhanced, and id must name a variable.
func (c *Container) resolve(id VarID) (*variable, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if c.kind != format.Enhanced {
		return nil, errs.ErrUnsupportedContainer
	}

	return c.lookup(id)
}

// DefineQuantize sets the quantization mode and number of significant digits
// of a floating point variable.
//
// Errors, in the order they are checked:
//   - errs.ErrUnsupportedContainer: classic format container
//   - errs.ErrInvalidTarget: id is Global
//   - errs.ErrNotFound: no variable with this id
//   - errs.ErrInvalidArgument: unrecognized mode, nsd out of range or a
//     non-floating variable
//   - errs.ErrTooLateToDefine: not in the definition phase, or the variable
//     already holds data
//
// QuantizeNone always stores nsd 0. A failed call leaves the previous setting
// unchanged.
func (c *Container) DefineQuantize(id VarID, mode format.QuantizeMode, nsd int) error {
	v, err := c.resolve(id)
	if err != nil {
		return err
	}

	if err := v.state.SetQuantize(varGate{c: c, v: v}, v.typ, mode, nsd); err != nil {
		return err
	}

	stored, storedNSD := v.state.Quantize()
	c.entry().WithFields(log.Fields{
		"var":  v.name,
		"mode": stored.String(),
		"nsd":  storedNSD,
	}).Debug("quantize defined")

	return nil
}

// InquireQuantize returns the quantization mode and number of significant
// digits of a variable. It is legal in either phase.
func (c *Container) InquireQuantize(id VarID) (format.QuantizeMode, int, error) {
	v, err := c.resolve(id)
	if err != nil {
		return format.QuantizeNone, 0, err
	}

	mode, nsd := v.state.Quantize()

	return mode, nsd, nil
}

// DefineFilter appends a filter to a variable's pipeline, or replaces the
// parameters of the entry with the same id in place.
//
// Gating is the same as DefineQuantize. Unknown filter ids fail with
// errs.ErrFilterUnavailable; rejected parameters, a full pipeline and a second
// checksum filter fail with errs.ErrInvalidArgument.
func (c *Container) DefineFilter(id VarID, filterID format.FilterID, params []uint32) error {
	v, err := c.resolve(id)
	if err != nil {
		return err
	}

	spec := filter.Spec{ID: filterID, Params: params}
	if err := v.state.AddFilter(varGate{c: c, v: v}, spec); err != nil {
		return err
	}

	c.entry().WithFields(log.Fields{
		"var":    v.name,
		"filter": filterID.String(),
		"params": params,
	}).Debug("filter defined")

	return nil
}

// RemoveFilter deletes a filter from a variable's pipeline.
func (c *Container) RemoveFilter(id VarID, filterID format.FilterID) error {
	v, err := c.resolve(id)
	if err != nil {
		return err
	}

	return v.state.RemoveFilter(varGate{c: c, v: v}, filterID)
}

// InquireFilters returns a copy of a variable's pipeline in encode order.
func (c *Container) InquireFilters(id VarID) ([]filter.Spec, error) {
	v, err := c.resolve(id)
	if err != nil {
		return nil, err
	}

	return v.state.Filters(), nil
}

// InquireFilter returns the parameters of one filter of a variable's pipeline.
func (c *Container) InquireFilter(id VarID, filterID format.FilterID) ([]uint32, error) {
	v, err := c.resolve(id)
	if err != nil {
		return nil, err
	}

	return v.state.FilterParams(filterID)
}
