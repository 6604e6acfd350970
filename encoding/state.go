package encoding

import (
	"fmt"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/filter"
	"github.com/arloliu/ncpipe/format"
	"github.com/arloliu/ncpipe/section"
)

// State is the encoding configuration of one variable.
//
// The zero value is the initial configuration: no quantization and an empty
// pipeline.
type State struct {
	mode     format.QuantizeMode
	nsd      int
	pipeline filter.Pipeline
}

// NewState returns a State with quantization off and no filters.
func NewState() *State {
	return &State{}
}

// Quantize returns the quantization mode and number of significant digits.
func (s *State) Quantize() (format.QuantizeMode, int) {
	return s.mode, s.nsd
}

// SetQuantize replaces the quantization setting for a variable of type typ.
//
// Checks run in this order and the first failure is returned:
//   - the container must be enhanced (errs.ErrUnsupportedContainer)
//   - mode must be recognized at the current format version (errs.ErrInvalidArgument)
//   - for modes other than QuantizeNone, typ must be floating point and nsd
//     within [0, format.MaxNSD(typ)] (errs.ErrInvalidArgument)
//   - the gate must be in definition mode (errs.ErrTooLateToDefine)
//
// QuantizeNone always stores nsd 0, and a recognized mode with nsd 0 stores
// (QuantizeNone, 0).
func (s *State) SetQuantize(g Gate, typ format.DataType, mode format.QuantizeMode, nsd int) error {
	if !g.Enhanced() {
		return errs.ErrUnsupportedContainer
	}

	mode, nsd, err := normalizeQuantize(typ, mode, nsd)
	if err != nil {
		return err
	}

	if !g.InDefineMode() {
		return errs.ErrTooLateToDefine
	}

	s.mode, s.nsd = mode, nsd

	return nil
}

func normalizeQuantize(typ format.DataType, mode format.QuantizeMode, nsd int) (format.QuantizeMode, int, error) {
	if !mode.SupportedIn(format.CurrentVersion) {
		return 0, 0, fmt.Errorf("%w: quantize mode %s", errs.ErrInvalidArgument, mode)
	}
	if mode == format.QuantizeNone {
		return format.QuantizeNone, 0, nil
	}

	maxNSD, ok := format.MaxNSD(typ)
	if !ok {
		return 0, 0, fmt.Errorf("%w: cannot quantize %s values", errs.ErrInvalidArgument, typ)
	}
	if nsd < 0 || nsd > maxNSD {
		return 0, 0, fmt.Errorf("%w: nsd %d outside [0, %d] for %s", errs.ErrInvalidArgument, nsd, maxNSD, typ)
	}
	if nsd == 0 {
		return format.QuantizeNone, 0, nil
	}

	return mode, nsd, nil
}

// AddFilter appends spec to the pipeline, or replaces the parameters of an
// entry with the same id.
//
// Filter validation errors are reported before errs.ErrTooLateToDefine.
func (s *State) AddFilter(g Gate, spec filter.Spec) error {
	if !g.Enhanced() {
		return errs.ErrUnsupportedContainer
	}

	next := s.pipeline.Clone()
	if err := next.Add(spec); err != nil {
		return err
	}

	if !g.InDefineMode() {
		return errs.ErrTooLateToDefine
	}
	s.pipeline = next

	return nil
}

// RemoveFilter deletes the pipeline entry with the given id.
func (s *State) RemoveFilter(g Gate, id format.FilterID) error {
	if !g.Enhanced() {
		return errs.ErrUnsupportedContainer
	}

	next := s.pipeline.Clone()
	if err := next.Remove(id); err != nil {
		return err
	}

	if !g.InDefineMode() {
		return errs.ErrTooLateToDefine
	}
	s.pipeline = next

	return nil
}

// Filters returns a copy of the pipeline entries in encode order.
func (s *State) Filters() []filter.Spec {
	return s.pipeline.Specs()
}

// FilterParams returns a copy of the parameters of filter id.
func (s *State) FilterParams(id format.FilterID) ([]uint32, error) {
	params, ok := s.pipeline.Params(id)
	if !ok {
		return nil, fmt.Errorf("%w: filter %d not in pipeline", errs.ErrNotFound, id)
	}

	return params, nil
}

// Pipeline returns a copy of the filter pipeline.
func (s *State) Pipeline() filter.Pipeline {
	return s.pipeline.Clone()
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	return &State{mode: s.mode, nsd: s.nsd, pipeline: s.pipeline.Clone()}
}

// Equal reports whether both states hold the same quantization setting and
// pipeline.
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.mode == other.mode && s.nsd == other.nsd && s.pipeline.Equal(other.pipeline)
}

// String implements fmt.Stringer.
func (s *State) String() string {
	return fmt.Sprintf("quantize=%s nsd=%d filters=%v", s.mode, s.nsd, s.pipeline.Specs())
}

// Record returns the persisted form of s.
func (s *State) Record() section.EncodingRecord {
	rec := section.EncodingRecord{
		QuantizeMode: s.mode,
		NSD:          uint8(s.nsd), //nolint: gosec
	}
	specs := s.pipeline.Specs()
	if len(specs) > 0 {
		rec.Filters = make([]section.FilterEntry, len(specs))
		for i, spec := range specs {
			rec.Filters[i] = section.FilterEntry{ID: spec.ID, Params: spec.Params}
		}
	}

	return rec
}

// FromRecord rebuilds a State from its persisted form.
//
// The record is validated with the same rules as the mutators, except that
// the quantization bound is checked against the widest floating type since a
// record does not carry the variable type. Use FromVarRecord when the type is
// known.
func FromRecord(rec section.EncodingRecord) (*State, error) {
	return fromRecord(rec, format.Double)
}

// FromVarRecord rebuilds the State of a persisted variable.
func FromVarRecord(rec section.VarRecord) (*State, error) {
	return fromRecord(rec.Encoding, rec.DataType)
}

func fromRecord(rec section.EncodingRecord, typ format.DataType) (*State, error) {
	mode, nsd, err := normalizeQuantize(typ, rec.QuantizeMode, int(rec.NSD))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidRecord, err)
	}
	if mode != rec.QuantizeMode || nsd != int(rec.NSD) {
		return nil, fmt.Errorf("%w: quantize (%s, %d) is not normalized", errs.ErrInvalidRecord, rec.QuantizeMode, rec.NSD)
	}

	specs := make([]filter.Spec, len(rec.Filters))
	for i, f := range rec.Filters {
		specs[i] = filter.Spec{ID: f.ID, Params: f.Params}
	}
	p, err := filter.NewPipeline(specs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidRecord, err)
	}
	if p.Len() != len(specs) {
		return nil, fmt.Errorf("%w: duplicate filter ids", errs.ErrInvalidRecord)
	}

	return &State{mode: mode, nsd: nsd, pipeline: p}, nil
}
