package filter

import (
	"slices"

	"github.com/arloliu/ncpipe/format"
)

// Spec is one pipeline entry: a filter id and its parameters.
type Spec struct {
	ID     format.FilterID
	Params []uint32
}

// Clone returns a deep copy of s. An empty parameter list becomes nil, the
// form it takes after a round trip through a persisted record.
func (s Spec) Clone() Spec {
	if len(s.Params) == 0 {
		return Spec{ID: s.ID}
	}

	return Spec{ID: s.ID, Params: slices.Clone(s.Params)}
}

// Equal reports whether s and other have the same id and parameters. A nil
// and an empty parameter list compare equal.
func (s Spec) Equal(other Spec) bool {
	return s.ID == other.ID && slices.Equal(s.Params, other.Params)
}
