// Package nameindex maps variable names to ids through their xxHash64.
//
// Distinct names may share a hash. Each hash owns a small bucket of ids, and
// lookups confirm the stored name, so a collision costs one extra comparison
// instead of a wrong answer.
package nameindex

import (
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/internal/hash"
)

type entry struct {
	name string
	id   int
}

// Index tracks variable names and their ids.
type Index struct {
	buckets    map[uint64][]entry
	count      int
	collisions int
}

// New creates an empty index.
func New() *Index {
	return &Index{
		buckets: make(map[uint64][]entry),
	}
}

// Add records name for id.
//
// Returns errs.ErrInvalidName for an empty name and errs.ErrNameInUse when the
// name is already present.
func (x *Index) Add(name string, id int) error {
	if name == "" {
		return errs.ErrInvalidName
	}

	h := hash.ID(name)
	bucket := x.buckets[h]
	for _, e := range bucket {
		if e.name == name {
			return errs.ErrNameInUse
		}
	}
	if len(bucket) > 0 {
		x.collisions++
	}

	x.buckets[h] = append(bucket, entry{name: name, id: id})
	x.count++

	return nil
}

// Lookup returns the id recorded for name.
func (x *Index) Lookup(name string) (int, bool) {
	for _, e := range x.buckets[hash.ID(name)] {
		if e.name == name {
			return e.id, true
		}
	}

	return 0, false
}

// Count returns the number of indexed names.
func (x *Index) Count() int {
	return x.count
}

// Collisions returns how many names landed in an already occupied bucket.
func (x *Index) Collisions() int {
	return x.collisions
}

// Reset clears the index, keeping its map allocation.
func (x *Index) Reset() {
	for k := range x.buckets {
		delete(x.buckets, k)
	}
	x.count = 0
	x.collisions = 0
}
