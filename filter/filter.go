package filter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

// Role classifies what a filter does to a chunk.
type Role uint8

const (
	RoleCompression    Role = 1 // RoleCompression shrinks data.
	RolePreconditioner Role = 2 // RolePreconditioner rearranges data so it compresses better.
	RoleChecksum       Role = 3 // RoleChecksum appends and verifies an integrity check.
)

func (r Role) String() string {
	switch r {
	case RoleCompression:
		return "compression"
	case RolePreconditioner:
		return "preconditioner"
	case RoleChecksum:
		return "checksum"
	default:
		return "unknown"
	}
}

// Filter is one stage of a pipeline.
type Filter interface {
	// ID returns the filter identifier.
	ID() format.FilterID
	// Encode transforms data on the write path.
	Encode(data []byte) ([]byte, error)
	// Decode reverses Encode on the read path.
	Decode(data []byte) ([]byte, error)
}

// Constructor builds a filter from its parameters. elemSize is the size in
// bytes of one element of the variable the filter is attached to.
type Constructor func(params []uint32, elemSize int) (Filter, error)

// Info describes a registered filter.
type Info struct {
	ID   format.FilterID
	Name string
	Role Role
}

type registration struct {
	info Info
	ctor Constructor
}

var (
	registryMu sync.RWMutex
	registry   = map[format.FilterID]registration{}
)

func init() {
	mustRegister(format.FilterDeflate, RoleCompression, newDeflate)
	mustRegister(format.FilterShuffle, RolePreconditioner, newShuffle)
	mustRegister(format.FilterFletcher32, RoleChecksum, newFletcher32)
	mustRegister(format.FilterLZ4, RoleCompression, newLZ4)
	mustRegister(format.FilterZstd, RoleCompression, newZstd)
	mustRegister(format.FilterS2, RoleCompression, newS2)
	mustRegister(format.FilterXXHash64, RoleChecksum, newXXHash64)
}

func mustRegister(id format.FilterID, role Role, ctor Constructor) {
	if err := Register(id, id.String(), role, ctor); err != nil {
		panic(err)
	}
}

// Register makes a filter implementation available to pipelines.
//
// Returns an error if id is already registered or ctor is nil.
func Register(id format.FilterID, name string, role Role, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("filter %d: nil constructor", id)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if existing, ok := registry[id]; ok {
		return fmt.Errorf("filter %d already registered as %q", id, existing.info.Name)
	}
	registry[id] = registration{
		info: Info{ID: id, Name: name, Role: role},
		ctor: ctor,
	}

	return nil
}

// Lookup returns the registration info of a filter.
func Lookup(id format.FilterID) (Info, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	reg, ok := registry[id]

	return reg.info, ok
}

// Available reports whether id has a registered implementation.
func Available(id format.FilterID) bool {
	_, ok := Lookup(id)
	return ok
}

// Registered lists all registered filters ordered by id.
func Registered() []Info {
	registryMu.RLock()
	infos := make([]Info, 0, len(registry))
	for _, reg := range registry {
		infos = append(infos, reg.info)
	}
	registryMu.RUnlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })

	return infos
}

func name(id format.FilterID) string {
	if info, ok := Lookup(id); ok {
		return info.Name
	}

	return fmt.Sprintf("#%d", id)
}

// New builds the filter described by spec for elements of elemSize bytes.
//
// Returns errs.ErrFilterUnavailable for unregistered ids and an error wrapping
// errs.ErrInvalidArgument when the parameters are rejected.
func New(spec Spec, elemSize int) (Filter, error) {
	registryMu.RLock()
	reg, ok := registry[spec.ID]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: id %d", errs.ErrFilterUnavailable, spec.ID)
	}

	f, err := reg.ctor(spec.Params, elemSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s filter: %v", errs.ErrInvalidArgument, reg.info.Name, err)
	}

	return f, nil
}

// Validate checks that spec names an available filter with acceptable
// parameters, without regard to the element size it will run on.
func Validate(spec Spec) error {
	_, err := New(spec, 1)
	return err
}
