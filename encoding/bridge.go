package encoding

import (
	"fmt"
	"sync"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/section"
)

// Bridge makes encoding states durable.
//
// Load of a committed id must return a State equal to the one committed.
type Bridge interface {
	Commit(id int, s *State) error
	Load(id int) (*State, error)
}

// RecordStore is a Bridge that keeps committed states as encoding records.
type RecordStore struct {
	mu      sync.RWMutex
	records map[int]section.EncodingRecord
}

var _ Bridge = (*RecordStore)(nil)

// NewRecordStore creates an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[int]section.EncodingRecord)}
}

// Commit stores the persisted form of s under id, replacing any earlier record.
func (rs *RecordStore) Commit(id int, s *State) error {
	if s == nil {
		return fmt.Errorf("%w: nil state", errs.ErrInvalidArgument)
	}
	if id < 0 {
		return errs.ErrInvalidTarget
	}

	rec := s.Record()

	rs.mu.Lock()
	rs.records[id] = rec
	rs.mu.Unlock()

	return nil
}

// Load rebuilds the state last committed under id.
func (rs *RecordStore) Load(id int) (*State, error) {
	rs.mu.RLock()
	rec, ok := rs.records[id]
	rs.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: no encoding record for variable %d", errs.ErrNotFound, id)
	}

	return FromRecord(rec)
}

// Record returns a copy of the record committed under id.
func (rs *RecordStore) Record(id int) (section.EncodingRecord, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	rec, ok := rs.records[id]
	if !ok {
		return section.EncodingRecord{}, false
	}

	return rec.Clone(), true
}

// Put stores a record read from a file.
func (rs *RecordStore) Put(id int, rec section.EncodingRecord) {
	rs.mu.Lock()
	rs.records[id] = rec.Clone()
	rs.mu.Unlock()
}

// Len returns the number of committed records.
func (rs *RecordStore) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	return len(rs.records)
}
