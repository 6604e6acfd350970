package section

import (
	"fmt"

	"github.com/arloliu/ncpipe/endian"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/internal/hash"
)

// AppendMetadata appends the metadata section for records to buf.
func AppendMetadata(buf []byte, records []VarRecord, engine endian.EndianEngine) ([]byte, error) {
	var err error
	for i := range records {
		if buf, err = records[i].AppendTo(buf, engine); err != nil {
			return buf, fmt.Errorf("variable %d: %w", i, err)
		}
	}

	return buf, nil
}

// ParseMetadata decodes count VarRecords from the metadata section.
//
// The whole section must be consumed; trailing bytes are reported as
// ErrInvalidRecord.
func ParseMetadata(data []byte, count int, engine endian.EndianEngine) ([]VarRecord, error) {
	records := make([]VarRecord, 0, min(count, len(data)))
	off := 0
	for i := 0; i < count; i++ {
		rec, n, err := ParseVarRecord(data[off:], engine)
		if err != nil {
			return nil, fmt.Errorf("variable %d: %w", i, err)
		}
		records = append(records, rec)
		off += n
	}
	if off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing metadata bytes", errs.ErrInvalidRecord, len(data)-off)
	}

	return records, nil
}

// MetadataChecksum returns the checksum stored in the header for a metadata
// section.
func MetadataChecksum(metadata []byte) uint64 {
	return hash.Sum64(metadata)
}

// VerifyMetadata checks metadata against the header's length and checksum.
func (h *Header) VerifyMetadata(metadata []byte) error {
	if uint64(len(metadata)) != uint64(h.MetadataLength) {
		return fmt.Errorf("%w: metadata length %d, header says %d", errs.ErrInvalidHeader, len(metadata), h.MetadataLength)
	}
	if MetadataChecksum(metadata) != h.MetadataChecksum {
		return fmt.Errorf("%w: metadata", errs.ErrChecksumMismatch)
	}

	return nil
}
