package container

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bdlm/log"

	"github.com/arloliu/ncpipe/encoding"
	"github.com/arloliu/ncpipe/endian"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/internal/pool"
	"github.com/arloliu/ncpipe/section"
)

// records returns the persisted description of every variable, using the
// committed encoding records.
func (c *Container) records() ([]section.VarRecord, error) {
	records := make([]section.VarRecord, len(c.vars))
	for i, v := range c.vars {
		enc, ok := c.store.Record(i)
		if !ok {
			return nil, fmt.Errorf("%w: variable %q was never committed", errs.ErrNotFound, v.name)
		}
		records[i] = v.record(enc)
	}

	return records, nil
}

// writeFile rewrites the whole container through a temporary file.
func (c *Container) writeFile() error {
	records, err := c.records()
	if err != nil {
		return err
	}

	meta := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(meta)

	metadata, err := section.AppendMetadata(meta.Bytes(), records, c.engine)
	if err != nil {
		return err
	}
	meta.B = metadata

	header := section.NewHeader(c.kind)
	if endian.IsBigEndian(c.engine) {
		header.Flag.WithBigEndian()
	}
	header.VarCount = uint32(len(records))       //nolint: gosec
	header.MetadataLength = uint32(len(metadata)) //nolint: gosec
	header.DataOffset = uint64(section.MetadataOffset) + uint64(len(metadata))
	header.MetadataChecksum = section.MetadataChecksum(metadata)

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	buf.MustWrite(header.Bytes())
	buf.MustWrite(metadata)
	for _, v := range c.vars {
		for _, chunk := range v.chunks {
			buf.MustWrite(chunk)
		}
	}

	if err := c.replaceFile(buf); err != nil {
		return err
	}

	c.entry().WithFields(log.Fields{
		"vars":           len(records),
		"metadata_bytes": len(metadata),
		"file_bytes":     buf.Len(),
	}).Debug("container written")

	return nil
}

func (c *Container) replaceFile(buf *pool.ByteBuffer) (err error) {
	dir, base := filepath.Split(c.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".tmp*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = buf.WriteTo(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), c.path)
}

// load restores the container from file contents.
func (c *Container) load(data []byte) error {
	header, err := section.ParseHeader(data)
	if err != nil {
		return err
	}

	metaEnd := uint64(section.MetadataOffset) + uint64(header.MetadataLength)
	if metaEnd > uint64(len(data)) {
		return fmt.Errorf("%w: metadata extends past end of file", errs.ErrInvalidHeader)
	}
	metadata := data[section.MetadataOffset:metaEnd]
	if err := header.VerifyMetadata(metadata); err != nil {
		return err
	}

	c.kind = header.Flag.Kind()
	c.engine = header.Flag.GetEndianEngine()

	records, err := section.ParseMetadata(metadata, int(header.VarCount), c.engine)
	if err != nil {
		return err
	}

	payload := data[header.DataOffset:]
	var expected uint64
	for _, rec := range records {
		expected += rec.DataSize()
	}
	if expected != uint64(len(payload)) {
		return fmt.Errorf("%w: data section holds %d bytes, records describe %d",
			errs.ErrInvalidHeader, len(payload), expected)
	}

	c.vars = make([]*variable, 0, len(records))
	for i, rec := range records {
		v, err := c.loadVar(i, rec, payload)
		if err != nil {
			return fmt.Errorf("variable %q: %w", rec.Name, err)
		}
		payload = payload[rec.DataSize():]
		c.vars = append(c.vars, v)
	}

	return nil
}

func (c *Container) loadVar(id int, rec section.VarRecord, payload []byte) (*variable, error) {
	if rec.Length == 0 || rec.ChunkLength == 0 || rec.ChunkLength > rec.Length {
		return nil, fmt.Errorf("%w: length %d chunk length %d", errs.ErrInvalidRecord, rec.Length, rec.ChunkLength)
	}

	// The type-aware check runs first; the store then serves the committed state.
	if _, err := encoding.FromVarRecord(rec); err != nil {
		return nil, err
	}
	c.store.Put(id, rec.Encoding)
	state, err := c.store.Load(id)
	if err != nil {
		return nil, err
	}

	if err := c.names.Add(rec.Name, id); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidRecord, err)
	}

	v := &variable{
		name:        rec.Name,
		typ:         rec.DataType,
		length:      rec.Length,
		chunkLength: rec.ChunkLength,
		state:       state,
	}
	if len(rec.ChunkSizes) > 0 {
		v.chunks = make([][]byte, len(rec.ChunkSizes))
		off := 0
		for i, size := range rec.ChunkSizes {
			v.chunks[i] = payload[off : off+int(size) : off+int(size)]
			off += int(size)
		}
	}

	return v, nil
}
