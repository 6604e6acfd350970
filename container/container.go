package container

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bdlm/log"

	"github.com/arloliu/ncpipe/encoding"
	"github.com/arloliu/ncpipe/endian"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
	"github.com/arloliu/ncpipe/internal/nameindex"
	"github.com/arloliu/ncpipe/internal/options"
)

// Container is an open container file.
type Container struct {
	path     string
	kind     format.Kind
	engine   endian.EndianEngine
	writable bool
	defining bool
	closed   bool
	dirty    bool

	vars   []*variable
	names  *nameindex.Index
	store  *encoding.RecordStore
	logger *log.Logger
}

func newContainer(path string, cfg *Config) *Container {
	engine := endian.GetLittleEndianEngine()
	if cfg.bigEndian {
		engine = endian.GetBigEndianEngine()
	}

	return &Container{
		path:   path,
		kind:   cfg.kind,
		engine: engine,
		names:  nameindex.New(),
		store:  encoding.NewRecordStore(),
		logger: cfg.logger,
	}
}

// Create creates a new container at path in the definition phase.
//
// An existing file is replaced unless WithNoClobber is given. Nothing is
// written until EndDef, Sync or Close.
func Create(path string, opts ...Option) (*Container, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	flags := os.O_WRONLY | os.O_CREATE
	if cfg.noClobber {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrExists, path)
		}

		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	c := newContainer(path, cfg)
	c.writable = true
	c.defining = true
	c.dirty = true

	c.entry().WithFields(log.Fields{
		"format":     c.kind.String(),
		"big_endian": cfg.bigEndian,
	}).Debug("container created")

	return c, nil
}

// Open opens an existing container in the data phase.
//
// The container is read-only unless WithWrite is given.
func Open(path string, opts ...Option) (*Container, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := newContainer(path, cfg)
	c.writable = cfg.writable
	if err := c.load(data); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	c.entry().WithFields(log.Fields{
		"format":   c.kind.String(),
		"vars":     len(c.vars),
		"writable": c.writable,
	}).Debug("container opened")

	return c, nil
}

// Path returns the file path of the container.
func (c *Container) Path() string {
	return c.path
}

// Format returns the container format kind.
func (c *Container) Format() format.Kind {
	return c.kind
}

// BigEndian reports whether the container stores values big-endian.
func (c *Container) BigEndian() bool {
	return endian.IsBigEndian(c.engine)
}

// InDefineMode reports whether the container is in its definition phase.
func (c *Container) InDefineMode() bool {
	return c.defining
}

// Writable reports whether the container accepts changes.
func (c *Container) Writable() bool {
	return c.writable
}

// EndDef ends the definition phase, commits every variable's encoding state
// and writes the container.
func (c *Container) EndDef() error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if !c.defining {
		return errs.ErrNotInDefineMode
	}

	if err := c.commit(); err != nil {
		return err
	}
	if err := c.flush(); err != nil {
		return err
	}
	c.defining = false

	c.entry().Debug("definition phase ended")

	return nil
}

// Redef returns a writable container to the definition phase.
//
// Variables that already hold data keep their encoding configuration.
func (c *Container) Redef() error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if !c.writable {
		return errs.ErrReadOnly
	}
	if c.defining {
		return errs.ErrInDefineMode
	}

	c.defining = true
	c.entry().Debug("definition phase entered")

	return nil
}

// Sync writes pending changes to disk.
func (c *Container) Sync() error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if !c.writable {
		return errs.ErrReadOnly
	}
	if c.defining {
		return errs.ErrInDefineMode
	}

	return c.flush()
}

// Close ends the definition phase if needed, writes pending changes of a
// writable container and releases it.
func (c *Container) Close() error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	if c.writable {
		if c.defining {
			if err := c.commit(); err != nil {
				return err
			}
			c.defining = false
		}
		if err := c.flush(); err != nil {
			return err
		}
	}

	c.closed = true
	c.entry().Debug("container closed")

	return nil
}

func (c *Container) checkOpen() error {
	if c.closed {
		return errs.ErrClosed
	}

	return nil
}

// commit makes the current encoding state of every variable durable.
func (c *Container) commit() error {
	for i, v := range c.vars {
		if err := c.store.Commit(i, v.state); err != nil {
			return fmt.Errorf("commit %q: %w", v.name, err)
		}
	}
	c.dirty = true

	c.entry().WithField("vars", len(c.vars)).Debug("encoding states committed")

	return nil
}

func (c *Container) flush() error {
	if !c.dirty {
		return nil
	}
	if err := c.writeFile(); err != nil {
		return err
	}
	c.dirty = false

	return nil
}

func (c *Container) entry() *log.Entry {
	fields := log.Fields{"path": c.path}
	if c.logger != nil {
		return c.logger.WithFields(fields)
	}

	return log.WithFields(fields)
}
