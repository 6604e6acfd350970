package container

import (
	"fmt"

	"github.com/bdlm/log"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
	"github.com/arloliu/ncpipe/internal/options"
)

// DefaultChunkLength is the number of elements per chunk when a variable is
// defined without WithChunkLength.
const DefaultChunkLength = 4096

// Config holds the settings applied by Create and Open.
type Config struct {
	kind      format.Kind
	bigEndian bool
	noClobber bool
	writable  bool
	logger    *log.Logger
}

// Option configures Create and Open.
type Option = options.Option[*Config]

func newConfig() *Config {
	return &Config{kind: format.Enhanced}
}

// WithFormat selects the container format kind for Create. The default is
// format.Enhanced. Open takes the kind from the file and ignores this option.
func WithFormat(kind format.Kind) Option {
	return options.New(func(c *Config) error {
		switch kind {
		case format.Classic, format.Enhanced:
			c.kind = kind
			return nil
		default:
			return fmt.Errorf("%w: format kind %d", errs.ErrInvalidArgument, kind)
		}
	})
}

// WithLittleEndian stores metadata and values little-endian. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = false
	})
}

// WithBigEndian stores metadata and values big-endian.
// It rarely needs to be used unless interoperability with big-endian systems is required.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = true
	})
}

// WithNoClobber makes Create fail with errs.ErrExists instead of replacing an
// existing file.
func WithNoClobber() Option {
	return options.NoError(func(c *Config) {
		c.noClobber = true
	})
}

// WithWrite opens an existing container for writing.
func WithWrite() Option {
	return options.NoError(func(c *Config) {
		c.writable = true
	})
}

// WithLogger sets the logger used for lifecycle and I/O events. By default
// the package-level bdlm/log logger is used.
func WithLogger(logger *log.Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = logger
	})
}

type varConfig struct {
	chunkLength uint64
}

// VarOption configures DefineVar.
type VarOption = options.Option[*varConfig]

// WithChunkLength sets the number of elements per stored chunk.
func WithChunkLength(n int) VarOption {
	return options.New(func(c *varConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: chunk length %d", errs.ErrInvalidArgument, n)
		}
		c.chunkLength = uint64(n)

		return nil
	})
}
