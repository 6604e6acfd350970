package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type chunkConfig struct {
	chunkLength int
	name        string
}

func withChunkLength(n int) Option[*chunkConfig] {
	return New(func(c *chunkConfig) error {
		if n <= 0 {
			return errors.New("chunk length must be positive")
		}
		c.chunkLength = n

		return nil
	})
}

func withName(name string) Option[*chunkConfig] {
	return NoError(func(c *chunkConfig) {
		c.name = name
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &chunkConfig{}
		err := Apply(cfg, withChunkLength(16), withName("a"), withName("b"))
		require.NoError(t, err)
		require.Equal(t, 16, cfg.chunkLength)
		require.Equal(t, "b", cfg.name)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &chunkConfig{}
		err := Apply(cfg, withName("a"), withChunkLength(0), withName("b"))
		require.EqualError(t, err, "chunk length must be positive")
		require.Equal(t, "a", cfg.name)
		require.Zero(t, cfg.chunkLength)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &chunkConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, chunkConfig{}, *cfg)
	})

	t.Run("nil options are skipped", func(t *testing.T) {
		cfg := &chunkConfig{}
		require.NoError(t, Apply[*chunkConfig](cfg, nil, withName("x")))
		require.Equal(t, "x", cfg.name)
	})
}
