package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	require.Equal(t, ID("temperature"), ID("temperature"))
	require.NotEqual(t, ID("temperature"), ID("pressure"))
	require.Equal(t, uint64(0xef46db3751d8e999), ID(""))
}

func TestSum64(t *testing.T) {
	require.Equal(t, ID("metadata"), Sum64([]byte("metadata")))
	require.Equal(t, uint64(0xef46db3751d8e999), Sum64(nil))
}
