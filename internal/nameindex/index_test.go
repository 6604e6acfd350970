package nameindex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/internal/hash"
)

func TestIndex_AddLookup(t *testing.T) {
	x := New()
	require.NoError(t, x.Add("temperature", 0))
	require.NoError(t, x.Add("pressure", 1))
	require.Equal(t, 2, x.Count())

	id, ok := x.Lookup("pressure")
	require.True(t, ok)
	require.Equal(t, 1, id)

	_, ok = x.Lookup("humidity")
	require.False(t, ok)
}

func TestIndex_Errors(t *testing.T) {
	x := New()
	require.ErrorIs(t, x.Add("", 0), errs.ErrInvalidName)

	require.NoError(t, x.Add("temperature", 0))
	require.ErrorIs(t, x.Add("temperature", 1), errs.ErrNameInUse)
	require.Equal(t, 1, x.Count())
}

func TestIndex_Collision(t *testing.T) {
	x := New()
	// Force two names into one bucket to exercise the collision path.
	h := hash.ID("alpha")
	x.buckets[h] = []entry{{name: "beta", id: 7}}
	x.count = 1

	require.NoError(t, x.Add("alpha", 8))
	require.Equal(t, 1, x.Collisions())

	id, ok := x.Lookup("alpha")
	require.True(t, ok)
	require.Equal(t, 8, id)
}

func TestIndex_Reset(t *testing.T) {
	x := New()
	require.NoError(t, x.Add("a", 0))
	x.Reset()
	require.Equal(t, 0, x.Count())
	_, ok := x.Lookup("a")
	require.False(t, ok)
}
