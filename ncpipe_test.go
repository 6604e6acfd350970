package ncpipe

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ncpipe/container"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

func TestFacade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facade.ncp")

	c, err := Create(path, container.WithNoClobber())
	require.NoError(t, err)

	v, err := c.DefineVar("v", format.Double, 8)
	require.NoError(t, err)

	require.NoError(t, DefineFilter(c, v, format.FilterShuffle, nil))
	require.NoError(t, DefineFilter(c, v, format.FilterZstd, []uint32{3}))
	require.NoError(t, DefineQuantize(c, v, format.QuantizeBitGroom, 6))
	require.ErrorIs(t, DefineQuantize(c, container.Global, format.QuantizeBitGroom, 6), errs.ErrInvalidTarget)
	require.NoError(t, c.Close())

	_, err = Create(path, container.WithNoClobber())
	require.ErrorIs(t, err, errs.ErrExists)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	mode, nsd, err := InquireQuantize(r, v)
	require.NoError(t, err)
	require.Equal(t, format.QuantizeBitGroom, mode)
	require.Equal(t, 6, nsd)

	require.ErrorIs(t, DefineFilter(r, v, format.FilterDeflate, nil), errs.ErrTooLateToDefine)
}

func TestFilters(t *testing.T) {
	infos := Filters()

	ids := make([]format.FilterID, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.ID)
	}

	require.Subset(t, ids, []format.FilterID{
		format.FilterDeflate,
		format.FilterShuffle,
		format.FilterFletcher32,
		format.FilterLZ4,
		format.FilterZstd,
		format.FilterS2,
		format.FilterXXHash64,
	})
	require.IsIncreasing(t, ids)
}
