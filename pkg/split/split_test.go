package split

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

func idFrame(t *testing.T, n int) *fr.Frame {
	t.Helper()
	c := fr.NewIntColumn("id", 0)
	for i := 0; i < n; i++ {
		c.Append(int64(i))
	}
	f, err := fr.FromColumns(c)
	require.NoError(t, err)
	return f
}

func ids(f *fr.Frame) []int {
	col, _ := f.ColumnByName("id")
	c := col.(*fr.IntColumn)
	out := make([]int, c.Len())
	for i := range out {
		v, _ := c.Get(i)
		out[i] = int(v)
	}
	return out
}

func TestRandomSplitIsDisjointAndComplete(t *testing.T) {
	f := idFrame(t, 100)
	p, err := Default().Split(f)
	require.NoError(t, err)

	tr, va, te := p.Rows()
	assert.Equal(t, 20, te)
	assert.Equal(t, 24, va)
	assert.Equal(t, 56, tr)

	all := append(append(ids(p.Train), ids(p.Validate)...), ids(p.Test)...)
	sort.Ints(all)
	for i, v := range all {
		require.Equal(t, i, v)
	}
}

func TestRandomSplitDeterministic(t *testing.T) {
	f := idFrame(t, 37)
	a, err := (&Random{TestRatio: 0.25, ValidateRatio: 0.25, Seed: 9}).Split(f)
	require.NoError(t, err)
	b, err := (&Random{TestRatio: 0.25, ValidateRatio: 0.25, Seed: 9}).Split(f)
	require.NoError(t, err)
	assert.Equal(t, ids(a.Train), ids(b.Train))
	assert.Equal(t, ids(a.Test), ids(b.Test))
}

func TestRandomSplitEdgeCases(t *testing.T) {
	p, err := Default().Split(idFrame(t, 0))
	require.NoError(t, err)
	tr, va, te := p.Rows()
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{tr, va, te})

	p, err = (&Random{}).Split(idFrame(t, 5))
	require.NoError(t, err)
	tr, va, te = p.Rows()
	assert.Equal(t, [3]int{5, 0, 0}, [3]int{tr, va, te})

	var ice *fr.InvalidConfigError
	_, err = (&Random{TestRatio: 1}).Split(idFrame(t, 5))
	assert.True(t, errors.As(err, &ice))
	_, err = (&Random{ValidateRatio: -0.5}).Split(idFrame(t, 5))
	assert.True(t, errors.As(err, &ice))
}
