package outliers

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

func TestQuantileLinear(t *testing.T) {
	xs := []float64{100, 1, 3, 2, 4}
	assert.Equal(t, 2.0, Quantile(xs, 0.25))
	assert.Equal(t, 4.0, Quantile(xs, 0.75))
	assert.Equal(t, 2.5, Quantile([]float64{1, 2, 3, 4}, 0.5))
	assert.InDelta(t, 1.75, Quantile([]float64{1, 2, 3, 4}, 0.25), 1e-12)
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.Equal(t, 3.0, Quantile([]float64{math.NaN(), 3}, 0.9))
}

func TestQuantileOutOfRange(t *testing.T) {
	xs := []float64{1, 2, 3}
	for _, q := range []float64{1.5, -0.1, math.NaN()} {
		assert.True(t, math.IsNaN(Quantile(xs, q)), "q=%v", q)
	}
	assert.Equal(t, 3.0, Quantile(xs, 1))
	assert.Equal(t, 1.0, Quantile(xs, 0))
}

func TestUpperExcess(t *testing.T) {
	got := UpperExcess([]float64{1, 2, 3, 4, 100}, 1.5)
	// Q1=2, Q3=4, IQR=2, upper fence 7.
	assert.Equal(t, []float64{0, 0, 0, 0, 93}, got)
}

func TestLowerExcessAddsFence(t *testing.T) {
	// Q1=2, Q3=4, lower fence -1; result is min(v + -1, 0).
	got := LowerExcess([]float64{1, 2, 3, 4, 100}, 1.5)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, got)

	// Q1 = -30 + 0.75*40 = 0, so with k=0 the fence is 0.
	got = LowerExcess([]float64{10, 10, 10, -30}, 0)
	assert.Equal(t, []float64{0, 0, 0, -30}, got)
}

func TestExcessTransform(t *testing.T) {
	c := fr.NewIntColumn("annual_income", 0)
	for _, v := range []int64{1, 2, 3, 4, 100} {
		c.Append(v)
	}
	c.AppendNull()
	f, err := fr.FromColumns(c)
	require.NoError(t, err)

	out, err := (&Excess{Column: "annual_income", K: 1.5}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"annual_income", "annual_income_upper_outliers", "annual_income_lower_outliers"}, out.Names())
	v, ok, _ := out.Cell(4, "annual_income_upper_outliers")
	require.True(t, ok)
	assert.Equal(t, 93.0, v)
	_, ok, _ = out.Cell(5, "annual_income_upper_outliers")
	assert.False(t, ok)
	assert.Equal(t, 1, f.Cols())

	_, err = (&Excess{Column: "age"}).Apply(context.Background(), f)
	var se *fr.SchemaError
	assert.True(t, errors.As(err, &se))
}

func TestCap(t *testing.T) {
	c := fr.NewFloatColumn("x", 0)
	for _, v := range []float64{1, 2, 3, 4, 100} {
		c.Append(v)
	}
	f, err := fr.FromColumns(c)
	require.NoError(t, err)
	out, err := (&Cap{Column: "x", K: 1.5}).Apply(context.Background(), f)
	require.NoError(t, err)
	v, _, _ := out.Cell(4, "x")
	assert.Equal(t, 7.0, v)
	v, _, _ = f.Cell(4, "x")
	assert.Equal(t, 100.0, v)
}
