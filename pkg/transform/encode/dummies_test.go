package encode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

func customers(t *testing.T) *fr.Frame {
	t.Helper()
	id := fr.NewIntColumn("customer_id", 0)
	g := fr.NewStringColumn("gender", 0)
	for i, v := range []string{"Male", "Female", "", "Female"} {
		id.Append(int64(i + 1))
		if v == "" {
			g.AppendNull()
		} else {
			g.Append(v)
		}
	}
	f, err := fr.FromColumns(id, g)
	require.NoError(t, err)
	return f
}

func column(t *testing.T, f *fr.Frame, name string) []int64 {
	t.Helper()
	col, ok := f.ColumnByName(name)
	require.True(t, ok, "missing %s", name)
	c := col.(*fr.IntColumn)
	out := make([]int64, c.Len())
	for i := range out {
		v, ok := c.Get(i)
		require.True(t, ok)
		out[i] = v
	}
	return out
}

func TestDummies(t *testing.T) {
	out, err := (&Dummies{Columns: []string{"gender"}}).Apply(context.Background(), customers(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_id", "gender_Female", "gender_Male"}, out.Names())
	assert.Equal(t, []int64{0, 1, 0, 1}, column(t, out, "gender_Female"))
	assert.Equal(t, []int64{1, 0, 0, 0}, column(t, out, "gender_Male"))
}

func TestDummiesDropFirst(t *testing.T) {
	f := customers(t)
	out, err := (&Dummies{Columns: []string{"gender"}, DropFirst: true}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_id", "gender_Male"}, out.Names())
	assert.True(t, f.HasColumn("gender"))
}

func TestDummiesErrors(t *testing.T) {
	_, err := (&Dummies{Columns: []string{"sex"}}).Apply(context.Background(), customers(t))
	var se *fr.SchemaError
	assert.True(t, errors.As(err, &se))

	_, err = (&Dummies{Columns: []string{"customer_id"}}).Apply(context.Background(), customers(t))
	assert.Error(t, err)
}
