package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

func sample(t *testing.T) *fr.Frame {
	t.Helper()
	a := fr.NewFloatColumn("a", 0)
	b := fr.NewStringColumn("b", 0)
	a.Append(1)
	b.AppendNull()
	a.AppendNull()
	b.AppendNull()
	a.Append(3)
	b.Append("x")
	a.Append(4)
	b.AppendNull()
	f, err := fr.FromColumns(a, b)
	require.NoError(t, err)
	return f
}

func values(t *testing.T, f *fr.Frame, name string) []any {
	t.Helper()
	col, ok := f.ColumnByName(name)
	require.True(t, ok)
	out := make([]any, col.Len())
	for i := range out {
		out[i], _ = col.Value(i)
	}
	return out
}

func TestColumnNulls(t *testing.T) {
	out := ColumnNulls(sample(t))
	assert.Equal(t, []any{"a", "b"}, values(t, out, "column"))
	assert.Equal(t, []any{int64(1), int64(3)}, values(t, out, "rows_missing"))
	assert.Equal(t, []any{0.25, 0.75}, values(t, out, "percent_missing"))
}

func TestRowNulls(t *testing.T) {
	out := RowNulls(sample(t))
	assert.Equal(t, []any{int64(0), int64(1), int64(2)}, values(t, out, "columns_missing"))
	assert.Equal(t, []any{0.0, 0.5, 1.0}, values(t, out, "percent_missing"))
	assert.Equal(t, []any{int64(1), int64(2), int64(1)}, values(t, out, "rows"))
}
