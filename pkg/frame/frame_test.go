package frame

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFrame(rows int) *Frame {
	s := Schema{Columns: []ColumnSchema{
		{Name: "a", Type: KindFloat, Nullable: true},
		{Name: "b", Type: KindInt, Nullable: true},
		{Name: "s", Type: KindString, Nullable: true},
	}}
	f := NewFrame(s)
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "a", float64(i%100))
		_ = f.SetCell(i, "b", int64(i%10))
		_ = f.SetCell(i, "s", "x")
	}
	return f
}

func TestSetCellCoerces(t *testing.T) {
	s := Schema{Columns: []ColumnSchema{
		{Name: "f", Type: KindFloat}, {Name: "i", Type: KindInt},
		{Name: "b", Type: KindBool}, {Name: "s", Type: KindString},
		{Name: "t", Type: KindTime},
	}}
	f := NewFrame(s)
	f.AppendNullRow()
	require.NoError(t, f.SetCell(0, "f", "2.5"))
	require.NoError(t, f.SetCell(0, "i", 7))
	require.NoError(t, f.SetCell(0, "b", "true"))
	require.NoError(t, f.SetCell(0, "s", 12))
	require.NoError(t, f.SetCell(0, "t", "2017-01-02"))

	v, ok, err := f.Cell(0, "f")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
	v, _, _ = f.Cell(0, "i")
	assert.Equal(t, int64(7), v)
	v, _, _ = f.Cell(0, "b")
	assert.Equal(t, true, v)
	v, _, _ = f.Cell(0, "s")
	assert.Equal(t, "12", v)
	v, _, _ = f.Cell(0, "t")
	assert.Equal(t, 2017, v.(time.Time).Year())

	require.NoError(t, f.SetCell(0, "f", nil))
	_, ok, _ = f.Cell(0, "f")
	assert.False(t, ok)

	assert.Error(t, f.SetCell(0, "i", "abc"))
	var se *SchemaError
	assert.True(t, errors.As(f.SetCell(0, "missing", 1), &se))
}

func TestTakeIsDeepAndOrdered(t *testing.T) {
	f := makeFrame(5)
	sub := f.Take([]int{4, 1})
	require.Equal(t, 2, sub.Rows())
	v, _, _ := sub.Cell(0, "a")
	assert.Equal(t, 4.0, v)
	v, _, _ = sub.Cell(1, "a")
	assert.Equal(t, 1.0, v)

	require.NoError(t, sub.SetCell(0, "a", nil))
	_, ok, _ := f.Cell(4, "a")
	assert.True(t, ok, "take must not share storage with the source")
}

func TestCloneSelectDrop(t *testing.T) {
	f := makeFrame(3)
	c := f.Clone()
	require.NoError(t, c.SetCell(0, "s", "changed"))
	v, _, _ := f.Cell(0, "s")
	assert.Equal(t, "x", v)

	sel, err := f.Select("s", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"s", "a"}, sel.Names())

	d, err := f.Drop("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "s"}, d.Names())
	assert.Equal(t, 3, d.Rows())

	_, err = f.Drop("nope")
	var se *SchemaError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "nope", se.Column)
}

func TestFromColumnsAndCounts(t *testing.T) {
	a := NewFloatColumn("a", 0)
	a.Append(1)
	a.AppendNull()
	a.Append(3)
	b := NewStringColumn("b", 0)
	b.AppendNull()
	b.AppendNull()
	b.Append("z")
	f, err := FromColumns(a, b)
	require.NoError(t, err)
	n, err := f.NonNullCount("a")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, f.RowNonNullCount(1))
	assert.Equal(t, 2, f.RowNonNullCount(2))

	short := NewIntColumn("c", 1)
	_, err = FromColumns(a, short)
	assert.Error(t, err)
	assert.Error(t, f.AddColumn(short))
}

func TestFloat64s(t *testing.T) {
	c := NewIntColumn("n", 0)
	c.Append(2)
	c.AppendNull()
	vals, err := Float64s(c)
	require.NoError(t, err)
	assert.Equal(t, 2.0, vals[0])
	assert.True(t, math.IsNaN(vals[1]))

	_, err = Float64s(NewStringColumn("s", 1))
	assert.Error(t, err)
}
