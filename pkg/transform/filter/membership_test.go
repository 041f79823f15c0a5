package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

func propertyFrame(t *testing.T) *fr.Frame {
	t.Helper()
	desc := fr.NewStringColumn("propertylandusedesc", 0)
	units := fr.NewFloatColumn("unitcnt", 0)
	id := fr.NewIntColumn("parcelid", 0)
	rows := []struct {
		desc  any
		units any
	}{
		{"Single Family Residential", 1.0},
		{"Duplex", 2.0},
		{"Condominium", nil},
		{nil, 1.0},
		{"Townhouse", 3.0},
		{"Cluster Home", 1.0},
	}
	for i, r := range rows {
		id.Append(int64(i))
		if r.desc == nil {
			desc.AppendNull()
		} else {
			desc.Append(r.desc.(string))
		}
		if r.units == nil {
			units.AppendNull()
		} else {
			units.Append(r.units.(float64))
		}
	}
	f, err := fr.FromColumns(id, desc, units)
	require.NoError(t, err)
	return f
}

func ids(f *fr.Frame) []int64 {
	col, _ := f.ColumnByName("parcelid")
	c := col.(*fr.IntColumn)
	out := make([]int64, c.Len())
	for i := range out {
		out[i], _ = c.Get(i)
	}
	return out
}

func TestMembershipWithCount(t *testing.T) {
	f := propertyFrame(t)
	tf := &Membership{
		Column:      "propertylandusedesc",
		Values:      []string{"Single Family Residential", "Condominium", "Townhouse", "Cluster Home"},
		CountColumn: "unitcnt",
		Count:       1,
	}
	out, err := tf.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2, 5}, ids(out))
	assert.Equal(t, 6, f.Rows(), "input must be left untouched")
}

func TestMembershipWithoutCount(t *testing.T) {
	tf := &Membership{Column: "propertylandusedesc", Values: []string{"Duplex", "Townhouse"}}
	out, err := tf.Apply(context.Background(), propertyFrame(t))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, ids(out))
}

func TestMembershipSchemaErrors(t *testing.T) {
	f := propertyFrame(t)
	var se *fr.SchemaError

	_, err := (&Membership{Column: "nope"}).Apply(context.Background(), f)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "nope", se.Column)

	_, err = (&Membership{Column: "propertylandusedesc", CountColumn: "units"}).Apply(context.Background(), f)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "units", se.Column)

	_, err = (&Membership{Column: "unitcnt"}).Apply(context.Background(), f)
	assert.Error(t, err)
}
