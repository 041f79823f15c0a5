package csvio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

const mallCSV = "\ufeffcustomer_id,gender,age,annual_income,member,joined\n" +
	"1,Male,19,15.5,true,2017-01-02\n" +
	"2,Female,,16,false,2017-03-04\n" +
	"3,Female,20,,,\n"

func TestInferAndRead(t *testing.T) {
	r := NewReaderFrom(strings.NewReader(mallCSV), ReaderOptions{HasHeader: true})
	schema, err := r.InferSchema()
	require.NoError(t, err)
	kinds := map[string]fr.Kind{}
	for _, cs := range schema.Columns {
		kinds[cs.Name] = cs.Type
	}
	assert.Equal(t, map[string]fr.Kind{
		"customer_id":   fr.KindInt,
		"gender":        fr.KindString,
		"age":           fr.KindInt,
		"annual_income": fr.KindFloat,
		"member":        fr.KindBool,
		"joined":        fr.KindTime,
	}, kinds)

	f, err := r.ReadAll(schema)
	require.NoError(t, err)
	require.Equal(t, 3, f.Rows())
	_, ok, _ := f.Cell(1, "age")
	assert.False(t, ok)
	v, ok, _ := f.Cell(1, "annual_income")
	require.True(t, ok)
	assert.Equal(t, 16.0, v)
	v, _, _ = f.Cell(0, "joined")
	assert.Equal(t, time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC), v)
	assert.Empty(t, r.Warnings())
}

func TestShortRecords(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("a,b\n1,2\n3\n"), ReaderOptions{HasHeader: true})
	schema, err := r.InferSchema()
	require.NoError(t, err)
	f, err := r.ReadAll(schema)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Rows())
	assert.Equal(t, "short_records=1", r.Warnings())

	r = NewReaderFrom(strings.NewReader("a,b\n1,2\n3\n"), ReaderOptions{HasHeader: true, Strict: true})
	schema, err = r.InferSchema()
	require.NoError(t, err)
	_, err = r.ReadAll(schema)
	assert.Error(t, err)
}

func TestWriteThenReadGzip(t *testing.T) {
	src := NewReaderFrom(strings.NewReader(mallCSV), ReaderOptions{HasHeader: true})
	schema, err := src.InferSchema()
	require.NoError(t, err)
	f, err := src.ReadAll(schema)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mall.csv.gz")
	require.NoError(t, WriteAll(path, f, WriterOptions{}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])

	back, err := ReadFile(path, ReaderOptions{HasHeader: true})
	require.NoError(t, err)
	assert.Equal(t, f.Schema(), back.Schema())
	assert.Equal(t, f.Rows(), back.Rows())
	for _, name := range f.Names() {
		for i := 0; i < f.Rows(); i++ {
			want, wok, _ := f.Cell(i, name)
			got, gok, _ := back.Cell(i, name)
			assert.Equal(t, wok, gok, "%s[%d]", name, i)
			assert.Equal(t, want, got, "%s[%d]", name, i)
		}
	}
}

func TestNonFiniteFloatsRoundTrip(t *testing.T) {
	c := fr.NewFloatColumn("logerror", 4)
	c.Set(0, math.NaN())
	c.Set(1, 0.25)
	c.SetNull(2)
	c.Set(3, math.Inf(-1))
	in, err := fr.FromColumns(c)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nan.csv")
	require.NoError(t, WriteAll(path, in, WriterOptions{}))
	out, err := ReadFile(path, ReaderOptions{HasHeader: true})
	require.NoError(t, err)

	col, ok := out.ColumnByName("logerror")
	require.True(t, ok)
	require.Equal(t, fr.KindFloat, col.Kind())
	fc := col.(*fr.FloatColumn)
	v, ok := fc.Get(0)
	assert.True(t, ok)
	assert.True(t, math.IsNaN(v))
	v, _ = fc.Get(1)
	assert.Equal(t, 0.25, v)
	assert.True(t, fc.IsNull(2))
	v, ok = fc.Get(3)
	assert.True(t, ok)
	assert.True(t, math.IsInf(v, -1))
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', sniffDelimiter([]byte("a;b;c\n1,5;2;3")))
	assert.Equal(t, '\t', sniffDelimiter([]byte("a\tb\n")))
	assert.Equal(t, ',', sniffDelimiter(nil))
}
