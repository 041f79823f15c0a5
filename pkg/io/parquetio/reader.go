// Package parquetio reads and writes frames as Parquet files.
package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	parquet "github.com/segmentio/parquet-go"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// ReadFile loads a flat Parquet file into a Frame. Column order follows the
// file schema. UTF8 columns whose values are all RFC 3339 timestamps are read
// back as time columns, mirroring how WriteAll stores them.
func ReadFile(path string) (*fr.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("parquetio: open %s: %w", path, err)
	}

	fields := pf.Schema().Fields()
	schema := fr.Schema{Columns: make([]fr.ColumnSchema, len(fields))}
	for i, fd := range fields {
		schema.Columns[i] = fr.ColumnSchema{Name: fd.Name(), Type: kindOf(fd.Type().Kind()), Nullable: true}
	}
	out := fr.NewFrame(schema)

	r := parquet.NewReader(pf)
	defer func() { _ = r.Close() }()
	buf := make([]parquet.Row, 1024)
	for {
		n, err := r.ReadRows(buf)
		for _, row := range buf[:n] {
			out.AppendNullRow()
			setRow(out, out.Rows()-1, schema, row)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parquetio: read %s: %w", path, err)
		}
		if n == 0 {
			break
		}
	}
	return retypeTimes(out)
}

func kindOf(k parquet.Kind) fr.Kind {
	switch k {
	case parquet.Boolean:
		return fr.KindBool
	case parquet.Int32, parquet.Int64:
		return fr.KindInt
	case parquet.Float, parquet.Double:
		return fr.KindFloat
	}
	return fr.KindString
}

func setRow(f *fr.Frame, row int, schema fr.Schema, values parquet.Row) {
	for _, v := range values {
		c := v.Column()
		if c < 0 || c >= len(schema.Columns) || v.IsNull() {
			continue
		}
		name := schema.Columns[c].Name
		switch v.Kind() {
		case parquet.Boolean:
			_ = f.SetCell(row, name, v.Boolean())
		case parquet.Int32:
			_ = f.SetCell(row, name, int64(v.Int32()))
		case parquet.Int64:
			_ = f.SetCell(row, name, v.Int64())
		case parquet.Float:
			_ = f.SetCell(row, name, float64(v.Float()))
		case parquet.Double:
			_ = f.SetCell(row, name, v.Double())
		default:
			_ = f.SetCell(row, name, string(v.ByteArray()))
		}
	}
}

func retypeTimes(f *fr.Frame) (*fr.Frame, error) {
	for _, col := range f.Columns() {
		sc, ok := col.(*fr.StringColumn)
		if !ok || fr.NullCount(sc) == sc.Len() {
			continue
		}
		tc := fr.NewTimeColumn(sc.Name(), sc.Len())
		all := true
		for i := 0; i < sc.Len() && all; i++ {
			s, ok := sc.Get(i)
			if !ok {
				tc.SetNull(i)
				continue
			}
			t, err := time.Parse(fr.FormatTime, s)
			if err != nil {
				all = false
				break
			}
			tc.Set(i, t)
		}
		if all {
			if err := f.ReplaceColumn(tc); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
