// Package profile summarizes where a frame's values are missing.
package profile

import (
	"sort"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// ColumnNulls returns one row per column of f with the columns
// column, rows_missing and percent_missing (a fraction in [0, 1]).
func ColumnNulls(f *fr.Frame) *fr.Frame {
	names := fr.NewStringColumn("column", 0)
	missing := fr.NewIntColumn("rows_missing", 0)
	pct := fr.NewFloatColumn("percent_missing", 0)
	for _, c := range f.Columns() {
		n := fr.NullCount(c)
		names.Append(c.Name())
		missing.Append(int64(n))
		pct.Append(fraction(n, f.Rows()))
	}
	out, _ := fr.FromColumns(names, missing, pct)
	return out
}

// RowNulls groups the rows of f by how many of their cells are missing. Each
// output row holds columns_missing, percent_missing and the number of rows
// sharing them, ordered by columns_missing.
func RowNulls(f *fr.Frame) *fr.Frame {
	counts := map[int]int{}
	for i := 0; i < f.Rows(); i++ {
		counts[f.Cols()-f.RowNonNullCount(i)]++
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	missing := fr.NewIntColumn("columns_missing", 0)
	pct := fr.NewFloatColumn("percent_missing", 0)
	rows := fr.NewIntColumn("rows", 0)
	for _, k := range keys {
		missing.Append(int64(k))
		pct.Append(fraction(k, f.Cols()))
		rows.Append(int64(counts[k]))
	}
	out, _ := fr.FromColumns(missing, pct, rows)
	return out
}

func fraction(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of)
}
