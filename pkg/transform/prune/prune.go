// Package prune drops sparse columns and rows.
package prune

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// Threshold converts a density into the minimum non-null count out of n.
// Halves round to even.
func Threshold(density float64, n int) int {
	return int(math.RoundToEven(density * float64(n)))
}

// Prune drops every column with fewer than Threshold(minColumnDensity, rows)
// present values, then every row with fewer than
// Threshold(minRowDensity, remaining columns) present values.
func Prune(f *fr.Frame, minColumnDensity, minRowDensity float64) (*fr.Frame, error) {
	if err := checkDensity("min_column_density", minColumnDensity); err != nil {
		return nil, err
	}
	if err := checkDensity("min_row_density", minRowDensity); err != nil {
		return nil, err
	}

	colThresh := Threshold(minColumnDensity, f.Rows())
	var drop []string
	for _, c := range f.Columns() {
		if c.Len()-fr.NullCount(c) < colThresh {
			drop = append(drop, c.Name())
		}
	}
	narrowed, err := f.Drop(drop...)
	if err != nil {
		return nil, err
	}

	rowThresh := Threshold(minRowDensity, narrowed.Cols())
	keep := make([]int, 0, narrowed.Rows())
	for i := 0; i < narrowed.Rows(); i++ {
		if narrowed.RowNonNullCount(i) >= rowThresh {
			keep = append(keep, i)
		}
	}
	slog.Debug("pruned sparse data",
		"column_threshold", colThresh, "dropped_columns", drop,
		"row_threshold", rowThresh, "dropped_rows", narrowed.Rows()-len(keep))
	return narrowed.Take(keep), nil
}

func checkDensity(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return &fr.InvalidConfigError{Field: field, Reason: fmt.Sprintf("%v outside [0, 1]", v)}
	}
	return nil
}

// Sparsity is the Transform form of Prune.
type Sparsity struct {
	MinColumnDensity float64
	MinRowDensity    float64
}

func (t *Sparsity) Name() string { return "prune_sparse" }

func (t *Sparsity) Apply(ctx context.Context, f *fr.Frame) (*fr.Frame, error) {
	return Prune(f, t.MinColumnDensity, t.MinRowDensity)
}

// DropColumns removes the named columns; each must exist.
type DropColumns struct{ Columns []string }

func (t *DropColumns) Name() string { return "drop_columns" }

func (t *DropColumns) Apply(ctx context.Context, f *fr.Frame) (*fr.Frame, error) {
	out, err := f.Drop(t.Columns...)
	if err != nil {
		return nil, err
	}
	// Drop shares columns; copy so callers may mutate the result freely.
	return out.Clone(), nil
}
