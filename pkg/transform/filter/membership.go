// Package filter restricts frames to the rows matching a predicate.
package filter

import (
	"context"
	"fmt"
	"math"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// Membership keeps rows whose Column value is one of Values. When
// CountColumn is set, the row must also hold Count in that column or have
// it missing.
type Membership struct {
	Column      string
	Values      []string
	CountColumn string
	Count       float64
}

func (t *Membership) Name() string { return "filter_membership" }

func (t *Membership) Apply(ctx context.Context, f *fr.Frame) (*fr.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return nil, &fr.SchemaError{Op: t.Name(), Column: t.Column}
	}
	sc, ok := col.(*fr.StringColumn)
	if !ok {
		return nil, fmt.Errorf("%s: column %s is %s, want string", t.Name(), t.Column, col.Kind())
	}
	var counts []float64
	if t.CountColumn != "" {
		cc, ok := f.ColumnByName(t.CountColumn)
		if !ok {
			return nil, &fr.SchemaError{Op: t.Name(), Column: t.CountColumn}
		}
		var err error
		if counts, err = fr.Float64s(cc); err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
	}

	allowed := make(map[string]struct{}, len(t.Values))
	for _, v := range t.Values {
		allowed[v] = struct{}{}
	}
	keep := make([]int, 0, f.Rows())
	for i := 0; i < sc.Len(); i++ {
		v, ok := sc.Get(i)
		if !ok {
			continue
		}
		if _, in := allowed[v]; !in {
			continue
		}
		if counts != nil && !countMatches(counts[i], t.Count) {
			continue
		}
		keep = append(keep, i)
	}
	return f.Take(keep), nil
}

func countMatches(v, want float64) bool { return math.IsNaN(v) || v == want }
