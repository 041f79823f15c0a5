package outliers

import (
	"context"
	"math"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// Excess appends <Column>_upper_outliers and <Column>_lower_outliers holding
// UpperExcess and LowerExcess of a numeric column. Missing inputs stay
// missing.
type Excess struct {
	Column string
	K      float64
}

func (t *Excess) Name() string { return "outlier_excess" }

func (t *Excess) Apply(ctx context.Context, f *fr.Frame) (*fr.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return nil, &fr.SchemaError{Op: t.Name(), Column: t.Column}
	}
	vals, err := fr.Float64s(col)
	if err != nil {
		return nil, err
	}
	out := f.Clone()
	for _, c := range []struct {
		suffix string
		vals   []float64
	}{
		{"_upper_outliers", UpperExcess(vals, t.K)},
		{"_lower_outliers", LowerExcess(vals, t.K)},
	} {
		if err := out.AddColumn(floatColumn(t.Column+c.suffix, c.vals)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Cap clips a numeric column into its IQR fences.
type Cap struct {
	Column string
	K      float64
}

func (t *Cap) Name() string { return "cap_iqr" }

func (t *Cap) Apply(ctx context.Context, f *fr.Frame) (*fr.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return nil, &fr.SchemaError{Op: t.Name(), Column: t.Column}
	}
	vals, err := fr.Float64s(col)
	if err != nil {
		return nil, err
	}
	lower, upper := Fences(vals, t.K)
	out := f.Clone()
	col, _ = out.ColumnByName(t.Column)
	switch c := col.(type) {
	case *fr.FloatColumn:
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				c.Set(i, math.Min(math.Max(v, lower), upper))
			}
		}
	case *fr.IntColumn:
		for i := 0; i < c.Len(); i++ {
			v, ok := c.Get(i)
			if !ok {
				continue
			}
			if float64(v) < lower {
				v = int64(math.Ceil(lower))
			}
			if float64(v) > upper {
				v = int64(math.Floor(upper))
			}
			c.Set(i, v)
		}
	}
	return out, nil
}

func floatColumn(name string, vals []float64) *fr.FloatColumn {
	c := fr.NewFloatColumn(name, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			c.SetNull(i)
		} else {
			c.Set(i, v)
		}
	}
	return c
}
