package impute

import (
	"context"
	"fmt"
	"log/slog"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

type fill struct {
	strategy Strategy
	column   string
	// float64 for mean and median; the column's element value for
	// most_frequent.
	value any
}

// Imputer holds statistics fitted on a training frame. It is read-only
// after Fit.
type Imputer struct {
	fills []fill
}

// Fit computes one statistic per spec column from the present values of
// train.
func Fit(train *fr.Frame, spec Spec) (*Imputer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	im := &Imputer{}
	for _, g := range spec {
		for _, name := range g.Columns {
			col, ok := train.ColumnByName(name)
			if !ok {
				return nil, &fr.SchemaError{Op: "impute." + string(g.Strategy), Column: name}
			}
			var (
				v   any
				err error
			)
			switch g.Strategy {
			case Mean:
				v, err = fitMean(col)
			case Median:
				v, err = fitMedian(col)
			case MostFrequent:
				v, err = fitMostFrequent(col)
			}
			if err != nil {
				return nil, err
			}
			slog.Debug("fitted imputation statistic", "strategy", g.Strategy, "column", name, "value", v)
			im.fills = append(im.fills, fill{strategy: g.Strategy, column: name, value: v})
		}
	}
	return im, nil
}

// Statistics returns the fitted value per column.
func (im *Imputer) Statistics() map[string]any {
	out := make(map[string]any, len(im.fills))
	for _, fl := range im.fills {
		out[fl.column] = fl.value
	}
	return out
}

func (im *Imputer) Name() string { return "impute" }

func (im *Imputer) Apply(ctx context.Context, f *fr.Frame) (*fr.Frame, error) {
	return im.Transform(f)
}

// Transform returns a copy of f with the missing cells of every fitted column
// replaced by its statistic. Other columns are copied unchanged.
func (im *Imputer) Transform(f *fr.Frame) (*fr.Frame, error) {
	for _, fl := range im.fills {
		if !f.HasColumn(fl.column) {
			return nil, &fr.SchemaError{Op: "impute." + string(fl.strategy), Column: fl.column}
		}
	}
	out := f.Clone()
	for _, fl := range im.fills {
		col, _ := out.ColumnByName(fl.column)
		var err error
		switch fl.strategy {
		case Mean, Median:
			err = fillNumeric(out, col, fl.value.(float64))
		default:
			err = fillValue(out, col, fl.value)
		}
		if err != nil {
			return nil, fmt.Errorf("impute.%s: %w", fl.strategy, err)
		}
	}
	return out, nil
}

// fillNumeric writes v into the missing cells of a numeric column. Integer
// columns become float columns since v is generally fractional.
func fillNumeric(f *fr.Frame, col fr.Column, v float64) error {
	switch c := col.(type) {
	case *fr.FloatColumn:
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, v)
			}
		}
		return nil
	case *fr.IntColumn:
		promoted := fr.NewFloatColumn(c.Name(), c.Len())
		for i := 0; i < c.Len(); i++ {
			if x, ok := c.Get(i); ok {
				promoted.Set(i, float64(x))
			} else {
				promoted.Set(i, v)
			}
		}
		return f.ReplaceColumn(promoted)
	}
	return fmt.Errorf("column %s is %s, want a numeric column", col.Name(), col.Kind())
}

func fillValue(f *fr.Frame, col fr.Column, v any) error {
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			if err := f.SetCell(i, col.Name(), v); err != nil {
				return err
			}
		}
	}
	return nil
}

// FitTransform fits spec on train and applies it to all three partitions.
// Every spec column must exist in each partition. The inputs are not
// modified.
func FitTransform(train, validate, test *fr.Frame, spec Spec) (*fr.Frame, *fr.Frame, *fr.Frame, error) {
	if err := spec.Validate(); err != nil {
		return nil, nil, nil, err
	}
	for _, part := range []*fr.Frame{train, validate, test} {
		for _, g := range spec {
			for _, name := range g.Columns {
				if !part.HasColumn(name) {
					return nil, nil, nil, &fr.SchemaError{Op: "impute." + string(g.Strategy), Column: name}
				}
			}
		}
	}
	im, err := Fit(train, spec)
	if err != nil {
		return nil, nil, nil, err
	}
	tr, err := im.Transform(train)
	if err != nil {
		return nil, nil, nil, err
	}
	va, err := im.Transform(validate)
	if err != nil {
		return nil, nil, nil, err
	}
	te, err := im.Transform(test)
	if err != nil {
		return nil, nil, nil, err
	}
	return tr, va, te, nil
}
