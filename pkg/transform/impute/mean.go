package impute

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// presentFloats returns the non-missing values of a numeric column.
func presentFloats(st Strategy, c fr.Column) ([]float64, error) {
	vals := make([]float64, 0, c.Len())
	switch col := c.(type) {
	case *fr.FloatColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				vals = append(vals, v)
			}
		}
	case *fr.IntColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				vals = append(vals, float64(v))
			}
		}
	default:
		return nil, &fr.InvalidConfigError{
			Field:  "impute." + string(st),
			Reason: fmt.Sprintf("column %s is %s, want a numeric column", c.Name(), c.Kind()),
		}
	}
	if len(vals) == 0 {
		return nil, &fr.EmptyFitError{Strategy: string(st), Column: c.Name()}
	}
	return vals, nil
}

func fitMean(c fr.Column) (float64, error) {
	vals, err := presentFloats(Mean, c)
	if err != nil {
		return 0, err
	}
	return stat.Mean(vals, nil), nil
}
