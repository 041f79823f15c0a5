package impute

import (
	"sort"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// fitMedian returns the middle present value, or the average of the two
// middle values for an even count.
func fitMedian(c fr.Column) (float64, error) {
	vals, err := presentFloats(Median, c)
	if err != nil {
		return 0, err
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		return (vals[mid-1] + vals[mid]) / 2, nil
	}
	return vals[mid], nil
}
