package impute

import (
	"time"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// fitMostFrequent returns the most common present value. Ties go to the
// value seen first in row order.
func fitMostFrequent(c fr.Column) (any, error) {
	counts := map[any]int{}
	first := map[any]any{}
	var order []any
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Value(i)
		if !ok {
			continue
		}
		k := modeKey(v)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
			first[k] = v
		}
		counts[k]++
	}
	if len(order) == 0 {
		return nil, &fr.EmptyFitError{Strategy: string(MostFrequent), Column: c.Name()}
	}
	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return first[best], nil
}

// modeKey normalizes values whose == comparison is not value equality.
func modeKey(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.UnixNano()
	}
	return v
}
