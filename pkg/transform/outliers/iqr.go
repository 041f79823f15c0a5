// Package outliers measures and clips values beyond interquartile fences.
package outliers

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile of the non-NaN values, interpolating
// linearly between the closest ranks (h = (n-1)q). It returns NaN when no
// value is present or q lies outside [0, 1].
func Quantile(values []float64, q float64) float64 {
	return quantileSorted(sortedPresent(values), q)
}

func sortedPresent(values []float64) []float64 {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	sort.Float64s(xs)
	return xs
}

func quantileSorted(xs []float64, q float64) float64 {
	if len(xs) == 0 || !(q >= 0 && q <= 1) {
		return math.NaN()
	}
	h := float64(len(xs)-1) * q
	lo := math.Floor(h)
	hi := math.Ceil(h)
	return xs[int(lo)] + (h-lo)*(xs[int(hi)]-xs[int(lo)])
}

// Quartiles returns the 25th and 75th percentiles.
func Quartiles(values []float64) (q1, q3 float64) {
	xs := sortedPresent(values)
	return quantileSorted(xs, 0.25), quantileSorted(xs, 0.75)
}

// Fences returns Q1 - k*IQR and Q3 + k*IQR.
func Fences(values []float64, k float64) (lower, upper float64) {
	q1, q3 := Quartiles(values)
	iqr := q3 - q1
	return q1 - k*iqr, q3 + k*iqr
}

// UpperExcess returns max(v - upper fence, 0) for every value.
func UpperExcess(values []float64, k float64) []float64 {
	_, upper := Fences(values, k)
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Max(v-upper, 0)
	}
	return out
}

// LowerExcess returns min(v + lower fence, 0) for every value. Note the fence
// is added, not subtracted.
func LowerExcess(values []float64, k float64) []float64 {
	lower, _ := Fences(values, k)
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Min(v+lower, 0)
	}
	return out
}
