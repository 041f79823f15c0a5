// Package split partitions a frame into train, validate and test sets.
package split

import (
	"fmt"
	"math"
	"math/rand"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// Partitions holds three frames with the same columns and disjoint rows.
type Partitions struct {
	Train    *fr.Frame
	Validate *fr.Frame
	Test     *fr.Frame
}

// Rows returns the row counts of train, validate and test.
func (p Partitions) Rows() (train, validate, test int) {
	return p.Train.Rows(), p.Validate.Rows(), p.Test.Rows()
}

// Partitioner splits a frame into row-disjoint partitions whose union is the
// input.
type Partitioner interface {
	Split(f *fr.Frame) (Partitions, error)
}

// Random shuffles rows with a seeded source, holds out ceil(n*TestRatio)
// rows for test, then ceil(rest*ValidateRatio) of the remainder for
// validate. The remaining rows form the training set.
type Random struct {
	TestRatio     float64
	ValidateRatio float64
	Seed          int64
}

// Default mirrors the 80/20 then 70/30 split used by the analyses.
func Default() *Random { return &Random{TestRatio: 0.2, ValidateRatio: 0.3, Seed: 123} }

func (r *Random) Split(f *fr.Frame) (Partitions, error) {
	if err := checkRatio("split.test_ratio", r.TestRatio); err != nil {
		return Partitions{}, err
	}
	if err := checkRatio("split.validate_ratio", r.ValidateRatio); err != nil {
		return Partitions{}, err
	}
	n := f.Rows()
	perm := rand.New(rand.NewSource(r.Seed)).Perm(n)
	nTest := int(math.Ceil(float64(n) * r.TestRatio))
	rest := perm[nTest:]
	nVal := int(math.Ceil(float64(len(rest)) * r.ValidateRatio))
	return Partitions{
		Train:    f.Take(rest[nVal:]),
		Validate: f.Take(rest[:nVal]),
		Test:     f.Take(perm[:nTest]),
	}, nil
}

func checkRatio(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return &fr.InvalidConfigError{Field: field, Reason: fmt.Sprintf("%v outside [0, 1)", v)}
	}
	return nil
}
