// Package impute fills missing values with statistics fitted on a training
// partition and applied unchanged to every partition.
package impute

import (
	"fmt"
	"sort"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// Strategy names the statistic used to fill a column group.
type Strategy string

const (
	Mean         Strategy = "mean"
	Median       Strategy = "median"
	MostFrequent Strategy = "most_frequent"
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case Mean, Median, MostFrequent:
		return st, nil
	}
	return "", &fr.InvalidConfigError{Field: "impute", Reason: fmt.Sprintf("unknown strategy %q", s)}
}

// Group binds a strategy to the columns it fills.
type Group struct {
	Strategy Strategy
	Columns  []string
}

// Spec is an ordered list of column groups. Column names are unique across
// groups.
type Spec []Group

// SpecFromMap converts a strategy -> columns mapping, as found in config
// files, into a Spec ordered by strategy name.
func SpecFromMap(m map[string][]string) (Spec, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	spec := make(Spec, 0, len(keys))
	for _, k := range keys {
		st, err := ParseStrategy(k)
		if err != nil {
			return nil, err
		}
		spec = append(spec, Group{Strategy: st, Columns: append([]string(nil), m[k]...)})
	}
	return spec, spec.Validate()
}

func (s Spec) Validate() error {
	seen := map[string]Strategy{}
	for _, g := range s {
		if _, err := ParseStrategy(string(g.Strategy)); err != nil {
			return err
		}
		for _, c := range g.Columns {
			if c == "" {
				return &fr.InvalidConfigError{Field: "impute." + string(g.Strategy), Reason: "empty column name"}
			}
			if prev, dup := seen[c]; dup {
				return &fr.InvalidConfigError{
					Field:  "impute." + string(g.Strategy),
					Reason: fmt.Sprintf("column %s already listed under %s", c, prev),
				}
			}
			seen[c] = g.Strategy
		}
	}
	return nil
}

// Columns returns every column named by the spec, in spec order.
func (s Spec) Columns() []string {
	var out []string
	for _, g := range s {
		out = append(out, g.Columns...)
	}
	return out
}
