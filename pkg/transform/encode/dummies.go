// Package encode turns categorical columns into numeric indicator columns.
package encode

import (
	"context"
	"fmt"
	"sort"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

// Dummies replaces each listed string column with one 0/1 integer column per
// distinct value, named <column>_<value> and ordered by value. DropFirst
// omits the first indicator. Missing cells encode as all zeros.
type Dummies struct {
	Columns   []string
	DropFirst bool
}

func (t *Dummies) Name() string { return "dummies" }

func (t *Dummies) Apply(ctx context.Context, f *fr.Frame) (*fr.Frame, error) {
	var indicators []fr.Column
	for _, name := range t.Columns {
		col, ok := f.ColumnByName(name)
		if !ok {
			return nil, &fr.SchemaError{Op: t.Name(), Column: name}
		}
		sc, ok := col.(*fr.StringColumn)
		if !ok {
			return nil, fmt.Errorf("%s: column %s is %s, want string", t.Name(), name, col.Kind())
		}
		levels := Levels(sc)
		if t.DropFirst && len(levels) > 0 {
			levels = levels[1:]
		}
		for _, lv := range levels {
			ind := fr.NewIntColumn(name+"_"+lv, sc.Len())
			for i := 0; i < sc.Len(); i++ {
				if v, ok := sc.Get(i); ok && v == lv {
					ind.Set(i, 1)
				}
			}
			indicators = append(indicators, ind)
		}
	}
	out, err := f.Drop(t.Columns...)
	if err != nil {
		return nil, err
	}
	out = out.Clone()
	for _, ind := range indicators {
		if err := out.AddColumn(ind); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Levels returns the sorted distinct non-missing values of c.
func Levels(c *fr.StringColumn) []string {
	seen := map[string]struct{}{}
	var out []string
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Get(i)
		if !ok {
			continue
		}
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
