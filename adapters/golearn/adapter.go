// Package golearn hands prepared frames to github.com/sjwhitworth/golearn
// and reads DenseInstances back into frames.
package golearn

import (
	"math"

	"github.com/sjwhitworth/golearn/base"

	fr "github.com/wdm0006/wrangle/pkg/frame"
	"github.com/wdm0006/wrangle/pkg/io/csvio"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. Numeric
// columns become float attributes with NaN for missing cells; all other
// kinds become categorical. class names the class attribute; empty selects
// the last column.
func ToDenseInstances(f *fr.Frame, class string) (*base.DenseInstances, error) {
	cols := f.Columns()
	attrs := make([]base.Attribute, len(cols))
	classIdx := len(cols) - 1
	for i, c := range cols {
		if c.Name() == class {
			classIdx = i
		}
		if c.Kind().Numeric() {
			attrs[i] = base.NewFloatAttribute(c.Name())
			continue
		}
		ca := new(base.CategoricalAttribute)
		ca.SetName(c.Name())
		attrs[i] = ca
	}
	if class != "" && !f.HasColumn(class) {
		return nil, &fr.SchemaError{Op: "golearn", Column: class}
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for c, col := range cols {
		var nums []float64
		if col.Kind().Numeric() {
			nums, _ = fr.Float64s(col)
		}
		for r := 0; r < f.Rows(); r++ {
			if nums != nil {
				inst.Set(specs[c], r, base.PackFloatToBytes(nums[r]))
				continue
			}
			if col.IsNull(r) {
				continue
			}
			inst.Set(specs[c], r, attrs[c].GetSysValFromString(csvio.FormatCell(col, r)))
		}
	}
	if len(attrs) > 0 {
		if err := inst.AddClassAttribute(attrs[classIdx]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances into a Frame. Float
// attributes holding NaN read back as missing cells. Categorical cells have
// no missing marker in golearn, so they always read back present.
func FromDenseInstances(inst *base.DenseInstances) (*fr.Frame, error) {
	attrs := inst.AllAttributes()
	schema := fr.Schema{Columns: make([]fr.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		k := fr.KindString
		if a.GetType() == base.Float64Type {
			k = fr.KindFloat
		}
		schema.Columns[i] = fr.ColumnSchema{Name: a.GetName(), Type: k, Nullable: true}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	f := fr.NewFrame(schema)
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			var v any
			if cs.Type == fr.KindFloat {
				x := base.UnpackBytesToFloat(inst.Get(specs[c], r))
				if math.IsNaN(x) {
					continue
				}
				v = x
			} else {
				v = specs[c].GetAttribute().GetStringFromSysVal(inst.Get(specs[c], r))
			}
			if err := f.SetCell(r, cs.Name, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
