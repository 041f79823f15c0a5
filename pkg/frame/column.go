package frame

import "time"

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// Numeric reports whether values of the kind can be averaged.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat }

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
	// Value returns the cell as an untyped value; ok is false for nulls.
	Value(i int) (any, bool)
	Clone() Column
	Take(rows []int) Column
}

// vec holds the storage shared by every typed column. The null mask is the
// only marker of a missing cell.
type vec[T any] struct {
	name  string
	data  []T
	nulls []bool
}

func newVec[T any](name string, n int) vec[T] {
	return vec[T]{name: name, data: make([]T, n), nulls: make([]bool, n)}
}

func (v *vec[T]) Name() string            { return v.name }
func (v *vec[T]) Len() int                { return len(v.data) }
func (v *vec[T]) IsNull(i int) bool       { return v.nulls[i] }
func (v *vec[T]) SetNull(i int)           { var zero T; v.data[i] = zero; v.nulls[i] = true }
func (v *vec[T]) Get(i int) (T, bool)     { return v.data[i], !v.nulls[i] }
func (v *vec[T]) Set(i int, x T)          { v.data[i] = x; v.nulls[i] = false }
func (v *vec[T]) Append(x T)              { v.data = append(v.data, x); v.nulls = append(v.nulls, false) }
func (v *vec[T]) Value(i int) (any, bool) { return v.data[i], !v.nulls[i] }

func (v *vec[T]) AppendNull() {
	var zero T
	v.data = append(v.data, zero)
	v.nulls = append(v.nulls, true)
}

func (v *vec[T]) clone() vec[T] {
	out := vec[T]{name: v.name, data: make([]T, len(v.data)), nulls: make([]bool, len(v.nulls))}
	copy(out.data, v.data)
	copy(out.nulls, v.nulls)
	return out
}

func (v *vec[T]) take(rows []int) vec[T] {
	out := vec[T]{name: v.name, data: make([]T, len(rows)), nulls: make([]bool, len(rows))}
	for i, r := range rows {
		out.data[i] = v.data[r]
		out.nulls[i] = v.nulls[r]
	}
	return out
}

type BoolColumn struct{ vec[bool] }

func NewBoolColumn(name string, n int) *BoolColumn { return &BoolColumn{newVec[bool](name, n)} }
func (c *BoolColumn) Kind() Kind                   { return KindBool }
func (c *BoolColumn) Clone() Column                { return &BoolColumn{c.clone()} }
func (c *BoolColumn) Take(rows []int) Column       { return &BoolColumn{c.take(rows)} }

type IntColumn struct{ vec[int64] }

func NewIntColumn(name string, n int) *IntColumn { return &IntColumn{newVec[int64](name, n)} }
func (c *IntColumn) Kind() Kind                  { return KindInt }
func (c *IntColumn) Clone() Column               { return &IntColumn{c.clone()} }
func (c *IntColumn) Take(rows []int) Column      { return &IntColumn{c.take(rows)} }

type FloatColumn struct{ vec[float64] }

func NewFloatColumn(name string, n int) *FloatColumn { return &FloatColumn{newVec[float64](name, n)} }
func (c *FloatColumn) Kind() Kind                    { return KindFloat }
func (c *FloatColumn) Clone() Column                 { return &FloatColumn{c.clone()} }
func (c *FloatColumn) Take(rows []int) Column        { return &FloatColumn{c.take(rows)} }

type StringColumn struct{ vec[string] }

func NewStringColumn(name string, n int) *StringColumn { return &StringColumn{newVec[string](name, n)} }
func (c *StringColumn) Kind() Kind                     { return KindString }
func (c *StringColumn) Clone() Column                  { return &StringColumn{c.clone()} }
func (c *StringColumn) Take(rows []int) Column         { return &StringColumn{c.take(rows)} }

type TimeColumn struct{ vec[time.Time] }

func NewTimeColumn(name string, n int) *TimeColumn { return &TimeColumn{newVec[time.Time](name, n)} }
func (c *TimeColumn) Kind() Kind                   { return KindTime }
func (c *TimeColumn) Clone() Column                { return &TimeColumn{c.clone()} }
func (c *TimeColumn) Take(rows []int) Column       { return &TimeColumn{c.take(rows)} }

// NewColumn allocates an empty column of the given kind.
func NewColumn(name string, k Kind, n int) (Column, error) {
	switch k {
	case KindBool:
		return NewBoolColumn(name, n), nil
	case KindInt:
		return NewIntColumn(name, n), nil
	case KindFloat:
		return NewFloatColumn(name, n), nil
	case KindString:
		return NewStringColumn(name, n), nil
	case KindTime:
		return NewTimeColumn(name, n), nil
	}
	return nil, &InvalidConfigError{Field: name, Reason: "invalid column kind " + k.String()}
}

// NullCount returns the number of missing cells in c.
func NullCount(c Column) int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			n++
		}
	}
	return n
}
