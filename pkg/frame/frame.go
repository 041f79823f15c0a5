package frame

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cast"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, cs := range s.Columns {
		out[i] = cs.Name
	}
	return out
}

// Frame is a columnar container for tabular data.
type Frame struct {
	cols  []Column
	index map[string]int // name -> col index
	nrows int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		c, err := NewColumn(cs.Name, cs.Type, 0)
		if err != nil {
			panic(err)
		}
		f.cols[i] = c
		f.index[cs.Name] = i
	}
	return f
}

// FromColumns builds a frame that owns the given columns.
func FromColumns(cols ...Column) (*Frame, error) {
	f := &Frame{cols: make([]Column, 0, len(cols)), index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if i > 0 && c.Len() != f.nrows {
			return nil, fmt.Errorf("column %s has %d rows, want %d", c.Name(), c.Len(), f.nrows)
		}
		if _, dup := f.index[c.Name()]; dup {
			return nil, fmt.Errorf("duplicate column: %s", c.Name())
		}
		f.nrows = c.Len()
		f.index[c.Name()] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	return f, nil
}

func (f *Frame) Schema() Schema {
	s := Schema{Columns: make([]ColumnSchema, len(f.cols))}
	for i, c := range f.cols {
		s.Columns[i] = ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true}
	}
	return s
}

func (f *Frame) Rows() int         { return f.nrows }
func (f *Frame) Cols() int         { return len(f.cols) }
func (f *Frame) Columns() []Column { return append([]Column(nil), f.cols...) }
func (f *Frame) Names() []string   { return f.Schema().Names() }

func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by name (row must exist). A nil value
// marks the cell missing; other values are coerced to the column kind.
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return &SchemaError{Op: "set_cell", Column: name}
	}
	if v == nil {
		f.cols[i].SetNull(row)
		return nil
	}
	switch col := f.cols[i].(type) {
	case *BoolColumn:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("column %s expects bool: %w", name, err)
		}
		col.Set(row, b)
	case *IntColumn:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return fmt.Errorf("column %s expects int: %w", name, err)
		}
		col.Set(row, n)
	case *FloatColumn:
		x, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("column %s expects float: %w", name, err)
		}
		col.Set(row, x)
	case *StringColumn:
		s, err := cast.ToStringE(v)
		if err != nil {
			return fmt.Errorf("column %s expects string: %w", name, err)
		}
		col.Set(row, s)
	case *TimeColumn:
		t, err := cast.ToTimeE(v)
		if err != nil {
			return fmt.Errorf("column %s expects time: %w", name, err)
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

// Cell returns the value at row of the named column; ok is false when the
// cell is missing.
func (f *Frame) Cell(row int, name string) (v any, ok bool, err error) {
	c, found := f.ColumnByName(name)
	if !found {
		return nil, false, &SchemaError{Op: "cell", Column: name}
	}
	v, ok = c.Value(row)
	return v, ok, nil
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Clone()
	}
	return f.withColumns(cols, f.nrows)
}

// Take returns a deep copy holding only the given rows, in the given order.
func (f *Frame) Take(rows []int) *Frame {
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Take(rows)
	}
	return f.withColumns(cols, len(rows))
}

// Select returns a frame sharing the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, len(names))
	for i, n := range names {
		c, ok := f.ColumnByName(n)
		if !ok {
			return nil, &SchemaError{Op: "select", Column: n}
		}
		cols[i] = c
	}
	return f.withColumns(cols, f.nrows), nil
}

// Drop returns a frame sharing every column except the named ones.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		if !f.HasColumn(n) {
			return nil, &SchemaError{Op: "drop", Column: n}
		}
		skip[n] = struct{}{}
	}
	cols := make([]Column, 0, len(f.cols))
	for _, c := range f.cols {
		if _, ok := skip[c.Name()]; !ok {
			cols = append(cols, c)
		}
	}
	return f.withColumns(cols, f.nrows), nil
}

// AddColumn appends c, which must match the frame's row count.
func (f *Frame) AddColumn(c Column) error {
	if _, dup := f.index[c.Name()]; dup {
		return fmt.Errorf("duplicate column: %s", c.Name())
	}
	if len(f.cols) > 0 && c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, want %d", c.Name(), c.Len(), f.nrows)
	}
	f.nrows = c.Len()
	f.index[c.Name()] = len(f.cols)
	f.cols = append(f.cols, c)
	return nil
}

// ReplaceColumn swaps the column with c's name for c, keeping its position.
func (f *Frame) ReplaceColumn(c Column) error {
	i, ok := f.index[c.Name()]
	if !ok {
		return &SchemaError{Op: "replace", Column: c.Name()}
	}
	if c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, want %d", c.Name(), c.Len(), f.nrows)
	}
	f.cols[i] = c
	return nil
}

// NonNullCount returns the number of present values in the named column.
func (f *Frame) NonNullCount(name string) (int, error) {
	c, ok := f.ColumnByName(name)
	if !ok {
		return 0, &SchemaError{Op: "count", Column: name}
	}
	return c.Len() - NullCount(c), nil
}

// RowNonNullCount returns the number of present values in row.
func (f *Frame) RowNonNullCount(row int) int {
	n := 0
	for _, c := range f.cols {
		if !c.IsNull(row) {
			n++
		}
	}
	return n
}

func (f *Frame) withColumns(cols []Column, nrows int) *Frame {
	out := &Frame{cols: cols, index: make(map[string]int, len(cols)), nrows: nrows}
	for i, c := range cols {
		out.index[c.Name()] = i
	}
	return out
}

// Float64s returns a numeric column as float64 values with NaN for nulls.
func Float64s(c Column) ([]float64, error) {
	out := make([]float64, c.Len())
	switch col := c.(type) {
	case *FloatColumn:
		for i := range out {
			v, ok := col.Get(i)
			if !ok {
				v = math.NaN()
			}
			out[i] = v
		}
	case *IntColumn:
		for i := range out {
			v, ok := col.Get(i)
			out[i] = float64(v)
			if !ok {
				out[i] = math.NaN()
			}
		}
	default:
		return nil, fmt.Errorf("column %s is %s, not numeric", c.Name(), c.Kind())
	}
	return out, nil
}

// FormatTime is the textual layout used for time cells in caches.
const FormatTime = time.RFC3339
