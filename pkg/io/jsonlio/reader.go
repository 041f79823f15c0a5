// Package jsonlio reads and writes frames as JSON lines, one object per row.
package jsonlio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	fr "github.com/wdm0006/wrangle/pkg/frame"
	iox "github.com/wdm0006/wrangle/pkg/io/ioutils"
)

type ReaderOptions struct {
	SampleRows int // for inference; default 100, negative reads every row
}

type Reader struct {
	dec  *json.Decoder
	rc   io.Closer
	opt  ReaderOptions
	buf  []map[string]any
	keys []string
}

// Open opens a JSON lines file, transparently decompressing gzip input.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	r := NewReaderFrom(rc, opt)
	r.rc = rc
	return r, nil
}

func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	return &Reader{dec: json.NewDecoder(bufio.NewReader(r)), opt: opt}
}

func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}

// next decodes one object, recording keys in the order they first appear.
func (r *Reader) next() (map[string]any, error) {
	var raw json.RawMessage
	if err := r.dec.Decode(&raw); err != nil {
		return nil, err
	}
	if err := r.noteKeys(raw); err != nil {
		return nil, err
	}
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	var m map[string]any
	if err := d.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Reader) noteKeys(raw json.RawMessage) error {
	seen := make(map[string]struct{}, len(r.keys))
	for _, k := range r.keys {
		seen[k] = struct{}{}
	}
	d := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := d.Token(); err != nil || tok != json.Delim('{') {
		return fmt.Errorf("jsonlio: expected an object per line")
	}
	for d.More() {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		k, _ := tok.(string)
		var skip json.RawMessage
		if err := d.Decode(&skip); err != nil {
			return err
		}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			r.keys = append(r.keys, k)
		}
	}
	return nil
}

// InferSchema samples objects to determine column names and kinds. Columns
// follow the order keys first appear in. Sampled objects are kept for
// ReadAll.
func (r *Reader) InferSchema() (fr.Schema, error) {
	max := r.opt.SampleRows
	if max == 0 {
		max = 100
	}
	for max < 0 || len(r.buf) < max {
		m, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fr.Schema{}, err
		}
		r.buf = append(r.buf, m)
	}
	kinds := inferKinds(r.buf, r.keys)
	schema := fr.Schema{Columns: make([]fr.ColumnSchema, len(r.keys))}
	for i, k := range r.keys {
		schema.Columns[i] = fr.ColumnSchema{Name: k, Type: kinds[i], Nullable: true}
	}
	return schema, nil
}

// ReadAll loads the buffered and remaining objects into a Frame. Keys absent
// from schema are ignored; null, absent and unparseable values are missing.
func (r *Reader) ReadAll(schema fr.Schema) (*fr.Frame, error) {
	f := fr.NewFrame(schema)
	for _, m := range r.buf {
		f.AppendNullRow()
		setRow(f, f.Rows()-1, schema, m)
	}
	r.buf = nil
	for {
		m, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		f.AppendNullRow()
		setRow(f, f.Rows()-1, schema, m)
	}
	return f, nil
}

// ReadFile infers the schema of a JSON lines file and reads it fully.
func ReadFile(path string, opt ReaderOptions) (*fr.Frame, error) {
	r, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		return nil, fmt.Errorf("jsonlio: %s: %w", path, err)
	}
	return r.ReadAll(schema)
}

func setRow(f *fr.Frame, row int, schema fr.Schema, m map[string]any) {
	for _, cs := range schema.Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		switch cs.Type {
		case fr.KindInt:
			if n, ok := v.(json.Number); ok {
				if x, err := n.Int64(); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			}
		case fr.KindFloat:
			if n, ok := v.(json.Number); ok {
				if x, err := n.Float64(); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			}
		case fr.KindBool:
			if b, ok := v.(bool); ok {
				_ = f.SetCell(row, cs.Name, b)
			}
		case fr.KindTime:
			if s, ok := v.(string); ok {
				if t, err := time.Parse(fr.FormatTime, s); err == nil {
					_ = f.SetCell(row, cs.Name, t)
				}
			}
		default:
			switch t := v.(type) {
			case string:
				_ = f.SetCell(row, cs.Name, t)
			case json.Number:
				_ = f.SetCell(row, cs.Name, t.String())
			default:
				// fallback to JSON encoding
				b, _ := json.Marshal(t)
				_ = f.SetCell(row, cs.Name, string(b))
			}
		}
	}
}

func inferKinds(sample []map[string]any, keys []string) []fr.Kind {
	kinds := make([]fr.Kind, len(keys))
	for i, k := range keys {
		nNum, nInt, nBool, nTime, nStr := 0, 0, 0, 0, 0
		for _, m := range sample {
			switch t := m[k].(type) {
			case nil:
			case json.Number:
				nNum++
				if !strings.ContainsAny(t.String(), ".eE") {
					nInt++
				}
			case bool:
				nBool++
			case string:
				if _, err := time.Parse(fr.FormatTime, t); err == nil {
					nTime++
				} else {
					nStr++
				}
			default:
				nStr++
			}
		}
		switch {
		case nNum > 0 && nBool+nTime+nStr == 0:
			if nInt == nNum {
				kinds[i] = fr.KindInt
			} else {
				kinds[i] = fr.KindFloat
			}
		case nBool > 0 && nNum+nTime+nStr == 0:
			kinds[i] = fr.KindBool
		case nTime > 0 && nNum+nBool+nStr == 0:
			kinds[i] = fr.KindTime
		default:
			kinds[i] = fr.KindString
		}
	}
	return kinds
}
