package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	fr "github.com/wdm0006/wrangle/pkg/frame"
	iox "github.com/wdm0006/wrangle/pkg/io/ioutils"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = sniff, default ','
	SampleRows int  // for inference; default 100, negative reads every row
	Strict     bool // if true, error on short/long records
}

type Reader struct {
	r   *csv.Reader
	rc  io.Closer
	opt ReaderOptions
	buf [][]string
	// repair/warning counters
	shortRecords int
	longRecords  int
}

// Open opens a CSV file, transparently decompressing gzip input.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(rc)
	if opt.Delimiter == 0 {
		sample, _ := br.Peek(4096)
		opt.Delimiter = sniffDelimiter(sample)
	}
	r := NewReaderFrom(br, opt)
	r.rc = rc
	return r, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader.
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(r)
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.FieldsPerRecord = -1
	rr.LazyQuotes = !opt.Strict
	return &Reader{r: rr, opt: opt}
}

func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}

// InferSchema reads the header (if present) and samples rows to determine
// column kinds. Sampled rows are retained for ReadAll.
func (r *Reader) InferSchema() (fr.Schema, error) {
	rec, err := r.read()
	if err != nil {
		return fr.Schema{}, err
	}
	var names []string
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.ToValidUTF8(rec[i], "?")
		}
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
		r.buf = append(r.buf, rec)
	}

	max := r.opt.SampleRows
	if max == 0 {
		max = 100
	}
	for max < 0 || len(r.buf) < max {
		rr, err := r.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fr.Schema{}, err
		}
		r.buf = append(r.buf, rr)
	}

	kinds := inferKinds(r.buf, len(names))
	schema := fr.Schema{Columns: make([]fr.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = fr.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	return schema, nil
}

// ReadAll loads the buffered and remaining records into a Frame. Empty cells
// and cells that do not parse as the column kind are missing.
func (r *Reader) ReadAll(schema fr.Schema) (*fr.Frame, error) {
	f := fr.NewFrame(schema)
	for _, rec := range r.buf {
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	r.buf = nil
	for {
		rec, err := r.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ReadFile infers the schema of a headed CSV file and reads it fully.
func ReadFile(path string, opt ReaderOptions) (*fr.Frame, error) {
	r, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		return nil, fmt.Errorf("csvio: %s: %w", path, err)
	}
	return r.ReadAll(schema)
}

func (r *Reader) read() ([]string, error) {
	rec, err := r.r.Read()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), rec...), nil
}

func (r *Reader) appendRecord(f *fr.Frame, schema fr.Schema, rec []string) error {
	if len(rec) > len(schema.Columns) {
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv long record at row %d: need %d fields, got %d", f.Rows(), len(schema.Columns), len(rec))
		}
	}
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			r.shortRecords++
			if r.opt.Strict {
				return fmt.Errorf("csv short record at row %d: need %d fields, got %d", row, len(schema.Columns), len(rec))
			}
			break
		}
		val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		if val == "" {
			continue
		}
		if v, ok := parseCell(cs.Type, val); ok {
			_ = f.SetCell(row, cs.Name, v)
		}
	}
	return nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

func parseCell(k fr.Kind, val string) (any, bool) {
	switch k {
	case fr.KindFloat:
		x, err := strconv.ParseFloat(val, 64)
		return x, err == nil
	case fr.KindInt:
		x, err := strconv.ParseInt(val, 10, 64)
		return x, err == nil
	case fr.KindBool:
		x, err := strconv.ParseBool(strings.ToLower(val))
		return x, err == nil
	case fr.KindTime:
		t, ok := parseTime(val)
		return t, ok
	}
	return val, true
}

func parseTime(val string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// nonFinite are the float spellings FormatCell and strconv produce for NaN
// and infinities.
var nonFinite = map[string]bool{"nan": true, "inf": true, "+inf": true, "-inf": true}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(rows [][]string, ncol int) []fr.Kind {
	kinds := make([]fr.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, boolean, ts, str := 0, 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			switch lv := strings.ToLower(v); {
			case v == "":
			case numre.MatchString(v):
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
			case nonFinite[lv]:
				num++
			case lv == "true" || lv == "false":
				boolean++
			default:
				if _, ok := parseTime(v); ok {
					ts++
				} else {
					str++
				}
			}
		}
		switch {
		case str > 0 || num+boolean+ts == 0:
			kinds[c] = fr.KindString
		case num > 0 && boolean == 0 && ts == 0:
			if integer == num {
				kinds[c] = fr.KindInt
			} else {
				kinds[c] = fr.KindFloat
			}
		case boolean > 0 && num == 0 && ts == 0:
			kinds[c] = fr.KindBool
		case ts > 0 && num == 0 && boolean == 0:
			kinds[c] = fr.KindTime
		default:
			kinds[c] = fr.KindString
		}
	}
	return kinds
}

func sniffDelimiter(sample []byte) rune {
	if len(sample) == 0 {
		return ','
	}
	// only the first line is counted so quoted free text cannot skew it
	if i := strings.IndexByte(string(sample), '\n'); i >= 0 {
		sample = sample[:i]
	}
	best, bestCount := byte(','), 0
	for _, c := range []byte{',', '\t', ';', '|'} {
		cnt := 0
		for _, b := range sample {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	return rune(best)
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	parts := []string{}
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
