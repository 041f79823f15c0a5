package jsonlio

import (
	"bufio"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	fr "github.com/wdm0006/wrangle/pkg/frame"
	iox "github.com/wdm0006/wrangle/pkg/io/ioutils"
)

// WriteAll writes one JSON object per row to path, gzip compressed when the
// path ends in .gz.
func WriteAll(path string, f *fr.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write encodes f as JSON lines. Keys follow column order and missing cells
// are omitted. Times use fr.FormatTime; NaN and infinite floats have no JSON
// form and are omitted too.
func Write(w io.Writer, f *fr.Frame) error {
	bw := bufio.NewWriter(w)
	cols := f.Columns()
	keys := make([][]byte, len(cols))
	for i, c := range cols {
		k, err := json.Marshal(c.Name())
		if err != nil {
			return err
		}
		keys[i] = k
	}
	for r := 0; r < f.Rows(); r++ {
		_ = bw.WriteByte('{')
		first := true
		for i, col := range cols {
			v, ok := col.Value(r)
			if !ok {
				continue
			}
			var b []byte
			switch x := v.(type) {
			case float64:
				if math.IsNaN(x) || math.IsInf(x, 0) {
					continue
				}
				b = floatLiteral(x)
			case time.Time:
				v = x.Format(fr.FormatTime)
			}
			if b == nil {
				var err error
				if b, err = json.Marshal(v); err != nil {
					return err
				}
			}
			if !first {
				_ = bw.WriteByte(',')
			}
			first = false
			_, _ = bw.Write(keys[i])
			_ = bw.WriteByte(':')
			_, _ = bw.Write(b)
		}
		if _, err := bw.WriteString("}\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// floatLiteral keeps a decimal point on integral floats so the column reads
// back as float.
func floatLiteral(x float64) []byte {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return []byte(s)
}
