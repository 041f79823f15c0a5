package source

import (
	"fmt"
	"strings"

	fr "github.com/wdm0006/wrangle/pkg/frame"
	"github.com/wdm0006/wrangle/pkg/io/csvio"
	"github.com/wdm0006/wrangle/pkg/io/jsonlio"
	"github.com/wdm0006/wrangle/pkg/io/parquetio"
)

type cacheFormat int

const (
	cacheCSV cacheFormat = iota
	cacheJSONL
	cacheParquet
)

func formatOf(path string) cacheFormat {
	p := strings.TrimSuffix(strings.ToLower(path), ".gz")
	switch {
	case strings.HasSuffix(p, ".parquet"):
		return cacheParquet
	case strings.HasSuffix(p, ".jsonl"):
		return cacheJSONL
	}
	return cacheCSV
}

// ReadCache loads a cached dataset. Paths ending in .parquet are read as
// Parquet, .jsonl as JSON lines, anything else as CSV with a header row.
// Text formats may be gzip compressed.
func ReadCache(path string) (*fr.Frame, error) {
	var (
		f   *fr.Frame
		err error
	)
	switch formatOf(path) {
	case cacheParquet:
		f, err = parquetio.ReadFile(path)
	case cacheJSONL:
		f, err = jsonlio.ReadFile(path, jsonlio.ReaderOptions{SampleRows: -1})
	default:
		f, err = csvio.ReadFile(path, csvio.ReaderOptions{HasHeader: true, SampleRows: -1})
	}
	if err != nil {
		return nil, fmt.Errorf("source: read cache: %w", err)
	}
	return f, nil
}

// WriteCache stores f at path in the format its extension selects.
func WriteCache(path string, f *fr.Frame) error {
	var err error
	switch formatOf(path) {
	case cacheParquet:
		err = parquetio.WriteAll(path, f)
	case cacheJSONL:
		err = jsonlio.WriteAll(path, f)
	default:
		err = csvio.WriteAll(path, f, csvio.WriterOptions{})
	}
	if err != nil {
		return fmt.Errorf("source: write cache: %w", err)
	}
	return nil
}
