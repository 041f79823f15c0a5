// Package source acquires raw datasets from a SQL database, caching the
// result on disk so later runs can skip the query.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	fr "github.com/wdm0006/wrangle/pkg/frame"
	iox "github.com/wdm0006/wrangle/pkg/io/ioutils"
)

// Config names where a dataset comes from and where it is cached.
type Config struct {
	Name      string
	Driver    string // mysql or sqlite
	DSN       string
	Query     string
	CachePath string
	UseCache  bool
}

// MySQLDSN builds a go-sql-driver DSN for the given credentials.
func MySQLDSN(user, password, host, database string) string {
	c := mysql.NewConfig()
	c.User = user
	c.Passwd = password
	c.Net = "tcp"
	c.Addr = host
	c.DBName = database
	c.ParseTime = true
	return c.FormatDSN()
}

// Open opens a database handle and pings it so a bad DSN fails fast.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("source: %s: DSN must not be empty", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("source: %s: open: %w", driver, err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("source: %s: ping: %w", driver, err)
	}
	return db, nil
}

// Fetch runs query and collects the result into a Frame. SQL NULL becomes a
// missing cell.
func Fetch(ctx context.Context, db *sql.DB, query string) (*fr.Frame, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("source: query: %w", err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("source: column types: %w", err)
	}
	var records [][]any
	for rows.Next() {
		rec := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range rec {
			ptrs[i] = &rec[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("source: scan: %w", err)
		}
		for i, v := range rec {
			if b, ok := v.([]byte); ok {
				rec[i] = string(b)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source: rows: %w", err)
	}

	schema := fr.Schema{Columns: make([]fr.ColumnSchema, len(types))}
	for i, ct := range types {
		schema.Columns[i] = fr.ColumnSchema{Name: ct.Name(), Type: columnKind(ct.DatabaseTypeName(), records, i), Nullable: true}
	}
	f := fr.NewFrame(schema)
	for r, rec := range records {
		f.AppendNullRow()
		for i, v := range rec {
			if err := f.SetCell(r, schema.Columns[i].Name, v); err != nil {
				return nil, fmt.Errorf("source: row %d: %w", r, err)
			}
		}
	}
	return f, nil
}

// columnKind maps a declared SQL type to a column kind, falling back to the
// Go type of the first non-NULL value when the declaration is unknown.
func columnKind(dbType string, records [][]any, col int) fr.Kind {
	t := strings.ToUpper(dbType)
	switch {
	case strings.HasPrefix(t, "BOOL"):
		return fr.KindBool
	case strings.Contains(t, "INT"):
		return fr.KindInt
	case strings.Contains(t, "DECIMAL"), strings.Contains(t, "NUMERIC"),
		strings.Contains(t, "FLOAT"), strings.Contains(t, "DOUBLE"), strings.Contains(t, "REAL"):
		return fr.KindFloat
	case t == "DATE", t == "DATETIME", t == "TIMESTAMP":
		return fr.KindTime
	case strings.Contains(t, "CHAR"), strings.Contains(t, "TEXT"), strings.Contains(t, "ENUM"):
		return fr.KindString
	}
	for _, rec := range records {
		switch rec[col].(type) {
		case nil:
			continue
		case int64, int32, int:
			return fr.KindInt
		case float64, float32:
			return fr.KindFloat
		case bool:
			return fr.KindBool
		case time.Time:
			return fr.KindTime
		default:
			return fr.KindString
		}
	}
	return fr.KindString
}

// Load returns the dataset described by cfg. A cached copy is used when
// UseCache is set and the cache exists; otherwise the query runs and the
// result is written to CachePath.
func Load(ctx context.Context, cfg Config) (*fr.Frame, error) {
	if cfg.UseCache && cfg.CachePath != "" && iox.Exists(cfg.CachePath) {
		slog.InfoContext(ctx, "reading cached dataset", "dataset", cfg.Name, "path", cfg.CachePath)
		return ReadCache(cfg.CachePath)
	}
	if cfg.Query == "" {
		return nil, errors.New("source: empty query")
	}
	db, err := Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	slog.InfoContext(ctx, "querying dataset", "dataset", cfg.Name, "driver", cfg.Driver)
	f, err := Fetch(ctx, db, cfg.Query)
	if err != nil {
		return nil, err
	}
	if cfg.CachePath != "" {
		if err := WriteCache(cfg.CachePath, f); err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "cached dataset", "dataset", cfg.Name, "path", cfg.CachePath, "rows", f.Rows())
	}
	return f, nil
}
