// Package config loads wrangle run settings from JSON, TOML or YAML files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	fr "github.com/wdm0006/wrangle/pkg/frame"
	"github.com/wdm0006/wrangle/pkg/source"
	imp "github.com/wdm0006/wrangle/pkg/transform/impute"
)

type Source struct {
	Driver    string `json:"driver" toml:"driver" yaml:"driver"` // mysql|sqlite
	DSN       string `json:"dsn" toml:"dsn" yaml:"dsn"`
	Host      string `json:"host" toml:"host" yaml:"host"`
	User      string `json:"user" toml:"user" yaml:"user"`
	Password  string `json:"password" toml:"password" yaml:"password"`
	Database  string `json:"database" toml:"database" yaml:"database"`
	Query     string `json:"query" toml:"query" yaml:"query"`
	CachePath string `json:"cache_path" toml:"cache_path" yaml:"cache_path"`
	UseCache  bool   `json:"use_cache" toml:"use_cache" yaml:"use_cache"`
}

type Prune struct {
	MinColumnDensity float64 `json:"min_column_density" toml:"min_column_density" yaml:"min_column_density"`
	MinRowDensity    float64 `json:"min_row_density" toml:"min_row_density" yaml:"min_row_density"`
}

type Split struct {
	TestRatio     float64 `json:"test_ratio" toml:"test_ratio" yaml:"test_ratio"`
	ValidateRatio float64 `json:"validate_ratio" toml:"validate_ratio" yaml:"validate_ratio"`
	Seed          int64   `json:"seed" toml:"seed" yaml:"seed"`
}

type Outliers struct {
	K       float64  `json:"k" toml:"k" yaml:"k"`
	Columns []string `json:"columns" toml:"columns" yaml:"columns"`
	Cap     []string `json:"cap" toml:"cap" yaml:"cap"`
}

type Output struct {
	Dir    string `json:"dir" toml:"dir" yaml:"dir"`
	Format string `json:"format" toml:"format" yaml:"format"` // csv|csv.gz|jsonl|parquet
}

// Config is a full run description. Empty source fields fall back to the
// dataset's defaults; a nil Impute map keeps the dataset's imputation groups.
type Config struct {
	Dataset   string              `json:"dataset" toml:"dataset" yaml:"dataset"`
	LogLevel  string              `json:"log_level" toml:"log_level" yaml:"log_level"`
	LogFormat string              `json:"log_format" toml:"log_format" yaml:"log_format"`
	Source    Source              `json:"source" toml:"source" yaml:"source"`
	Prune     Prune               `json:"prune" toml:"prune" yaml:"prune"`
	Split     Split               `json:"split" toml:"split" yaml:"split"`
	Impute    map[string][]string `json:"impute" toml:"impute" yaml:"impute"`
	Outliers  Outliers            `json:"outliers" toml:"outliers" yaml:"outliers"`
	Output    Output              `json:"output" toml:"output" yaml:"output"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Dataset:   "zillow",
		LogLevel:  "info",
		LogFormat: "json",
		Source:    Source{Driver: "mysql", UseCache: true},
		Prune:     Prune{MinColumnDensity: 0.9, MinRowDensity: 0.9},
		Split:     Split{TestRatio: 0.2, ValidateRatio: 0.3, Seed: 123},
		Outliers:  Outliers{K: 1.5},
		Output:    Output{Dir: ".", Format: "csv"},
	}
}

// Load reads path over Default, choosing the decoder by file extension, and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	default:
		return cfg, &fr.InvalidConfigError{Field: "path", Reason: fmt.Sprintf("unsupported config extension %q", ext)}
	}
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Dataset {
	case "zillow", "mall":
	default:
		return &fr.InvalidConfigError{Field: "dataset", Reason: fmt.Sprintf("unknown dataset %q", c.Dataset)}
	}
	switch c.LogFormat {
	case "", "json", "text":
	default:
		return &fr.InvalidConfigError{Field: "log_format", Reason: fmt.Sprintf("unknown format %q", c.LogFormat)}
	}
	switch c.Source.Driver {
	case "mysql", "sqlite":
	default:
		return &fr.InvalidConfigError{Field: "source.driver", Reason: fmt.Sprintf("unsupported driver %q", c.Source.Driver)}
	}
	for field, v := range map[string]float64{
		"prune.min_column_density": c.Prune.MinColumnDensity,
		"prune.min_row_density":    c.Prune.MinRowDensity,
	} {
		if v < 0 || v > 1 {
			return &fr.InvalidConfigError{Field: field, Reason: fmt.Sprintf("%v outside [0, 1]", v)}
		}
	}
	if c.Split.TestRatio < 0 || c.Split.ValidateRatio < 0 || c.Split.TestRatio >= 1 || c.Split.ValidateRatio >= 1 {
		return &fr.InvalidConfigError{Field: "split", Reason: "ratios must lie in [0, 1)"}
	}
	if c.Outliers.K < 0 {
		return &fr.InvalidConfigError{Field: "outliers.k", Reason: "must not be negative"}
	}
	switch c.Output.Format {
	case "csv", "csv.gz", "jsonl", "parquet":
	default:
		return &fr.InvalidConfigError{Field: "output.format", Reason: fmt.Sprintf("unknown format %q", c.Output.Format)}
	}
	if c.Impute != nil {
		if _, err := imp.SpecFromMap(c.Impute); err != nil {
			return err
		}
	}
	return nil
}

// ImputeSpec returns the configured imputation groups, or nil when the
// dataset defaults apply.
func (c Config) ImputeSpec() (imp.Spec, error) {
	if c.Impute == nil {
		return nil, nil
	}
	return imp.SpecFromMap(c.Impute)
}

// DSN returns the configured DSN, or builds a MySQL one from the connection
// fields using database when none is set there.
func (c Config) DSN(database string) string {
	s := c.Source
	if s.DSN != "" || s.Driver != "mysql" {
		return s.DSN
	}
	if s.Database != "" {
		database = s.Database
	}
	return source.MySQLDSN(s.User, s.Password, s.Host, database)
}

// Apply overlays the configured source fields on a dataset's defaults.
// database names the dataset's default MySQL schema.
func (c Config) Apply(def source.Config, database string) source.Config {
	out := def
	out.Driver = c.Source.Driver
	out.DSN = c.DSN(database)
	out.UseCache = c.Source.UseCache
	if c.Source.Query != "" {
		out.Query = c.Source.Query
	}
	if c.Source.CachePath != "" {
		out.CachePath = c.Source.CachePath
	}
	return out
}
