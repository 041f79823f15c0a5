package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wdm0006/wrangle/pkg/config"
	"github.com/wdm0006/wrangle/pkg/datasets"
	fr "github.com/wdm0006/wrangle/pkg/frame"
	"github.com/wdm0006/wrangle/pkg/io/csvio"
	"github.com/wdm0006/wrangle/pkg/io/jsonlio"
	"github.com/wdm0006/wrangle/pkg/io/parquetio"
	"github.com/wdm0006/wrangle/pkg/logging"
	"github.com/wdm0006/wrangle/pkg/profile"
	"github.com/wdm0006/wrangle/pkg/source"
	"github.com/wdm0006/wrangle/pkg/split"
)

var (
	version = "0.1.0-dev"
)

// usageError marks failures caused by bad flags or settings.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ue usageError
		if errors.As(err, &ue) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("wrangle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showVersion := fs.Bool("version", false, "Print version and exit")
	configPath := fs.String("config", "", "Path to run config (.json, .toml, .yaml)")
	dataset := fs.String("dataset", "", "Dataset to prepare: zillow|mall (overrides config)")
	noCache := fs.Bool("no-cache", false, "Query the database even if a cached copy exists")
	outDir := fs.String("out-dir", "", "Directory for outputs (overrides config)")
	nulls := fs.Bool("nulls", false, "Also write column and row null summaries")
	if err := fs.Parse(args); err != nil {
		return usageError{err}
	}

	if *showVersion {
		fmt.Fprintln(stdout, "wrangle", version)
		return nil
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return usageError{err}
		}
	}
	if *dataset != "" {
		cfg.Dataset = *dataset
	}
	if *noCache {
		cfg.Source.UseCache = false
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	if _, err := logging.Init(stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		return usageError{err}
	}

	switch cfg.Dataset {
	case "zillow":
		return runZillow(ctx, cfg, *nulls)
	case "mall":
		return runMall(ctx, cfg, *nulls)
	}
	return usageError{fmt.Errorf("unknown dataset %q", cfg.Dataset)}
}

func runZillow(ctx context.Context, cfg config.Config, nulls bool) error {
	f, err := source.Load(ctx, cfg.Apply(datasets.ZillowSource(""), datasets.ZillowDatabase))
	if err != nil {
		return err
	}
	if nulls {
		if err := writeNulls(cfg, f); err != nil {
			return err
		}
	}

	opt := datasets.DefaultZillowOptions()
	opt.MinColumnDensity = cfg.Prune.MinColumnDensity
	opt.MinRowDensity = cfg.Prune.MinRowDensity
	opt.Partitioner = &split.Random{TestRatio: cfg.Split.TestRatio, ValidateRatio: cfg.Split.ValidateRatio, Seed: cfg.Split.Seed}
	spec, err := cfg.ImputeSpec()
	if err != nil {
		return err
	}
	if spec != nil {
		opt.Impute = spec
	}

	parts, err := datasets.PrepareZillow(ctx, f, opt)
	if err != nil {
		return err
	}
	train, validate, test := parts.Rows()
	slog.InfoContext(ctx, "prepared zillow", "train", train, "validate", validate, "test", test)
	for name, p := range map[string]*fr.Frame{"train": parts.Train, "validate": parts.Validate, "test": parts.Test} {
		if err := writeOutput(cfg, "zillow_"+name, p); err != nil {
			return err
		}
	}
	return nil
}

func runMall(ctx context.Context, cfg config.Config, nulls bool) error {
	f, err := source.Load(ctx, cfg.Apply(datasets.MallSource(""), datasets.MallDatabase))
	if err != nil {
		return err
	}
	if nulls {
		if err := writeNulls(cfg, f); err != nil {
			return err
		}
	}
	opt := datasets.DefaultMallOptions()
	opt.K = cfg.Outliers.K
	if len(cfg.Outliers.Columns) > 0 {
		opt.OutlierColumns = cfg.Outliers.Columns
	}
	opt.CapColumns = cfg.Outliers.Cap
	out, err := datasets.PrepareMall(ctx, f, opt)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "prepared mall", "rows", out.Rows(), "cols", out.Cols())
	return writeOutput(cfg, "mall_prepared", out)
}

func writeNulls(cfg config.Config, f *fr.Frame) error {
	if err := writeOutput(cfg, cfg.Dataset+"_column_nulls", profile.ColumnNulls(f)); err != nil {
		return err
	}
	return writeOutput(cfg, cfg.Dataset+"_row_nulls", profile.RowNulls(f))
}

func writeOutput(cfg config.Config, stem string, f *fr.Frame) error {
	path := filepath.Join(cfg.Output.Dir, stem+"."+cfg.Output.Format)
	var err error
	switch cfg.Output.Format {
	case "parquet":
		err = parquetio.WriteAll(path, f)
	case "jsonl":
		err = jsonlio.WriteAll(path, f)
	default:
		err = csvio.WriteAll(path, f, csvio.WriterOptions{})
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("wrote output", "path", path, "rows", f.Rows())
	return nil
}
