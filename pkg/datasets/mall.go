package datasets

import (
	"context"

	fr "github.com/wdm0006/wrangle/pkg/frame"
	"github.com/wdm0006/wrangle/pkg/source"
	"github.com/wdm0006/wrangle/pkg/transform/encode"
	"github.com/wdm0006/wrangle/pkg/transform/outliers"
)

const (
	MallDatabase = "mall_customers"
	MallQuery    = "SELECT * FROM customers;"
)

func MallSource(dsn string) source.Config {
	return source.Config{
		Name:      "mall",
		Driver:    "mysql",
		DSN:       dsn,
		Query:     MallQuery,
		CachePath: "mall.csv",
		UseCache:  true,
	}
}

// EncodeGender replaces gender with a gender_Male indicator.
func EncodeGender(ctx context.Context, f *fr.Frame) (*fr.Frame, error) {
	return (&encode.Dummies{Columns: []string{"gender"}, DropFirst: true}).Apply(ctx, f)
}

type MallOptions struct {
	K              float64
	OutlierColumns []string
	// CapColumns are clipped into their fences after the excess columns
	// are computed.
	CapColumns []string
}

func DefaultMallOptions() MallOptions {
	return MallOptions{K: 1.5, OutlierColumns: []string{"age", "annual_income", "spending_score"}}
}

// PrepareMall encodes gender, appends upper and lower outlier excess columns
// for each outlier column, then caps the CapColumns.
func PrepareMall(ctx context.Context, f *fr.Frame, opt MallOptions) (*fr.Frame, error) {
	out, err := EncodeGender(ctx, f)
	if err != nil {
		return nil, err
	}
	p := fr.NewPipeline()
	for _, c := range opt.OutlierColumns {
		p.Add(&outliers.Excess{Column: c, K: opt.K})
	}
	for _, c := range opt.CapColumns {
		p.Add(&outliers.Cap{Column: c, K: opt.K})
	}
	return p.Run(ctx, out)
}
