// Package datasets holds the source queries and preparation pipelines for
// the zillow property and mall customer datasets.
package datasets

import (
	"context"
	"log/slog"

	fr "github.com/wdm0006/wrangle/pkg/frame"
	"github.com/wdm0006/wrangle/pkg/source"
	"github.com/wdm0006/wrangle/pkg/split"
	"github.com/wdm0006/wrangle/pkg/transform/filter"
	imp "github.com/wdm0006/wrangle/pkg/transform/impute"
	"github.com/wdm0006/wrangle/pkg/transform/prune"
)

const ZillowDatabase = "zillow"

// ZillowQuery selects 2017 properties with their most recent transaction and
// the descriptive labels for each type id.
const ZillowQuery = `
SELECT
    properties_2017.*,
    logerror,
    transactiondate,
    typeconstructiondesc,
    airconditioningdesc,
    architecturalstyledesc,
    buildingclassdesc,
    propertylandusedesc,
    storydesc,
    heatingorsystemdesc
FROM properties_2017
JOIN predictions_2017 ON properties_2017.parcelid = predictions_2017.parcelid
    AND predictions_2017.transactiondate LIKE '2017%'
LEFT JOIN typeconstructiontype USING (typeconstructiontypeid)
LEFT JOIN airconditioningtype USING (airconditioningtypeid)
LEFT JOIN architecturalstyletype USING (architecturalstyletypeid)
LEFT JOIN buildingclasstype USING (buildingclasstypeid)
LEFT JOIN propertylandusetype USING (propertylandusetypeid)
LEFT JOIN storytype USING (storytypeid)
LEFT JOIN heatingorsystemtype USING (heatingorsystemtypeid)
JOIN (
    SELECT parcelid, MAX(transactiondate) AS date
    FROM predictions_2017
    GROUP BY parcelid
) AS max_dates ON properties_2017.parcelid = max_dates.parcelid
    AND predictions_2017.transactiondate = max_dates.date
WHERE latitude IS NOT NULL AND longitude IS NOT NULL;
`

// ZillowSource returns the source settings for the zillow dataset cached at
// zillow.csv.
func ZillowSource(dsn string) source.Config {
	return source.Config{
		Name:      "zillow",
		Driver:    "mysql",
		DSN:       dsn,
		Query:     ZillowQuery,
		CachePath: "zillow.csv",
		UseCache:  true,
	}
}

// SingleUnitPropertyTypes are the land use descriptions of single-unit homes.
var SingleUnitPropertyTypes = []string{
	"Single Family Residential",
	"Condominium",
	"Cluster Home",
	"Mobile Home",
	"Manufactured, Modular, Prefabricated Homes",
	"Residential General",
	"Townhouse",
}

// ZillowTypeIDColumns duplicate the joined description columns.
var ZillowTypeIDColumns = []string{
	"typeconstructiontypeid",
	"airconditioningtypeid",
	"architecturalstyletypeid",
	"buildingclasstypeid",
	"propertylandusetypeid",
	"storytypeid",
	"heatingorsystemtypeid",
}

func DefaultZillowImputation() imp.Spec {
	return imp.Spec{
		{Strategy: imp.Mean, Columns: []string{
			"calculatedfinishedsquarefeet",
			"finishedsquarefeet12",
			"structuretaxvaluedollarcnt",
			"taxvaluedollarcnt",
			"landtaxvaluedollarcnt",
			"taxamount",
		}},
		{Strategy: imp.MostFrequent, Columns: []string{
			"calculatedbathnbr",
			"fullbathcnt",
			"regionidcity",
			"regionidzip",
			"yearbuilt",
		}},
		{Strategy: imp.Median, Columns: []string{"censustractandblock"}},
	}
}

// ZillowOptions configures PrepareZillow. A nil Partitioner means
// split.Default().
type ZillowOptions struct {
	MinColumnDensity float64
	MinRowDensity    float64
	Partitioner      split.Partitioner
	Impute           imp.Spec
}

func DefaultZillowOptions() ZillowOptions {
	return ZillowOptions{
		MinColumnDensity: 0.9,
		MinRowDensity:    0.9,
		Partitioner:      split.Default(),
		Impute:           DefaultZillowImputation(),
	}
}

// PrepareZillow drops the type id columns, keeps single-unit properties,
// prunes sparse columns and rows, splits, and imputes each partition with
// statistics fitted on train.
func PrepareZillow(ctx context.Context, f *fr.Frame, opt ZillowOptions) (split.Partitions, error) {
	clean, err := fr.NewPipeline(
		&prune.DropColumns{Columns: ZillowTypeIDColumns},
		&filter.Membership{
			Column:      "propertylandusedesc",
			Values:      SingleUnitPropertyTypes,
			CountColumn: "unitcnt",
			Count:       1,
		},
		&prune.Sparsity{MinColumnDensity: opt.MinColumnDensity, MinRowDensity: opt.MinRowDensity},
	).Run(ctx, f)
	if err != nil {
		return split.Partitions{}, err
	}
	slog.DebugContext(ctx, "zillow cleaned", "rows", clean.Rows(), "cols", clean.Cols())

	part := opt.Partitioner
	if part == nil {
		part = split.Default()
	}
	parts, err := part.Split(clean)
	if err != nil {
		return split.Partitions{}, err
	}
	train, validate, test, err := imp.FitTransform(parts.Train, parts.Validate, parts.Test, opt.Impute)
	if err != nil {
		return split.Partitions{}, err
	}
	return split.Partitions{Train: train, Validate: validate, Test: test}, nil
}
