package frame

import "fmt"

// SchemaError reports a referenced column that is absent from a frame.
type SchemaError struct {
	Op     string
	Column string
}

func (e *SchemaError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("unknown column: %s", e.Column)
	}
	return fmt.Sprintf("%s: unknown column: %s", e.Op, e.Column)
}

// EmptyFitError reports a column whose fitting data has no non-missing value,
// leaving the statistic undefined.
type EmptyFitError struct {
	Strategy string
	Column   string
}

func (e *EmptyFitError) Error() string {
	return fmt.Sprintf("%s: column %s has no non-missing values to fit", e.Strategy, e.Column)
}

// InvalidConfigError reports a malformed option such as an out of range
// threshold or overlapping imputation groups.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}
