package dataset

import (
	"math"

	"github.com/montanaflynn/stats"
)

// ColumnSummary captures basic descriptive statistics for one column,
// computed over the non-missing cells only. Reported for observability
// before a screening run; never used in the tests themselves.
type ColumnSummary struct {
	Name       string  `json:"name"`
	Rows       int     `json:"rows"`
	Missing    int     `json:"missing"`
	Mean       float64 `json:"mean"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	StdDev     float64 `json:"std_dev"`
	NonMissing int     `json:"non_missing"`
}

// Summarize computes descriptive statistics for a column. Columns with no
// non-missing cells come back with NaN moments.
func Summarize(name string, col Column) ColumnSummary {
	present := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	summary := ColumnSummary{
		Name:       name,
		Rows:       len(col),
		Missing:    len(col) - len(present),
		NonMissing: len(present),
		Mean:       math.NaN(),
		Min:        math.NaN(),
		Max:        math.NaN(),
		StdDev:     math.NaN(),
	}
	if len(present) == 0 {
		return summary
	}

	summary.Mean, _ = stats.Mean(present)
	summary.Min, _ = stats.Min(present)
	summary.Max, _ = stats.Max(present)
	summary.StdDev, _ = stats.StandardDeviation(present)
	return summary
}
