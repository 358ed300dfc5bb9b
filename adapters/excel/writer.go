package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"screenline/domain/core"
	"screenline/domain/screening"
	"screenline/internal"
)

// resultHeader is the persisted column set, one row per retained event, no
// index column.
var resultHeader = []string{
	"event",
	"lowest_p_value",
	"p_chi_value",
	"p_fisher_value",
	"contingency_table",
	"no_event_population",
	"event_population",
	"no_event_cancel_rate",
	"event_cancel_rate",
	"effect_size",
	"absolute_effect_size",
	"statistically_significant",
}

// ResultWriter persists a screening result table as CSV.
type ResultWriter struct {
	log *internal.Logger
}

// NewResultWriter creates a CSV result writer
func NewResultWriter(logger *internal.Logger) *ResultWriter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ResultWriter{log: logger}
}

// Persist writes the result table to destination, preserving result order.
func (w *ResultWriter) Persist(ctx context.Context, runID core.RunID, destination string, results screening.ResultTable) error {
	file, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(resultHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Event,
			formatFloat(result.LowestPValue),
			formatFloat(result.PChiValue),
			formatFloat(result.PFisherValue),
			result.Table.String(),
			strconv.Itoa(result.NoEventPopulation),
			strconv.Itoa(result.EventPopulation),
			formatFloat(result.NoEventCancelRate),
			formatFloat(result.EventCancelRate),
			formatFloat(result.EffectSize),
			formatFloat(result.AbsoluteEffectSize),
			strconv.Itoa(result.Significant),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write result for event %q: %w", result.Event, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}

	w.log.Info("[ResultWriter] run %s: wrote %d results to %s", runID, len(results), destination)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
