package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"screenline/domain/core"
	"screenline/domain/screening"
	"screenline/ports"
)

// tableNamePattern limits destination tables to plain SQL identifiers, since
// the name cannot be a bind parameter and goes into the statement text.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// resultRepository persists screening results to a warehouse table instead
// of a file. The destination argument names the target table; an empty
// destination falls back to screening_results.
type resultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a Postgres-backed result sink
func NewResultRepository(db *sqlx.DB) ports.ResultSink {
	return &resultRepository{db: db}
}

// Persist inserts one row per retained event, all within a single
// transaction so a failed run leaves nothing behind.
func (r *resultRepository) Persist(ctx context.Context, runID core.RunID, destination string, results screening.ResultTable) error {
	table := destination
	if table == "" {
		table = "screening_results"
	}
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("invalid destination table name: %q", table)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`INSERT INTO %s (
		run_id, created_at, event, lowest_p_value, p_chi_value, p_fisher_value,
		contingency_table, no_event_population, event_population,
		no_event_cancel_rate, event_cancel_rate, effect_size,
		absolute_effect_size, statistically_significant
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`, table)

	createdAt := core.Now()
	for _, result := range results {
		_, err := tx.ExecContext(ctx, query,
			runID.String(), createdAt.Time(), result.Event, result.LowestPValue, result.PChiValue, result.PFisherValue,
			result.Table.String(), result.NoEventPopulation, result.EventPopulation,
			result.NoEventCancelRate, result.EventCancelRate, result.EffectSize,
			result.AbsoluteEffectSize, result.Significant,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result for event %q: %w", result.Event, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	return nil
}
