package ports

import (
	"context"

	"screenline/domain/core"
	"screenline/domain/screening"
)

// ResultSink persists a screening result table to a destination. The sink is
// only invoked after a fully successful run; there are no partial results.
type ResultSink interface {
	Persist(ctx context.Context, runID core.RunID, destination string, results screening.ResultTable) error
}
