package stats

import (
	"math"

	"screenline/domain/dataset"
	"screenline/domain/screening"
	"screenline/internal/errors"
)

// BuildContingency cross-tabulates one binary event column against the
// binary outcome column into a labeled 2x2 table.
//
// A row where either value is missing carries no observation for this event
// and is skipped by the tabulation itself; there is no separate pre-filter
// step. The four cells therefore sum to the event's non-missing pair count.
//
// Zero margins are not patched here. Degenerate tables flow to the
// independence test, which rejects them.
func BuildContingency(event, outcome dataset.Column) (screening.ContingencyTable, error) {
	if len(event) != len(outcome) {
		return screening.ContingencyTable{}, errors.InvalidInput("event and outcome columns differ in length")
	}

	var table screening.ContingencyTable
	for i := range event {
		if math.IsNaN(event[i]) || math.IsNaN(outcome[i]) {
			continue
		}

		row := screening.EventAbsent
		if event[i] == 1 {
			row = screening.EventPresent
		}
		col := screening.OutcomeAbsent
		if outcome[i] == 1 {
			col = screening.OutcomePresent
		}
		table.Increment(row, col)
	}

	return table, nil
}
