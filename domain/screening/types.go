package screening

import (
	"fmt"
)

// ============================================================================
// CONTINGENCY TABLE (labeled axes)
// ============================================================================

// Row and column labels for the 2x2 contingency table. All cell access goes
// through these constants so a transposed table cannot be built silently.
const (
	EventAbsent  = 0
	EventPresent = 1

	OutcomeAbsent  = 0
	OutcomePresent = 1
)

// ContingencyTable is a 2x2 cross-tabulation of one binary event against the
// binary outcome. Cells are non-negative and sum to the number of rows where
// both values are present.
type ContingencyTable struct {
	cells [2][2]int
}

// NewContingencyTable builds a table from labeled cell counts.
func NewContingencyTable(cells [2][2]int) (ContingencyTable, error) {
	for i := range cells {
		for j := range cells[i] {
			if cells[i][j] < 0 {
				return ContingencyTable{}, fmt.Errorf("contingency cell [%d][%d] is negative: %d", i, j, cells[i][j])
			}
		}
	}
	return ContingencyTable{cells: cells}, nil
}

// Cell returns the count for (event row, outcome column).
func (t ContingencyTable) Cell(event, outcome int) int {
	return t.cells[event][outcome]
}

// Increment adds one observation to (event row, outcome column).
func (t *ContingencyTable) Increment(event, outcome int) {
	t.cells[event][outcome]++
}

// RowTotal returns the population of one event row.
func (t ContingencyTable) RowTotal(event int) int {
	return t.cells[event][OutcomeAbsent] + t.cells[event][OutcomePresent]
}

// ColTotal returns the population of one outcome column.
func (t ContingencyTable) ColTotal(outcome int) int {
	return t.cells[EventAbsent][outcome] + t.cells[EventPresent][outcome]
}

// N returns the total observation count.
func (t ContingencyTable) N() int {
	return t.RowTotal(EventAbsent) + t.RowTotal(EventPresent)
}

// Degenerate reports whether any row or column margin is zero, in which case
// the independence tests are undefined.
func (t ContingencyTable) Degenerate() bool {
	return t.RowTotal(EventAbsent) == 0 ||
		t.RowTotal(EventPresent) == 0 ||
		t.ColTotal(OutcomeAbsent) == 0 ||
		t.ColTotal(OutcomePresent) == 0
}

// String renders the table in the persisted result format: [[a b] [c d]]
// with row 0 = event absent and column 0 = outcome absent.
func (t ContingencyTable) String() string {
	return fmt.Sprintf("[[%d %d] [%d %d]]",
		t.cells[EventAbsent][OutcomeAbsent], t.cells[EventAbsent][OutcomePresent],
		t.cells[EventPresent][OutcomeAbsent], t.cells[EventPresent][OutcomePresent])
}

// ============================================================================
// TEST OUTPUT
// ============================================================================

// TestStats holds the raw statistics from one independence test run.
// INVARIANTS:
// - PChi and PFisher are in [0.0, 1.0]
// - DoF is (rows-1)*(cols-1), always 1 for a 2x2 table
type TestStats struct {
	ChiSquare float64 `json:"chi_square"`
	PChi      float64 `json:"p_chi"`
	PFisher   float64 `json:"p_fisher"`
	OddsRatio float64 `json:"odds_ratio"` // computed, not persisted downstream
	DoF       int     `json:"dof"`
}

// TestResult is the fixed-shape per-event record assembled by the screener.
// Produced once per retained event and immutable afterwards.
type TestResult struct {
	Event              string           `json:"event"`
	LowestPValue       float64          `json:"lowest_p_value"`
	PChiValue          float64          `json:"p_chi_value"`
	PFisherValue       float64          `json:"p_fisher_value"`
	Table              ContingencyTable `json:"contingency_table"`
	NoEventPopulation  int              `json:"no_event_population"`
	EventPopulation    int              `json:"event_population"`
	NoEventCancelRate  float64          `json:"no_event_cancel_rate"`
	EventCancelRate    float64          `json:"event_cancel_rate"`
	EffectSize         float64          `json:"effect_size"`
	AbsoluteEffectSize float64          `json:"absolute_effect_size"`
	Significant        int              `json:"statistically_significant"`
}

// ResultTable collects per-event results. Order follows the retained event
// set's enumeration order, which is the dataset's column order; it is never
// re-sorted here.
type ResultTable []TestResult

// Events returns the event names in result order.
func (rt ResultTable) Events() []string {
	names := make([]string, len(rt))
	for i, r := range rt {
		names[i] = r.Event
	}
	return names
}

// SignificantCount returns how many events passed the significance cut.
func (rt ResultTable) SignificantCount() int {
	n := 0
	for _, r := range rt {
		if r.Significant == 1 {
			n++
		}
	}
	return n
}

// ============================================================================
// CONFIDENCE TIERS
// ============================================================================

// ConfidenceTier controls how conservative the minimum-sample-size filter is.
type ConfidenceTier string

const (
	TierLow    ConfidenceTier = "low"
	TierMedium ConfidenceTier = "medium"
	TierHigh   ConfidenceTier = "high"
)

// ZScore returns the z value behind each tier. Unrecognized tiers fall
// through to the high-confidence z, the deliberate conservative default.
func (t ConfidenceTier) ZScore() float64 {
	switch t {
	case TierLow:
		return 1.15 // ~75% CI
	case TierMedium:
		return 1.44 // ~85% CI
	default:
		return 1.96 // ~95% CI
	}
}
