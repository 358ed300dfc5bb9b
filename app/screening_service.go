package app

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"screenline/adapters/stats"
	"screenline/domain/core"
	"screenline/domain/dataset"
	"screenline/domain/screening"
	"screenline/internal"
	"screenline/internal/config"
	"screenline/internal/errors"
)

// ScreeningService orchestrates the univariate screening pipeline: derive
// the minimum-support threshold from the population's outcome rate, filter
// the candidate events, and run the independence tests over every survivor.
type ScreeningService struct {
	log *internal.Logger
}

// NewScreeningService creates a screening service
func NewScreeningService(logger *internal.Logger) *ScreeningService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ScreeningService{log: logger}
}

// Screen runs the full pipeline over one dataset and returns the per-event
// result table in retained input order.
//
// Every per-event test is an independent unit of work, so the loop fans out
// over a bounded errgroup (cfg.Workers, default 1 = sequential). Results
// land in index-addressed slots, so output order never depends on
// scheduling. The first failure cancels the group and aborts the run; there
// is no per-event isolation and no partial result table.
func (s *ScreeningService) Screen(ctx context.Context, runID core.RunID, ds *dataset.Dataset, cfg config.ScreenConfig) (screening.ResultTable, error) {
	started := time.Now()

	// Reject bad settings before any work: Workers < 1 would deadlock the
	// errgroup below, and an out-of-range alpha makes the significance flag
	// meaningless.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if ds.Rows() == 0 {
		return nil, errors.EmptyInput("dataset has zero rows; base outcome rate is undefined")
	}

	for _, name := range cfg.MemberCols {
		if !ds.Has(name) {
			return nil, errors.MissingColumn(name)
		}
	}
	outcome, ok := ds.Column(cfg.OutcomeCol)
	if !ok {
		return nil, errors.MissingColumn(cfg.OutcomeCol)
	}

	// Base rate over the full population, with no missing-value handling:
	// a NaN outcome cell propagates into a NaN rate.
	baseRate := outcome.Sum() / float64(ds.Rows())

	s.log.Info("[Screening] run %s: %d members, overall outcome rate %v", runID, ds.Rows(), baseRate)
	outcomeSummary := dataset.Summarize(cfg.OutcomeCol, outcome)
	s.log.Info("[Screening] outcome %s: mean=%v min=%v max=%v missing=%d",
		outcomeSummary.Name, outcomeSummary.Mean, outcomeSummary.Min, outcomeSummary.Max, outcomeSummary.Missing)

	if math.IsNaN(baseRate) {
		return nil, errors.InvalidInput("outcome rate is NaN; cannot derive a sample-size minimum")
	}

	threshold := stats.MinimumSupport(cfg.ConfidenceTier, baseRate)

	candidates := ds.EventColumns(cfg.MemberCols)
	retained := make([]string, 0, len(candidates))
	for _, name := range candidates {
		col, _ := ds.Column(name)
		// Strictly greater than: an event sitting exactly on the threshold
		// is dropped.
		if col.Total() > float64(threshold) {
			retained = append(retained, name)
		}
	}

	s.log.Info("[Screening] minimum support %d (%s tier): %d of %d events retained",
		threshold, cfg.ConfidenceTier, len(retained), len(candidates))

	results := make(screening.ResultTable, len(retained))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, name := range retained {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := s.testEvent(ds, name, outcome, cfg.Alpha)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info("[Screening] run %s completed in %.2fms: %d significant of %d tested",
		runID, float64(time.Since(started).Nanoseconds())/1e6, results.SignificantCount(), len(results))

	return results, nil
}

// testEvent runs one event through table construction, both independence
// tests, and the effect-size computations.
func (s *ScreeningService) testEvent(ds *dataset.Dataset, name string, outcome dataset.Column, alpha float64) (screening.TestResult, error) {
	event, _ := ds.Column(name)

	table, err := stats.BuildContingency(event, outcome)
	if err != nil {
		return screening.TestResult{}, errors.Wrapf(err, "building contingency table for event %q", name)
	}

	testStats, err := stats.TestIndependence(table)
	if err != nil {
		return screening.TestResult{}, errors.Wrapf(err, "testing independence for event %q", name)
	}

	noEventPopulation := table.RowTotal(screening.EventAbsent)
	eventPopulation := table.RowTotal(screening.EventPresent)
	noEventRate := float64(table.Cell(screening.EventAbsent, screening.OutcomePresent)) / float64(noEventPopulation)
	eventRate := float64(table.Cell(screening.EventPresent, screening.OutcomePresent)) / float64(eventPopulation)

	// Positive effect means the event is associated with a LOWER outcome rate.
	effect := noEventRate - eventRate

	lowestP := math.Min(testStats.PChi, testStats.PFisher)
	significant := 0
	if lowestP <= alpha {
		significant = 1
	}

	return screening.TestResult{
		Event:              name,
		LowestPValue:       lowestP,
		PChiValue:          testStats.PChi,
		PFisherValue:       testStats.PFisher,
		Table:              table,
		NoEventPopulation:  noEventPopulation,
		EventPopulation:    eventPopulation,
		NoEventCancelRate:  noEventRate,
		EventCancelRate:    eventRate,
		EffectSize:         effect,
		AbsoluteEffectSize: math.Abs(effect),
		Significant:        significant,
	}, nil
}
