package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"screenline/domain/dataset"
	"screenline/internal/config"
)

// EventSpec describes one synthetic event column.
type EventSpec struct {
	Name         string
	ExposureRate float64 // fraction of members with the event
	OutcomeLift  float64 // multiplier on exposure odds for members with outcome=1
	MissingRate  float64 // fraction of members who predate the event (NaN cells)
}

// Generator builds synthetic member/event datasets with a seeded RNG so
// fixtures are reproducible across runs.
type Generator struct {
	rng      *rand.Rand
	baseRate float64
}

// NewGenerator creates a generator with the given seed and overall outcome rate
func NewGenerator(seed int64, baseOutcomeRate float64) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewSource(seed)),
		baseRate: baseOutcomeRate,
	}
}

// Members generates a dataset of n members carrying the standard member
// columns plus one binary column per event spec.
func (g *Generator) Members(n int, events []EventSpec) *dataset.Dataset {
	ds := dataset.New(n)

	outcome := make(dataset.Column, n)
	for i := range outcome {
		outcome[i] = 0
		if g.rng.Float64() < g.baseRate {
			outcome[i] = 1
		}
	}

	ids := make(dataset.Column, n)
	naCol := make(dataset.Column, n)
	hourCol := make(dataset.Column, n)
	dayCol := make(dataset.Column, n)
	for i := 0; i < n; i++ {
		ids[i] = float64(i + 1)
		naCol[i] = math.NaN() // timestamps are not numeric in the source files
		// Faster cancellations are a subset of the one-week outcome.
		hourCol[i] = 0
		dayCol[i] = 0
		if outcome[i] == 1 {
			if g.rng.Float64() < 0.2 {
				hourCol[i] = 1
			}
			if g.rng.Float64() < 0.5 {
				dayCol[i] = 1
			}
		}
	}

	ds.AddColumn("designer_id", ids)
	ds.AddColumn("created_at", naCol)
	ds.AddColumn("canceled_at", naCol)
	ds.AddColumn("canceled_1_hour", hourCol)
	ds.AddColumn("canceled_1_day", dayCol)
	ds.AddColumn(config.DefaultOutcomeCol, outcome)

	for _, spec := range events {
		col := make(dataset.Column, n)
		for i := 0; i < n; i++ {
			if g.rng.Float64() < spec.MissingRate {
				col[i] = math.NaN()
				continue
			}
			p := spec.ExposureRate
			if outcome[i] == 1 {
				p *= spec.OutcomeLift
			}
			if p > 1 {
				p = 1
			}
			col[i] = 0
			if g.rng.Float64() < p {
				col[i] = 1
			}
		}
		ds.AddColumn(spec.Name, col)
	}

	return ds
}

// FixedEvents returns count event specs with uniform exposure and no lift,
// handy for filter-boundary tests.
func FixedEvents(count int, exposureRate float64) []EventSpec {
	specs := make([]EventSpec, count)
	for i := range specs {
		specs[i] = EventSpec{
			Name:         fmt.Sprintf("event_%02d", i),
			ExposureRate: exposureRate,
			OutcomeLift:  1.0,
		}
	}
	return specs
}
