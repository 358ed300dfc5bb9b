package stats

import (
	"math"

	"screenline/domain/screening"
)

// MinimumSupport computes the minimum frequency an event needs before it is
// worth testing. It is the standard sample-size formula for estimating a
// proportion within +/-5 percentage points at the tier's confidence z-score:
//
//	n = round(z^2 * p * (1-p) / 0.05^2)
//
// baseRate is the overall outcome rate of the population, not the event's
// own exposure rate. The single threshold is applied uniformly to every
// event's raw frequency count, a conservative heuristic rather than a
// per-event bound.
func MinimumSupport(tier screening.ConfidenceTier, baseRate float64) int {
	z := tier.ZScore()
	n := z * z * baseRate * (1 - baseRate) / (0.05 * 0.05)
	// Banker's rounding, not round-half-up.
	return int(math.RoundToEven(n))
}
