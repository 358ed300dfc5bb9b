package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"

	"screenline/domain/screening"
	"screenline/internal/errors"
)

// fisherRelTol absorbs floating-point noise when comparing table
// probabilities against the observed one.
const fisherRelTol = 1e-7

// TestIndependence runs both independence tests on a 2x2 contingency table:
// the log-likelihood-ratio (G-test) variant of the chi-squared test, and
// Fisher's exact test. The G statistic is deliberate; Pearson's statistic is
// not an acceptable substitute here.
//
// A table with a zero row or column margin leaves both tests undefined and
// is rejected with a DEGENERATE_TABLE error that aborts the whole run.
func TestIndependence(table screening.ContingencyTable) (screening.TestStats, error) {
	if table.Degenerate() {
		return screening.TestStats{}, errors.New(errors.CodeDegenerateTable,
			"contingency table has a zero row or column margin")
	}

	g := gStatistic(table)
	dof := 1 // (rows-1)*(cols-1) for a 2x2 table

	chiDist := distuv.ChiSquared{K: float64(dof)}
	pChi := 1 - chiDist.CDF(g)

	oddsRatio, pFisher := fisherExact(table)

	return screening.TestStats{
		ChiSquare: g,
		PChi:      pChi,
		PFisher:   pFisher,
		OddsRatio: oddsRatio,
		DoF:       dof,
	}, nil
}

// gStatistic computes the likelihood-ratio statistic G = 2 * sum(o*ln(o/e))
// with the continuity adjustment for one degree of freedom: each observed
// count moves 0.5 toward its expected value before the sum.
func gStatistic(table screening.ContingencyTable) float64 {
	n := float64(table.N())

	g := 0.0
	for _, row := range []int{screening.EventAbsent, screening.EventPresent} {
		for _, col := range []int{screening.OutcomeAbsent, screening.OutcomePresent} {
			expected := float64(table.RowTotal(row)) * float64(table.ColTotal(col)) / n
			observed := float64(table.Cell(row, col))
			if observed != expected {
				if expected > observed {
					observed += 0.5
				} else {
					observed -= 0.5
				}
			}
			if observed > 0 {
				g += observed * math.Log(observed/expected)
			}
		}
	}

	return 2 * g
}

// fisherExact computes the sample odds ratio and the two-sided exact p-value
// for the table, conditioning on both margins. The p-value sums the
// hypergeometric probabilities of every table at least as extreme as the
// observed one.
func fisherExact(table screening.ContingencyTable) (oddsRatio, pValue float64) {
	a := table.Cell(screening.EventAbsent, screening.OutcomeAbsent)
	b := table.Cell(screening.EventAbsent, screening.OutcomePresent)
	c := table.Cell(screening.EventPresent, screening.OutcomeAbsent)
	d := table.Cell(screening.EventPresent, screening.OutcomePresent)

	if b > 0 && c > 0 {
		oddsRatio = float64(a*d) / float64(b*c)
	} else {
		oddsRatio = math.Inf(1)
	}

	row0 := a + b
	row1 := c + d
	col0 := a + c
	n := row0 + row1

	// Support of the top-left cell given fixed margins.
	lo := 0
	if row0+col0-n > 0 {
		lo = row0 + col0 - n
	}
	hi := row0
	if col0 < hi {
		hi = col0
	}

	pObserved := hypergeomPMF(a, row0, row1, col0, n)
	threshold := pObserved * (1 + fisherRelTol)

	pValue = 0
	for x := lo; x <= hi; x++ {
		if p := hypergeomPMF(x, row0, row1, col0, n); p <= threshold {
			pValue += p
		}
	}
	if pValue > 1 {
		pValue = 1
	}

	return oddsRatio, pValue
}

// hypergeomPMF is P(X = x) for the top-left cell of a 2x2 table with fixed
// margins: C(row0, x) * C(row1, col0-x) / C(n, col0). Computed in log space
// to stay finite for large populations.
func hypergeomPMF(x, row0, row1, col0, n int) float64 {
	logP := combin.LogGeneralizedBinomial(float64(row0), float64(x)) +
		combin.LogGeneralizedBinomial(float64(row1), float64(col0-x)) -
		combin.LogGeneralizedBinomial(float64(n), float64(col0))
	return math.Exp(logP)
}
