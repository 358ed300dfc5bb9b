package testkit

import (
	"math"
	"testing"

	"screenline/internal/config"
)

// TestGenerator_Deterministic: same seed, same dataset.
func TestGenerator_Deterministic(t *testing.T) {
	specs := []EventSpec{
		{Name: "event_a", ExposureRate: 0.4, OutcomeLift: 2.0},
		{Name: "event_b", ExposureRate: 0.6, OutcomeLift: 1.0, MissingRate: 0.2},
	}

	first := NewGenerator(42, 0.15).Members(500, specs)
	second := NewGenerator(42, 0.15).Members(500, specs)

	for _, name := range first.Names() {
		a, _ := first.Column(name)
		b, ok := second.Column(name)
		if !ok {
			t.Fatalf("column %s missing from second dataset", name)
		}
		for i := range a {
			if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
				t.Fatalf("column %s differs at row %d: %v vs %v", name, i, a[i], b[i])
			}
		}
	}
}

func TestGenerator_MemberColumnsPresent(t *testing.T) {
	ds := NewGenerator(1, 0.1).Members(100, nil)

	for _, name := range config.DefaultMemberCols {
		if !ds.Has(name) {
			t.Errorf("expected member column %s", name)
		}
	}
	if ds.Rows() != 100 {
		t.Errorf("expected 100 rows, got %d", ds.Rows())
	}
}

func TestGenerator_MissingRateProducesNaNs(t *testing.T) {
	ds := NewGenerator(3, 0.1).Members(1000, []EventSpec{
		{Name: "sparse", ExposureRate: 0.5, OutcomeLift: 1.0, MissingRate: 0.3},
	})

	col, _ := ds.Column("sparse")
	missing := ds.Rows() - col.NonMissing()
	if missing < 200 || missing > 400 {
		t.Errorf("expected roughly 300 missing cells, got %d", missing)
	}
}
