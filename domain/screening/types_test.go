package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContingencyTable_MarginsAndString(t *testing.T) {
	table, err := NewContingencyTable([2][2]int{{45, 5}, {40, 10}})
	require.NoError(t, err)

	assert.Equal(t, 50, table.RowTotal(EventAbsent))
	assert.Equal(t, 50, table.RowTotal(EventPresent))
	assert.Equal(t, 85, table.ColTotal(OutcomeAbsent))
	assert.Equal(t, 15, table.ColTotal(OutcomePresent))
	assert.Equal(t, 100, table.N())
	assert.Equal(t, "[[45 5] [40 10]]", table.String())
}

func TestNewContingencyTable_RejectsNegativeCell(t *testing.T) {
	_, err := NewContingencyTable([2][2]int{{1, -1}, {0, 0}})
	assert.Error(t, err)
}

func TestContingencyTable_Degenerate(t *testing.T) {
	cases := []struct {
		name  string
		cells [2][2]int
		want  bool
	}{
		{"healthy", [2][2]int{{10, 5}, {8, 7}}, false},
		{"empty event row", [2][2]int{{10, 5}, {0, 0}}, true},
		{"empty outcome column", [2][2]int{{10, 0}, {8, 0}}, true},
		{"all zero", [2][2]int{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := NewContingencyTable(tc.cells)
			require.NoError(t, err)
			assert.Equal(t, tc.want, table.Degenerate())
		})
	}
}

func TestResultTable_Accessors(t *testing.T) {
	rt := ResultTable{
		{Event: "invited_friend", Significant: 1},
		{Event: "used_template", Significant: 0},
		{Event: "saved_board", Significant: 1},
	}

	assert.Equal(t, []string{"invited_friend", "used_template", "saved_board"}, rt.Events())
	assert.Equal(t, 2, rt.SignificantCount())
}

func TestConfidenceTier_ZScore(t *testing.T) {
	assert.Equal(t, 1.15, TierLow.ZScore())
	assert.Equal(t, 1.44, TierMedium.ZScore())
	assert.Equal(t, 1.96, TierHigh.ZScore())
	// Unrecognized tiers are deliberately conservative, not an error.
	assert.Equal(t, 1.96, ConfidenceTier("ultra").ZScore())
}
