package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumn_SumPropagatesNaN(t *testing.T) {
	col := Column{1, 0, math.NaN(), 1}
	assert.True(t, math.IsNaN(col.Sum()))
}

func TestColumn_TotalSkipsNaN(t *testing.T) {
	col := Column{1, 0, math.NaN(), 1, math.NaN()}
	assert.Equal(t, 2.0, col.Total())
	assert.Equal(t, 3, col.NonMissing())
}

func TestDataset_PreservesColumnOrder(t *testing.T) {
	ds := New(3)
	ds.AddColumn("zebra", Column{1, 1, 1})
	ds.AddColumn("apple", Column{0, 0, 0})
	ds.AddColumn("mango", Column{1, 0, 1})

	assert.Equal(t, []string{"zebra", "apple", "mango"}, ds.Names())

	// Replacing values keeps the original position.
	ds.AddColumn("apple", Column{1, 1, 1})
	assert.Equal(t, []string{"zebra", "apple", "mango"}, ds.Names())
}

func TestDataset_EventColumnsExcludesMembers(t *testing.T) {
	ds := New(2)
	ds.AddColumn("designer_id", Column{1, 2})
	ds.AddColumn("invited_friend", Column{0, 1})
	ds.AddColumn("canceled_1_week", Column{0, 1})
	ds.AddColumn("used_template", Column{1, 1})

	events := ds.EventColumns([]string{"designer_id", "canceled_1_week"})
	assert.Equal(t, []string{"invited_friend", "used_template"}, events)
}

func TestSummarize(t *testing.T) {
	col := Column{1, 0, 1, math.NaN(), 1}
	s := Summarize("invited_friend", col)

	assert.Equal(t, "invited_friend", s.Name)
	assert.Equal(t, 5, s.Rows)
	assert.Equal(t, 1, s.Missing)
	assert.Equal(t, 4, s.NonMissing)
	assert.InDelta(t, 0.75, s.Mean, 1e-12)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 1.0, s.Max)
}

func TestSummarize_AllMissing(t *testing.T) {
	s := Summarize("created_at", Column{math.NaN(), math.NaN()})

	assert.Equal(t, 2, s.Missing)
	assert.Equal(t, 0, s.NonMissing)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.StdDev))
}
