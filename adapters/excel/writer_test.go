package excel

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenline/domain/core"
	"screenline/domain/screening"
)

func TestResultWriter_Persist(t *testing.T) {
	table, err := screening.NewContingencyTable([2][2]int{{45, 5}, {40, 10}})
	require.NoError(t, err)

	results := screening.ResultTable{
		{
			Event:              "invited_friend",
			LowestPValue:       0.031,
			PChiValue:          0.042,
			PFisherValue:       0.031,
			Table:              table,
			NoEventPopulation:  50,
			EventPopulation:    50,
			NoEventCancelRate:  0.1,
			EventCancelRate:    0.2,
			EffectSize:         -0.1,
			AbsoluteEffectSize: 0.1,
			Significant:        1,
		},
	}

	path := filepath.Join(t.TempDir(), "results.csv")
	writer := NewResultWriter(nil)
	runID := core.RunID(core.NewID())
	require.NoError(t, writer.Persist(context.Background(), runID, path, results))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, resultHeader, records[0])

	row := records[1]
	assert.Equal(t, "invited_friend", row[0])
	assert.Equal(t, "0.031", row[1])
	assert.Equal(t, "[[45 5] [40 10]]", row[4])
	assert.Equal(t, "50", row[5])
	assert.Equal(t, "-0.1", row[9])
	assert.Equal(t, "1", row[11])
}

func TestResultWriter_EmptyTableStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	writer := NewResultWriter(nil)
	require.NoError(t, writer.Persist(context.Background(), core.RunID(core.NewID()), path, nil))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, resultHeader, records[0])
}
