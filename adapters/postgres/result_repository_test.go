package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"screenline/domain/core"
	"screenline/domain/screening"
)

// Identifier validation runs before any database work, so these cases need
// no live connection.
func TestPersist_RejectsInvalidTableName(t *testing.T) {
	sink := NewResultRepository(nil)
	results := screening.ResultTable{{Event: "invited_friend"}}

	cases := []string{
		"results; DROP TABLE members",
		"results table",
		`results"`,
		"1results",
	}
	for _, destination := range cases {
		err := sink.Persist(context.Background(), core.NewRunID(), destination, results)
		assert.Error(t, err, destination)
	}
}
