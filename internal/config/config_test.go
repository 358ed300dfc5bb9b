package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenline/domain/screening"
	"screenline/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Screen.Alpha)
	assert.Equal(t, screening.TierHigh, cfg.Screen.ConfidenceTier)
	assert.Equal(t, DefaultMemberCols, cfg.Screen.MemberCols)
	assert.Equal(t, DefaultOutcomeCol, cfg.Screen.OutcomeCol)
	assert.Equal(t, 1, cfg.Screen.Workers)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCREEN_ALPHA", "0.01")
	t.Setenv("SCREEN_CONFIDENCE", "low")
	t.Setenv("SCREEN_MEMBER_COLS", "id, churned")
	t.Setenv("SCREEN_OUTCOME_COL", "churned")
	t.Setenv("SCREEN_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Screen.Alpha)
	assert.Equal(t, screening.TierLow, cfg.Screen.ConfidenceTier)
	assert.Equal(t, []string{"id", "churned"}, cfg.Screen.MemberCols)
	assert.Equal(t, "churned", cfg.Screen.OutcomeCol)
	assert.Equal(t, 4, cfg.Screen.Workers)
}

func TestLoad_InvalidAlpha(t *testing.T) {
	t.Setenv("SCREEN_ALPHA", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SCREEN_ALPHA", "not-a-number")
	t.Setenv("SCREEN_WORKERS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Screen.Alpha)
	assert.Equal(t, 1, cfg.Screen.Workers)
}

func TestValidate_Workers(t *testing.T) {
	cfg := &Config{Screen: ScreenConfig{Alpha: 0.05, OutcomeCol: "outcome", Workers: 0}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

// An unrecognized tier validates fine and defers to the threshold fallback.
func TestValidate_UnrecognizedTierAccepted(t *testing.T) {
	cfg := &Config{Screen: ScreenConfig{
		Alpha:          0.05,
		ConfidenceTier: screening.ConfidenceTier("extreme"),
		OutcomeCol:     "outcome",
		Workers:        1,
	}}
	assert.NoError(t, cfg.Validate())
}
