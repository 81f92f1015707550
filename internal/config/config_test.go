package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthlens/internal/errors"
)

func TestLoadRequiresDataDir(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadRejectsMissingDirectory(t *testing.T) {
	t.Setenv("DATA_DIR", "/no/such/path")
	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("TREND_ALERT_PCT", "20.5")
	t.Setenv("TOP_CORRELATIONS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 20.5, cfg.Tuning.TrendAlertPct)
	assert.Equal(t, 5, cfg.Tuning.TopCorrelations)
	assert.Equal(t, 2.0, cfg.Tuning.AnomalyZ)
	assert.Equal(t, 30, cfg.Tuning.DefaultPeriod)
}
