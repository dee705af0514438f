package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsMatchDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VECEDIT_HANDLE_SIZE", "9")
	t.Setenv("VECEDIT_HANDLE_STROKE", "#ff0000")
	t.Setenv("VECEDIT_HISTORY_LIMIT", "20")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9.0, cfg.HandleSize)
	assert.Equal(t, "#ff0000", cfg.HandleStroke)
	assert.Equal(t, 20, cfg.HistoryLimit)
	assert.Equal(t, 10.0, cfg.NeswHandleWidth)
}

func TestLoadRejectsBadNumber(t *testing.T) {
	t.Setenv("VECEDIT_ZOOM_MAX", "lots")
	_, err := Load()
	assert.Error(t, err)
}
