package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 80, cfg.WorldWidth)
	assert.Equal(t, "data/wildermark.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WILDERMARK_SEED", "1234")
	t.Setenv("WILDERMARK_TURNS", "500")
	t.Setenv("WILDERMARK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, 500, cfg.Turns)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsTinyWorld(t *testing.T) {
	t.Setenv("WILDERMARK_WIDTH", "4")
	_, err := Load()
	assert.Error(t, err)
}
