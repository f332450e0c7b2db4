package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quasim/quantum"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, 1000, cfg.DefaultShots)
	assert.False(t, cfg.Seeded)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QUASIM_LOG_LEVEL", "debug")
	t.Setenv("QUASIM_LOG_PRETTY", "false")
	t.Setenv("QUASIM_SHOTS", "250")
	t.Setenv("QUASIM_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, 250, cfg.DefaultShots)
	assert.True(t, cfg.Seeded)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoadRejectsBadSeed(t *testing.T) {
	t.Setenv("QUASIM_SEED", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsNegativeShots(t *testing.T) {
	t.Setenv("QUASIM_SHOTS", "-5")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, quantum.ErrBadSampling)
}

func TestMalformedIntFallsBack(t *testing.T) {
	t.Setenv("QUASIM_SHOTS", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.DefaultShots)
}

func TestSeededSimulatorReproducible(t *testing.T) {
	t.Setenv("QUASIM_SEED", "7")

	cfg, err := Load()
	require.NoError(t, err)

	circuit := quantum.New(2).H(0).CX(0, 1).MeasureAll()
	first, err := cfg.Simulator().Sample(circuit, 200)
	require.NoError(t, err)
	second, err := cfg.Simulator().Sample(circuit, 200)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
