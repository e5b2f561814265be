package main

import (
	"bytes"
	"context"
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(envCities, "5")
	t.Setenv(envSeed, "9")
	t.Setenv(envStart, " 2 ")
	t.Setenv(envTimeLimit, "45s")
	t.Setenv(envWarmStart, "false")

	cfg, err := configFromEnv()
	require.NoError(t, err)
	assert.Equal(t, config{Cities: 5, Seed: 9, Start: 2, TimeLimit: 45 * time.Second, WarmStart: false}, cfg)
	require.NoError(t, cfg.validate())
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{envCities, envSeed, envStart, envTimeLimit, envWarmStart} {
		t.Setenv(k, "")
	}
	cfg, err := configFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Cities)
	assert.Equal(t, 30*time.Second, cfg.TimeLimit)
	assert.True(t, cfg.WarmStart)
	require.NoError(t, cfg.validate())
}

func TestConfigFromEnv_Malformed(t *testing.T) {
	t.Setenv(envTimeLimit, "soon")
	_, err := configFromEnv()
	require.ErrorContains(t, err, envTimeLimit)
}

func TestConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv(envCities, "5")
	cfg, err := configFromEnv()
	require.NoError(t, err)

	fs := flag.NewFlagSet("tspsolve", flag.ContinueOnError)
	cfg.registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"-n", "6", "-start", "5", "-time-limit", "1m", "-warm-start=false"}))
	assert.Equal(t, 6, cfg.Cities)
	assert.Equal(t, 5, cfg.Start)
	assert.Equal(t, time.Minute, cfg.TimeLimit)
	assert.False(t, cfg.WarmStart)
	require.NoError(t, cfg.validate())
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, config{Cities: 1}.validate())
	assert.Error(t, config{Cities: maxCities + 1}.validate())
	assert.NoError(t, config{Cities: maxCities}.validate())
	assert.Error(t, config{Cities: 4, Start: 4}.validate())
	assert.Error(t, config{Cities: 4, Start: -1}.validate())
	assert.Error(t, config{Cities: 4, TimeLimit: -time.Second}.validate())
	assert.NoError(t, config{Cities: 4, Start: 3}.validate())
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	cfg := config{Cities: 5, Seed: 3, TimeLimit: time.Minute}
	require.NoError(t, run(context.Background(), cfg, &out))

	s := out.String()
	assert.Contains(t, s, "instance: 5 cities, seed 3")
	assert.Contains(t, s, "greedy:")
	assert.Contains(t, s, "status=OPTIMAL")
}

func TestGapPercent(t *testing.T) {
	gap, ok := gapPercent(12, 10)
	require.True(t, ok)
	assert.InDelta(t, 20.0, gap, 1e-9)

	gap, ok = gapPercent(10, 10)
	require.True(t, ok)
	assert.Zero(t, gap)

	_, ok = gapPercent(5, 0)
	assert.False(t, ok)
}
