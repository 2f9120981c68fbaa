package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{
		"-seed", "params/",
		"-out", "build/reports",
		"-log-format", "json",
		"-log-level", "debug",
		"-skip-gates",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "params/", cfg.SeedPath)
	assert.Equal(t, "build/reports", cfg.OutputDir)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.SkipGates)
}

func TestParsePositionalSeedPath(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"params/axioms.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "params/axioms.hcl", cfg.SeedPath)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestParseShorthandWinsOverPositional(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-s", "short.hcl", "positional.hcl"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "short.hcl", cfg.SeedPath)
}

func TestParseNoSeedPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseHelpFlag(t *testing.T) {
	var out bytes.Buffer
	_, shouldExit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseInvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-seed", "x", "-log-format", "xml"}, &out)
	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Error(), "log format")
}

func TestParseUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-nope"}, &out)
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseEnvDefaults(t *testing.T) {
	t.Setenv("PRINCIPIA_SEED_PATH", "env/seeds")
	t.Setenv("PRINCIPIA_LOG_LEVEL", "warn")

	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "env/seeds", cfg.SeedPath)
	assert.Equal(t, "warn", cfg.LogLevel)

	// Flags override the environment.
	cfg, _, err = Parse([]string{"-seed", "flag/seeds"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "flag/seeds", cfg.SeedPath)
}
