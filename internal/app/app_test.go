package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/principia/internal/report"
	"gopkg.in/yaml.v3"
)

const passingSeed = `
constants "topology" {
  source = "TCS #187"
  b3     = 24
}

gate "generation_count" {
  path      = "topology.n_gen"
  reference = 3
}

gate "vacuum_fraction" {
  path      = "cosmology.omega_lambda"
  reference = 0.6847
  tolerance = 0.01
}

gate "cabibbo" {
  path      = "mixing.lambda"
  reference = 0.2250
  tolerance = 0.005
}
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seed.hcl"), []byte(content), 0o644))
	return dir
}

func testConfig(t *testing.T, seedDir string) *Config {
	t.Helper()
	cfg, err := NewConfig(Config{
		SeedPath:  seedDir,
		OutputDir: t.TempDir(),
		LogFormat: "text",
		LogLevel:  "error",
	})
	require.NoError(t, err)
	return cfg
}

func TestRunFullPipeline(t *testing.T) {
	cfg := testConfig(t, writeSeed(t, passingSeed))
	var logs bytes.Buffer

	pipeline := NewApp(&logs, cfg)
	require.NoError(t, pipeline.Run(context.Background(), cfg))

	// The snapshot contains the seeded axiom and every derived parameter.
	snapshot, err := os.ReadFile(filepath.Join(cfg.OutputDir, snapshotFile))
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(snapshot, &entries))

	byPath := make(map[string]map[string]any)
	for _, e := range entries {
		byPath[e["path"].(string)] = e
	}
	require.Contains(t, byPath, "topology.b3")
	assert.Equal(t, "ESTABLISHED", byPath["topology.b3"]["status"])
	require.Contains(t, byPath, "topology.n_gen")
	assert.Equal(t, float64(3), byPath["topology.n_gen"]["value"])
	assert.Equal(t, "generation_count", byPath["topology.n_gen"]["source"])
	require.Contains(t, byPath, "mixing.sin2_theta13")
	assert.Equal(t, "PREDICTED", byPath["mixing.sin2_theta13"]["status"])

	// The ledger reports every gate as passing.
	ledgerBytes, err := os.ReadFile(filepath.Join(cfg.OutputDir, ledgerFile))
	require.NoError(t, err)
	var ledger report.Ledger
	require.NoError(t, yaml.Unmarshal(ledgerBytes, &ledger))
	assert.Equal(t, 3, ledger.Passed)
	assert.Equal(t, 0, ledger.Failed)
}

func TestRunFailsOnFailingGate(t *testing.T) {
	seed := `
constants "topology" {
  source = "TCS #187"
  b3     = 24
}

gate "impossible" {
  path      = "topology.n_gen"
  reference = 7
  tolerance = 0.001
}
`
	cfg := testConfig(t, writeSeed(t, seed))
	var logs bytes.Buffer

	err := NewApp(&logs, cfg).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gate check failed")

	// The ledger is still written so the failure can be inspected.
	_, statErr := os.Stat(filepath.Join(cfg.OutputDir, ledgerFile))
	assert.NoError(t, statErr)
}

func TestRunSkipGates(t *testing.T) {
	seed := `
constants "topology" {
  source = "TCS #187"
  b3     = 24
}

gate "impossible" {
  path      = "topology.n_gen"
  reference = 7
  tolerance = 0.001
}
`
	cfg := testConfig(t, writeSeed(t, seed))
	cfg.SkipGates = true
	var logs bytes.Buffer

	require.NoError(t, NewApp(&logs, cfg).Run(context.Background(), cfg))

	// No ledger when gates are skipped; the snapshot is still produced.
	_, err := os.Stat(filepath.Join(cfg.OutputDir, ledgerFile))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(cfg.OutputDir, snapshotFile))
	assert.NoError(t, err)
}

func TestRunFailsWhenAxiomMissing(t *testing.T) {
	// The simulation chain needs topology.b3; a seed without it must halt
	// the pipeline at the first simulation, before any output is written.
	seed := `
constants "misc" {
  source = "editorial"
  flag   = true
}
`
	cfg := testConfig(t, writeSeed(t, seed))
	var logs bytes.Buffer

	err := NewApp(&logs, cfg).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "euler_characteristic")
	assert.Contains(t, err.Error(), "topology.b3")

	_, statErr := os.Stat(filepath.Join(cfg.OutputDir, snapshotFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCatalogExposesFormulaMetadata(t *testing.T) {
	cfg := testConfig(t, writeSeed(t, passingSeed))
	pipeline := NewApp(&bytes.Buffer{}, cfg)

	f, ok := pipeline.Catalog().Formulas().Formula("generation_count")
	require.True(t, ok)
	assert.Equal(t, "topology.n_gen", f.Result)
	assert.NotEmpty(t, pipeline.Catalog().Formulas().Parameters())
}

func TestNewConfigValidation(t *testing.T) {
	_, err := NewConfig(Config{OutputDir: "out", LogFormat: "text", LogLevel: "info"})
	assert.Error(t, err)

	_, err = NewConfig(Config{SeedPath: "x", OutputDir: "out", LogFormat: "xml", LogLevel: "info"})
	assert.Error(t, err)

	_, err = NewConfig(Config{SeedPath: "x", OutputDir: "out", LogFormat: "text", LogLevel: "loud"})
	assert.Error(t, err)

	cfg, err := NewConfig(Config{SeedPath: "x", OutputDir: "out", LogFormat: "json", LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, "x", cfg.SeedPath)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PRINCIPIA_SEED_PATH", "/tmp/seeds")
	t.Setenv("PRINCIPIA_LOG_FORMAT", "json")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/seeds", cfg.SeedPath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
}
