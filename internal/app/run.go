package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/principia/internal/ctxlog"
	"github.com/vk/principia/internal/registry"
	"github.com/vk/principia/internal/report"
	"github.com/vk/principia/internal/sim"
)

// Output file names written under Config.OutputDir.
const (
	snapshotFile = "registry.json"
	ledgerFile   = "gatecheck.yaml"
)

// Run executes the full pipeline: seed the registry from the configured HCL
// files, execute every cataloged simulation in registration order, evaluate
// the gate ledger, and write the registry snapshot. The first failing stage
// aborts the run.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Pipeline run started.", "seed_path", cfg.SeedPath)

	model, err := a.loader.Load(ctx, cfg.SeedPath)
	if err != nil {
		return fmt.Errorf("loading seed files: %w", err)
	}

	reg := registry.New()
	if err := model.Seed(reg); err != nil {
		return err
	}
	a.logger.Info("Registry seeded.", "constants", len(model.Constants), "gates", len(model.Gates))

	runner := sim.NewRunner()
	for _, s := range a.catalog.Simulations() {
		res, err := runner.Execute(ctx, s, reg)
		if err != nil {
			return fmt.Errorf("pipeline halted at simulation %q: %w", s.ID(), err)
		}
		a.logger.Info("Simulation committed.", "sim", res.SimID, "version", res.Version, "outputs", len(res.Committed))
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if cfg.SkipGates {
		a.logger.Warn("Gate checks skipped by configuration.")
	} else if len(model.Gates) > 0 {
		ledger, err := report.CheckGates(reg, model.Gates)
		if err != nil {
			return fmt.Errorf("evaluating gates: %w", err)
		}
		if err := a.writeLedger(cfg, ledger); err != nil {
			return err
		}
		if !ledger.AllPassed() {
			return fmt.Errorf("gate check failed: %d of %d gates outside tolerance",
				ledger.Failed, ledger.Failed+ledger.Passed)
		}
		a.logger.Info("All gates passed.", "count", ledger.Passed)
	}

	if err := a.writeSnapshot(cfg, reg); err != nil {
		return err
	}

	a.logger.Info("Pipeline run finished.", "parameters", reg.Len())
	return nil
}

func (a *App) writeSnapshot(cfg *Config, reg *registry.Registry) error {
	path := filepath.Join(cfg.OutputDir, snapshotFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()
	if err := report.WriteSnapshot(f, reg); err != nil {
		return err
	}
	a.logger.Debug("Registry snapshot written.", "path", path)
	return nil
}

func (a *App) writeLedger(cfg *Config, ledger *report.Ledger) error {
	path := filepath.Join(cfg.OutputDir, ledgerFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	defer f.Close()
	if err := report.WriteLedger(f, ledger); err != nil {
		return err
	}
	a.logger.Debug("Gate ledger written.", "path", path)
	return nil
}
