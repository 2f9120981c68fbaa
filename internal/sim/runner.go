package sim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vk/principia/internal/ctxlog"
	"github.com/vk/principia/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Runner drives simulations through the validate, run, commit sequence.
// It is stateless and safe to reuse across executions.
type Runner struct{}

// NewRunner creates an execution driver.
func NewRunner() *Runner {
	return &Runner{}
}

// Execute validates the simulation's declared inputs, invokes Run, checks
// the returned map against the declared outputs, and commits each output to
// the registry with the simulation's id as source.
//
// Commitment is all-or-nothing: every check that could reject an output runs
// before the first write, so a failure at any stage leaves the registry
// exactly as it was when Execute began. Errors from Run propagate without
// retry or translation. The returned Result is non-nil even on failure.
func (r *Runner) Execute(ctx context.Context, s Simulation, reg *registry.Registry) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("sim", s.ID(), "version", s.Version())
	res := &Result{
		SimID:   s.ID(),
		Version: s.Version(),
		State:   Created,
		Started: time.Now(),
	}
	fail := func(err error) (*Result, error) {
		res.State = Failed
		res.Finished = time.Now()
		return res, err
	}

	logger.Debug("Validating simulation inputs.", "declared", len(s.Inputs()))
	var missing []string
	for _, path := range s.Inputs() {
		if !reg.Has(path) {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return fail(&MissingDependencyError{SimID: s.ID(), Missing: missing})
	}
	res.State = InputsValidated

	out, err := s.Run(ctx, reg)
	if err != nil {
		return fail(fmt.Errorf("running simulation %q: %w", s.ID(), err))
	}

	declared := s.Outputs()
	declaredSet := make(map[string]struct{}, len(declared))
	for _, path := range declared {
		declaredSet[path] = struct{}{}
	}

	contractErr := &OutputContractError{SimID: s.ID()}
	diagnostics := make(map[string]cty.Value)
	for key, value := range out {
		if strings.HasPrefix(key, DiagnosticPrefix) {
			diagnostics[key] = value
			continue
		}
		if _, ok := declaredSet[key]; !ok {
			contractErr.Undeclared = append(contractErr.Undeclared, key)
		}
	}
	for _, path := range declared {
		if _, ok := out[path]; !ok {
			contractErr.Missing = append(contractErr.Missing, path)
		}
	}
	if len(contractErr.Missing) > 0 || len(contractErr.Undeclared) > 0 {
		return fail(contractErr)
	}
	res.State = Computed
	res.Diagnostics = diagnostics

	status := registry.Derived
	if declarer, ok := s.(StatusDeclarer); ok {
		status = declarer.OutputStatus()
	}

	// Pre-flight everything Set would reject before the first write, so the
	// commit pass below cannot fail partway through: the declared status and
	// source, each declared path, each value, and ESTABLISHED protection.
	if s.ID() == "" {
		return fail(fmt.Errorf("simulation declared an empty id"))
	}
	if !status.Valid() {
		return fail(fmt.Errorf("simulation %q declared an invalid output status %d", s.ID(), int(status)))
	}
	for _, path := range declared {
		if path == "" {
			return fail(fmt.Errorf("simulation %q declared an empty output path", s.ID()))
		}
		value := out[path]
		if value == cty.NilVal || value.IsNull() || !value.IsKnown() {
			return fail(fmt.Errorf("simulation %q produced an invalid value for %q", s.ID(), path))
		}
		entry, err := reg.Entry(path)
		if err != nil {
			continue // Not set yet; nothing to protect.
		}
		if entry.Status == registry.Established && status != registry.Established {
			return fail(&registry.OverwriteProtectionError{
				Path:            path,
				ExistingSource:  entry.Source,
				AttemptedSource: s.ID(),
				Attempted:       status,
			})
		}
	}

	for _, path := range declared {
		if entry, err := reg.Entry(path); err == nil && entry.Source != s.ID() {
			// Overlapping outputs between simulations are last-writer-wins;
			// log the replacement so deliberate overrides stay auditable.
			logger.Warn("Replacing parameter written by another source.",
				"path", path, "previous_source", entry.Source)
		}
		if err := reg.Set(path, out[path], s.ID(), status); err != nil {
			return fail(fmt.Errorf("committing output %q of simulation %q: %w", path, s.ID(), err))
		}
		res.Committed = append(res.Committed, path)
	}
	res.State = Committed
	res.Finished = time.Now()

	logger.Debug("Simulation committed.", "outputs", len(res.Committed), "status", status.String())
	return res, nil
}
