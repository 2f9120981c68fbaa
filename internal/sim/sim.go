// Package sim defines the unit-of-work contract for the pipeline: a
// Simulation declares the registry paths it reads and writes, exposes a pure
// Run computation, and a Runner drives validate, run, and commit stages so that
// heterogeneous computation modules can be executed interchangeably.
//
// The driver is deliberately sequential and performs no dependency
// resolution: callers must execute producers before consumers. That ordering
// precondition is inherited from the pipeline's design, not an oversight.
package sim

import (
	"context"
	"time"

	"github.com/vk/principia/internal/formula"
	"github.com/vk/principia/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// DiagnosticPrefix marks returned keys that are internal diagnostics rather
// than genuine outputs. The runner records them on the Result but never
// commits them to the registry.
const DiagnosticPrefix = "_"

// Simulation is the interface every computation module implements.
//
// Run must read only through the provided Reader, on paths drawn from
// Inputs, and must return every path named by Outputs. Keys prefixed with
// DiagnosticPrefix may be returned additionally; anything else undeclared is
// a contract violation. Run must not retain the Reader.
type Simulation interface {
	// ID is the stable identity committed as the source of every output.
	ID() string
	// Version distinguishes revisions of the same simulation.
	Version() string
	// Inputs lists the registry paths that must exist before Run is called.
	Inputs() []string
	// Outputs lists the registry paths Run promises to produce.
	Outputs() []string
	// Run computes the declared outputs. It is pure with respect to
	// everything except its declared reads.
	Run(ctx context.Context, reg registry.Reader) (map[string]cty.Value, error)
}

// StatusDeclarer is an optional capability: a simulation that implements it
// chooses the status its outputs are committed with. The default is
// registry.Derived.
type StatusDeclarer interface {
	OutputStatus() registry.Status
}

// Describer is an optional capability: a simulation that implements it
// contributes formula and parameter metadata for report generators. Purely
// descriptive; it never affects registry state.
type Describer interface {
	Describe() Description
}

// Description is the report-facing metadata a Describer exposes.
type Description struct {
	Title      string
	Summary    string
	Formulas   []formula.Formula
	Parameters []formula.Parameter
}

// State tracks one execution's progress through the driver.
type State int

const (
	// Created means Execute has started but nothing has been checked.
	Created State = iota
	// InputsValidated means every declared input exists in the registry.
	InputsValidated
	// Computed means Run returned and its outputs passed the contract check.
	Computed
	// Committed means every declared output was written with provenance.
	Committed
	// Failed means validation, computation, or the contract check failed
	// before anything was committed.
	Failed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case InputsValidated:
		return "inputs_validated"
	case Computed:
		return "computed"
	case Committed:
		return "committed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the outcome of one Execute call.
type Result struct {
	SimID   string
	Version string
	State   State
	// Committed lists the output paths written, in the order they were
	// committed. Empty unless State is Committed.
	Committed []string
	// Diagnostics holds the DiagnosticPrefix-ed values Run returned.
	Diagnostics map[string]cty.Value
	Started     time.Time
	Finished    time.Time
}
