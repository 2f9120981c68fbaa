package sim

import (
	"fmt"
	"strings"
)

// MissingDependencyError is returned by Execute when a simulation's declared
// required inputs are not all present in the registry. It is raised before
// Run is invoked, so no partial computation ever happens.
type MissingDependencyError struct {
	SimID   string
	Missing []string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("simulation %q is missing required inputs: %s",
		e.SimID, strings.Join(e.Missing, ", "))
}

// OutputContractError is returned by Execute when Run's returned map does
// not match the simulation's declared outputs: a declared path is absent, or
// an undeclared, non-diagnostic key is present. Nothing is committed.
type OutputContractError struct {
	SimID      string
	Missing    []string
	Undeclared []string
}

func (e *OutputContractError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("did not return declared outputs: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Undeclared) > 0 {
		parts = append(parts, fmt.Sprintf("returned undeclared outputs: %s", strings.Join(e.Undeclared, ", ")))
	}
	return fmt.Sprintf("simulation %q violated its output contract: %s", e.SimID, strings.Join(parts, "; "))
}
