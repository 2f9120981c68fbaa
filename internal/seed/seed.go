// Package seed bootstraps the parameter registry from HCL files. A seed file
// declares the hand-entered axioms every simulation chain starts from, plus
// the numeric gates the final ledger checks predictions against:
//
//	constants "topology" {
//	  source = "TCS #187"
//	  b3     = 24
//	  chi    = 144
//	}
//
//	gate "generation_count" {
//	  path      = "topology.n_gen"
//	  reference = 3
//	  tolerance = 0.001
//	}
//
// Constants are committed with status ESTABLISHED, which the registry then
// protects from derivation overwrites. Seeding must happen before any
// dependent simulation executes.
package seed

import (
	"fmt"
	"sort"

	"github.com/vk/principia/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Constant is one axiom parsed from a constants block.
type Constant struct {
	Path   string
	Value  cty.Value
	Source string
}

// Gate is one reference check parsed from a gate block. Tolerance is the
// maximum allowed relative deviation between the registry value and the
// reference.
type Gate struct {
	Name      string
	Path      string
	Reference float64
	Tolerance float64
}

// Model is the merged result of loading one or more seed files.
type Model struct {
	Constants []Constant
	Gates     []Gate
}

// Seed writes every constant into the registry with ESTABLISHED status and
// an "ESTABLISHED:<source>" provenance string.
func (m *Model) Seed(reg *registry.Registry) error {
	for _, c := range m.Constants {
		source := fmt.Sprintf("ESTABLISHED:%s", c.Source)
		if err := reg.Set(c.Path, c.Value, source, registry.Established); err != nil {
			return fmt.Errorf("seeding constant %q: %w", c.Path, err)
		}
	}
	return nil
}

// sortConstants orders constants by path so seeding and reporting are
// deterministic regardless of HCL attribute map order.
func sortConstants(constants []Constant) {
	sort.Slice(constants, func(i, j int) bool {
		return constants[i].Path < constants[j].Path
	})
}
