// Package topology derives the manuscript's counting quantities from the
// seeded topological axioms (Betti numbers and the Euler characteristic).
// These run first: everything downstream reads topology.* paths.
package topology

import (
	"context"
	"fmt"

	"github.com/vk/principia/internal/catalog"
	"github.com/vk/principia/internal/formula"
	"github.com/vk/principia/internal/registry"
	"github.com/vk/principia/internal/sim"
	"github.com/zclconf/go-cty/cty"
)

// Module registers the topology simulations with the catalog.
type Module struct{}

// Register adds the simulations in producer-before-consumer order.
func (m Module) Register(c *catalog.Catalog) {
	c.Add(&eulerCharacteristic{})
	c.Add(&generationCount{})
}

// eulerCharacteristic computes the effective Euler characteristic from the
// third Betti number.
type eulerCharacteristic struct{}

func (s *eulerCharacteristic) ID() string        { return "euler_characteristic" }
func (s *eulerCharacteristic) Version() string   { return "v2" }
func (s *eulerCharacteristic) Inputs() []string  { return []string{"topology.b3"} }
func (s *eulerCharacteristic) Outputs() []string { return []string{"topology.chi_eff"} }

func (s *eulerCharacteristic) OutputStatus() registry.Status { return registry.Geometric }

func (s *eulerCharacteristic) Run(ctx context.Context, reg registry.Reader) (map[string]cty.Value, error) {
	b3, err := reg.Int("topology.b3")
	if err != nil {
		return nil, err
	}
	if b3 <= 0 {
		return nil, fmt.Errorf("topology.b3 must be positive, got %d", b3)
	}
	return map[string]cty.Value{
		"topology.chi_eff": cty.NumberIntVal(6 * b3),
	}, nil
}

func (s *eulerCharacteristic) Describe() sim.Description {
	return sim.Description{
		Title:   "Effective Euler characteristic",
		Summary: "Scales the third Betti number into the effective Euler characteristic used by every counting argument downstream.",
		Formulas: []formula.Formula{{
			ID:         "euler_characteristic",
			Result:     "topology.chi_eff",
			Expression: "chi_eff = 6 b_3",
			Inputs:     []string{"topology.b3"},
		}},
		Parameters: []formula.Parameter{
			{Path: "topology.b3", Symbol: "b_3", Description: "third Betti number of the compact space"},
			{Path: "topology.chi_eff", Symbol: "chi_eff", Description: "effective Euler characteristic"},
		},
	}
}

// generationCount divides chi_eff into fermion generations. The divisor 48
// is fixed by the index computation in the manuscript; a chi_eff it does not
// divide evenly signals inconsistent axioms, not a rounding situation.
type generationCount struct{}

func (s *generationCount) ID() string      { return "generation_count" }
func (s *generationCount) Version() string { return "v3" }

func (s *generationCount) Inputs() []string {
	return []string{"topology.b3", "topology.chi_eff"}
}

func (s *generationCount) Outputs() []string { return []string{"topology.n_gen"} }

func (s *generationCount) Run(ctx context.Context, reg registry.Reader) (map[string]cty.Value, error) {
	b3, err := reg.Int("topology.b3")
	if err != nil {
		return nil, err
	}
	chi, err := reg.Int("topology.chi_eff")
	if err != nil {
		return nil, err
	}
	if chi%48 != 0 {
		return nil, fmt.Errorf("topology.chi_eff = %d is not divisible by 48", chi)
	}
	return map[string]cty.Value{
		"topology.n_gen": cty.NumberIntVal(chi / 48),
		"_chi_per_b3":    cty.NumberFloatVal(float64(chi) / float64(b3)),
	}, nil
}

func (s *generationCount) Describe() sim.Description {
	return sim.Description{
		Title:   "Generation count",
		Summary: "Index division of the effective Euler characteristic.",
		Formulas: []formula.Formula{{
			ID:         "generation_count",
			Result:     "topology.n_gen",
			Expression: "n_gen = chi_eff / 48",
			Inputs:     []string{"topology.chi_eff"},
		}},
		Parameters: []formula.Parameter{
			{Path: "topology.n_gen", Symbol: "n_gen", Description: "number of fermion generations"},
		},
	}
}
