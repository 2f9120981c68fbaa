// Package cosmology computes the manuscript's cosmological predictions from
// the topology chain. Both outputs are PREDICTED: they exist to be compared
// against reference values in the gate-check ledger.
package cosmology

import (
	"context"
	"fmt"

	"github.com/vk/principia/internal/catalog"
	"github.com/vk/principia/internal/formula"
	"github.com/vk/principia/internal/registry"
	"github.com/vk/principia/internal/sim"
	"github.com/zclconf/go-cty/cty"
)

// Module registers the cosmology simulations with the catalog.
type Module struct{}

func (m Module) Register(c *catalog.Catalog) {
	c.Add(&vacuumFraction{})
	c.Add(&spectralTilt{})
}

type vacuumFraction struct{}

func (s *vacuumFraction) ID() string                    { return "vacuum_fraction" }
func (s *vacuumFraction) Version() string               { return "v1" }
func (s *vacuumFraction) Inputs() []string              { return []string{"topology.chi_eff"} }
func (s *vacuumFraction) Outputs() []string             { return []string{"cosmology.omega_lambda"} }
func (s *vacuumFraction) OutputStatus() registry.Status { return registry.Predicted }

func (s *vacuumFraction) Run(ctx context.Context, reg registry.Reader) (map[string]cty.Value, error) {
	chi, err := reg.Float("topology.chi_eff")
	if err != nil {
		return nil, err
	}
	if chi == 0 {
		return nil, fmt.Errorf("topology.chi_eff must not be zero")
	}
	return map[string]cty.Value{
		"cosmology.omega_lambda": cty.NumberFloatVal((chi - 46) / chi),
	}, nil
}

func (s *vacuumFraction) Describe() sim.Description {
	return sim.Description{
		Title: "Dark energy fraction",
		Formulas: []formula.Formula{{
			ID:         "vacuum_fraction",
			Result:     "cosmology.omega_lambda",
			Expression: "Omega_Lambda = (chi_eff - 46) / chi_eff",
			Inputs:     []string{"topology.chi_eff"},
		}},
		Parameters: []formula.Parameter{
			{Path: "cosmology.omega_lambda", Symbol: "Omega_Lambda", Description: "dark energy density fraction"},
		},
	}
}

type spectralTilt struct{}

func (s *spectralTilt) ID() string                    { return "spectral_tilt" }
func (s *spectralTilt) Version() string               { return "v1" }
func (s *spectralTilt) Inputs() []string              { return []string{"topology.chi_eff"} }
func (s *spectralTilt) Outputs() []string             { return []string{"cosmology.n_s"} }
func (s *spectralTilt) OutputStatus() registry.Status { return registry.Predicted }

func (s *spectralTilt) Run(ctx context.Context, reg registry.Reader) (map[string]cty.Value, error) {
	chi, err := reg.Float("topology.chi_eff")
	if err != nil {
		return nil, err
	}
	if chi <= 58 {
		return nil, fmt.Errorf("topology.chi_eff = %v leaves a non-positive tilt denominator", chi)
	}
	return map[string]cty.Value{
		"cosmology.n_s": cty.NumberFloatVal(1 - 3/(chi-58)),
	}, nil
}

func (s *spectralTilt) Describe() sim.Description {
	return sim.Description{
		Title: "Scalar spectral tilt",
		Formulas: []formula.Formula{{
			ID:         "spectral_tilt",
			Result:     "cosmology.n_s",
			Expression: "n_s = 1 - 3 / (chi_eff - 58)",
			Inputs:     []string{"topology.chi_eff"},
		}},
		Parameters: []formula.Parameter{
			{Path: "cosmology.n_s", Symbol: "n_s", Description: "scalar spectral index"},
		},
	}
}
