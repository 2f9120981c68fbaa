// Package mixing computes the quark and lepton mixing parameters: the
// Wolfenstein parameters from the generation count, then the PMNS mixing
// angles as a tri-bimaximal pattern corrected at order lambda squared.
package mixing

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/principia/internal/catalog"
	"github.com/vk/principia/internal/formula"
	"github.com/vk/principia/internal/registry"
	"github.com/vk/principia/internal/sim"
	"github.com/zclconf/go-cty/cty"
)

// Module registers the mixing simulations with the catalog. wolfenstein
// must run before pmns_angles: the PMNS correction reads mixing.lambda.
type Module struct{}

func (m Module) Register(c *catalog.Catalog) {
	c.Add(&wolfenstein{})
	c.Add(&pmnsAngles{})
}

type wolfenstein struct{}

func (s *wolfenstein) ID() string       { return "wolfenstein" }
func (s *wolfenstein) Version() string  { return "v2" }
func (s *wolfenstein) Inputs() []string { return []string{"topology.n_gen"} }

func (s *wolfenstein) Outputs() []string {
	return []string{"mixing.lambda", "mixing.a", "mixing.rho_bar", "mixing.eta_bar"}
}

func (s *wolfenstein) OutputStatus() registry.Status { return registry.Predicted }

func (s *wolfenstein) Run(ctx context.Context, reg registry.Reader) (map[string]cty.Value, error) {
	n, err := reg.Int("topology.n_gen")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("topology.n_gen must be positive, got %d", n)
	}
	nf := float64(n)
	return map[string]cty.Value{
		"mixing.lambda":  cty.NumberFloatVal(nf * nf / 40),
		"mixing.a":       cty.NumberFloatVal((nf + 1) / 5),
		"mixing.rho_bar": cty.NumberFloatVal(nf / 20),
		"mixing.eta_bar": cty.NumberFloatVal((2*nf + 1) / 20),
	}, nil
}

func (s *wolfenstein) Describe() sim.Description {
	return sim.Description{
		Title:   "Wolfenstein parameters",
		Summary: "Closed forms for the CKM expansion parameters in terms of the generation count.",
		Formulas: []formula.Formula{
			{ID: "wolfenstein_lambda", Result: "mixing.lambda", Expression: "lambda = n_gen^2 / 40", Inputs: []string{"topology.n_gen"}},
			{ID: "wolfenstein_a", Result: "mixing.a", Expression: "A = (n_gen + 1) / 5", Inputs: []string{"topology.n_gen"}},
			{ID: "wolfenstein_rho_bar", Result: "mixing.rho_bar", Expression: "rho_bar = n_gen / 20", Inputs: []string{"topology.n_gen"}},
			{ID: "wolfenstein_eta_bar", Result: "mixing.eta_bar", Expression: "eta_bar = (2 n_gen + 1) / 20", Inputs: []string{"topology.n_gen"}},
		},
		Parameters: []formula.Parameter{
			{Path: "mixing.lambda", Symbol: "lambda", Description: "Cabibbo expansion parameter"},
			{Path: "mixing.a", Symbol: "A", Description: "Wolfenstein A"},
			{Path: "mixing.rho_bar", Symbol: "rho_bar", Description: "Wolfenstein rho-bar"},
			{Path: "mixing.eta_bar", Symbol: "eta_bar", Description: "Wolfenstein eta-bar"},
		},
	}
}

type pmnsAngles struct{}

func (s *pmnsAngles) ID() string       { return "pmns_angles" }
func (s *pmnsAngles) Version() string  { return "v1" }
func (s *pmnsAngles) Inputs() []string { return []string{"mixing.lambda"} }

func (s *pmnsAngles) Outputs() []string {
	return []string{
		"mixing.sin2_theta12",
		"mixing.sin2_theta23",
		"mixing.sin2_theta13",
		"mixing.theta12_deg",
	}
}

func (s *pmnsAngles) OutputStatus() registry.Status { return registry.Predicted }

func (s *pmnsAngles) Run(ctx context.Context, reg registry.Reader) (map[string]cty.Value, error) {
	lambda, err := reg.Float("mixing.lambda")
	if err != nil {
		return nil, err
	}
	if lambda <= 0 || lambda >= 1 {
		return nil, fmt.Errorf("mixing.lambda = %v is outside (0, 1)", lambda)
	}

	l2 := lambda * lambda
	sin2Theta12 := 1.0/3.0 - l2/6
	sin2Theta23 := 1.0/2.0 + l2/4
	sin2Theta13 := l2 / 2

	return map[string]cty.Value{
		"mixing.sin2_theta12": cty.NumberFloatVal(sin2Theta12),
		"mixing.sin2_theta23": cty.NumberFloatVal(sin2Theta23),
		"mixing.sin2_theta13": cty.NumberFloatVal(sin2Theta13),
		"mixing.theta12_deg":  cty.NumberFloatVal(math.Asin(math.Sqrt(sin2Theta12)) * 180 / math.Pi),
		"_lambda_squared":     cty.NumberFloatVal(l2),
	}, nil
}

func (s *pmnsAngles) Describe() sim.Description {
	return sim.Description{
		Title: "PMNS mixing angles",
		Formulas: []formula.Formula{
			{ID: "pmns_sin2_theta12", Result: "mixing.sin2_theta12", Expression: "sin^2(theta_12) = 1/3 - lambda^2 / 6", Inputs: []string{"mixing.lambda"}},
			{ID: "pmns_sin2_theta23", Result: "mixing.sin2_theta23", Expression: "sin^2(theta_23) = 1/2 + lambda^2 / 4", Inputs: []string{"mixing.lambda"}},
			{ID: "pmns_sin2_theta13", Result: "mixing.sin2_theta13", Expression: "sin^2(theta_13) = lambda^2 / 2", Inputs: []string{"mixing.lambda"}},
		},
		Parameters: []formula.Parameter{
			{Path: "mixing.sin2_theta12", Symbol: "sin^2(theta_12)"},
			{Path: "mixing.sin2_theta23", Symbol: "sin^2(theta_23)"},
			{Path: "mixing.sin2_theta13", Symbol: "sin^2(theta_13)"},
			{Path: "mixing.theta12_deg", Symbol: "theta_12", Unit: "deg"},
		},
	}
}
