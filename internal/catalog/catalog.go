// Package catalog assembles the compiled-in simulations into an ordered,
// uniquely-keyed collection. Registration order is execution order: the
// pipeline has no dependency resolver, so each module list must put
// producers before their consumers.
package catalog

import (
	"fmt"

	"github.com/vk/principia/internal/formula"
	"github.com/vk/principia/internal/sim"
)

// Module is the interface a simulation package implements to contribute its
// simulations to a catalog.
type Module interface {
	Register(c *Catalog)
}

// Catalog holds simulations in registration order plus the formula and
// parameter metadata their Describer implementations contribute.
type Catalog struct {
	sims     []sim.Simulation
	byID     map[string]sim.Simulation
	formulas *formula.Registry
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		byID:     make(map[string]sim.Simulation),
		formulas: formula.NewRegistry(),
	}
}

// Build creates a catalog and registers the given modules in order.
func Build(modules ...Module) *Catalog {
	c := New()
	for _, m := range modules {
		m.Register(c)
	}
	return c
}

// Add registers a simulation. Duplicate ids are startup defects and panic.
// If the simulation is a Describer, its formulas and parameters are folded
// into the catalog's metadata registry.
func (c *Catalog) Add(s sim.Simulation) {
	id := s.ID()
	if id == "" {
		panic("simulation with empty id")
	}
	if _, exists := c.byID[id]; exists {
		panic(fmt.Sprintf("simulation with id %q already registered", id))
	}
	c.byID[id] = s
	c.sims = append(c.sims, s)

	if describer, ok := s.(sim.Describer); ok {
		desc := describer.Describe()
		for _, f := range desc.Formulas {
			c.formulas.AddFormula(f)
		}
		for _, p := range desc.Parameters {
			c.formulas.AddParameter(p)
		}
	}
}

// Simulations returns the registered simulations in registration order.
func (c *Catalog) Simulations() []sim.Simulation {
	out := make([]sim.Simulation, len(c.sims))
	copy(out, c.sims)
	return out
}

// Lookup returns the simulation registered under id.
func (c *Catalog) Lookup(id string) (sim.Simulation, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Formulas returns the metadata registry populated during registration.
func (c *Catalog) Formulas() *formula.Registry {
	return c.formulas
}

// Len returns the number of registered simulations.
func (c *Catalog) Len() int {
	return len(c.sims)
}
