package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/principia/internal/formula"
	"github.com/vk/principia/internal/registry"
	"github.com/vk/principia/internal/sim"
	"github.com/zclconf/go-cty/cty"
)

type stubSim struct {
	id   string
	desc *sim.Description
}

func (s *stubSim) ID() string        { return s.id }
func (s *stubSim) Version() string   { return "v1" }
func (s *stubSim) Inputs() []string  { return nil }
func (s *stubSim) Outputs() []string { return nil }

func (s *stubSim) Run(context.Context, registry.Reader) (map[string]cty.Value, error) {
	return map[string]cty.Value{}, nil
}

type describedSim struct{ stubSim }

func (s *describedSim) Describe() sim.Description { return *s.desc }

type stubModule struct{ sims []sim.Simulation }

func (m *stubModule) Register(c *Catalog) {
	for _, s := range m.sims {
		c.Add(s)
	}
}

func TestAddPreservesOrderAndIdentity(t *testing.T) {
	c := New()
	c.Add(&stubSim{id: "beta"})
	c.Add(&stubSim{id: "alpha"})

	sims := c.Simulations()
	require.Len(t, sims, 2)
	assert.Equal(t, "beta", sims[0].ID())
	assert.Equal(t, "alpha", sims[1].ID())
	assert.Equal(t, 2, c.Len())

	s, ok := c.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", s.ID())

	_, ok = c.Lookup("gamma")
	assert.False(t, ok)
}

func TestDuplicateIDPanics(t *testing.T) {
	c := New()
	c.Add(&stubSim{id: "x"})
	assert.Panics(t, func() { c.Add(&stubSim{id: "x"}) })
	assert.Panics(t, func() { c.Add(&stubSim{id: ""}) })
}

func TestDescriberMetadataIsCollected(t *testing.T) {
	s := &describedSim{stubSim{id: "described"}}
	s.desc = &sim.Description{
		Title: "Generation count",
		Formulas: []formula.Formula{
			{ID: "generation_count", Result: "topology.n_gen", Expression: "n_gen = chi_eff / 48"},
		},
		Parameters: []formula.Parameter{
			{Path: "topology.n_gen", Symbol: "n_gen"},
		},
	}

	c := Build(&stubModule{sims: []sim.Simulation{s}})

	f, ok := c.Formulas().Formula("generation_count")
	require.True(t, ok)
	assert.Equal(t, "topology.n_gen", f.Result)

	p, ok := c.Formulas().Parameter("topology.n_gen")
	require.True(t, ok)
	assert.Equal(t, "n_gen", p.Symbol)
}

func TestBuildRegistersModulesInOrder(t *testing.T) {
	c := Build(
		&stubModule{sims: []sim.Simulation{&stubSim{id: "first"}}},
		&stubModule{sims: []sim.Simulation{&stubSim{id: "second"}}},
	)
	sims := c.Simulations()
	require.Len(t, sims, 2)
	assert.Equal(t, "first", sims[0].ID())
	assert.Equal(t, "second", sims[1].ID())
}
