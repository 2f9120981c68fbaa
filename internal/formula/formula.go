// Package formula holds the descriptive metadata registry that report
// generators read: which closed-form expression produced which registry
// path, and how each parameter should be rendered. Nothing here affects
// computation; it is pure description.
package formula

import "fmt"

// Formula describes one closed-form expression a simulation evaluates.
type Formula struct {
	// ID uniquely names the formula, e.g. "generation_count".
	ID string
	// Result is the registry path the formula's value is committed under.
	Result string
	// Expression is the display form, e.g. "n_gen = chi_eff / 48".
	Expression string
	// Inputs lists the registry paths the expression reads.
	Inputs []string
	// Description is an optional prose note for the rendered tables.
	Description string
}

// Parameter describes how one registry path should appear in rendered
// tables: its symbol, unit, and prose meaning.
type Parameter struct {
	Path        string
	Symbol      string
	Unit        string
	Description string
}

// Registry collects Formula and Parameter records in registration order.
// Registration happens once at startup while the simulation catalog is
// assembled, so duplicate ids are defects and panic, matching how the
// simulation catalog treats duplicate registrations.
type Registry struct {
	formulas     map[string]Formula
	formulaOrder []string
	params       map[string]Parameter
	paramOrder   []string
}

// NewRegistry creates an empty metadata registry.
func NewRegistry() *Registry {
	return &Registry{
		formulas: make(map[string]Formula),
		params:   make(map[string]Parameter),
	}
}

// AddFormula registers a formula. A duplicate ID panics.
func (r *Registry) AddFormula(f Formula) {
	if f.ID == "" {
		panic("formula with empty id")
	}
	if _, exists := r.formulas[f.ID]; exists {
		panic(fmt.Sprintf("formula %q already registered", f.ID))
	}
	r.formulas[f.ID] = f
	r.formulaOrder = append(r.formulaOrder, f.ID)
}

// AddParameter registers parameter display metadata. A duplicate path panics.
func (r *Registry) AddParameter(p Parameter) {
	if p.Path == "" {
		panic("parameter metadata with empty path")
	}
	if _, exists := r.params[p.Path]; exists {
		panic(fmt.Sprintf("parameter metadata for %q already registered", p.Path))
	}
	r.params[p.Path] = p
	r.paramOrder = append(r.paramOrder, p.Path)
}

// Formula returns the formula registered under id.
func (r *Registry) Formula(id string) (Formula, bool) {
	f, ok := r.formulas[id]
	return f, ok
}

// Parameter returns the display metadata registered for path.
func (r *Registry) Parameter(path string) (Parameter, bool) {
	p, ok := r.params[path]
	return p, ok
}

// Formulas returns every formula in registration order.
func (r *Registry) Formulas() []Formula {
	out := make([]Formula, 0, len(r.formulaOrder))
	for _, id := range r.formulaOrder {
		out = append(out, r.formulas[id])
	}
	return out
}

// Parameters returns every parameter record in registration order.
func (r *Registry) Parameters() []Parameter {
	out := make([]Parameter, 0, len(r.paramOrder))
	for _, path := range r.paramOrder {
		out = append(out, r.params[path])
	}
	return out
}
