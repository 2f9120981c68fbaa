package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/vk/principia/internal/registry"
	"github.com/vk/principia/internal/seed"
	"gopkg.in/yaml.v3"
)

// GateResult is the outcome of one gate comparison.
type GateResult struct {
	Gate      string  `yaml:"gate"`
	Path      string  `yaml:"path"`
	Value     float64 `yaml:"value"`
	Reference float64 `yaml:"reference"`
	// Deviation is relative to the reference, or absolute when the
	// reference is zero.
	Deviation float64 `yaml:"deviation"`
	Tolerance float64 `yaml:"tolerance"`
	Pass      bool    `yaml:"pass"`
}

// Ledger is the full gate-check report.
type Ledger struct {
	CheckedAt time.Time    `yaml:"checked_at"`
	Passed    int          `yaml:"passed"`
	Failed    int          `yaml:"failed"`
	Results   []GateResult `yaml:"results"`
}

// AllPassed reports whether every gate passed.
func (l *Ledger) AllPassed() bool {
	return l.Failed == 0
}

// CheckGates evaluates every gate against the registry. A gate whose path
// was never set is an error, not a failed gate: the producing simulation was
// evidently never executed, which is a sequencing defect upstream of any
// numeric comparison.
func CheckGates(reg *registry.Registry, gates []seed.Gate) (*Ledger, error) {
	ledger := &Ledger{CheckedAt: time.Now()}
	for _, gate := range gates {
		value, err := reg.Float(gate.Path)
		if err != nil {
			return nil, fmt.Errorf("gate %q: %w", gate.Name, err)
		}

		deviation := math.Abs(value - gate.Reference)
		if gate.Reference != 0 {
			deviation /= math.Abs(gate.Reference)
		}

		result := GateResult{
			Gate:      gate.Name,
			Path:      gate.Path,
			Value:     value,
			Reference: gate.Reference,
			Deviation: deviation,
			Tolerance: gate.Tolerance,
			Pass:      deviation <= gate.Tolerance,
		}
		if result.Pass {
			ledger.Passed++
		} else {
			ledger.Failed++
		}
		ledger.Results = append(ledger.Results, result)
	}
	return ledger, nil
}

// WriteLedger renders the ledger to w as YAML.
func WriteLedger(w io.Writer, ledger *Ledger) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(ledger); err != nil {
		return fmt.Errorf("encoding gate ledger: %w", err)
	}
	return nil
}
