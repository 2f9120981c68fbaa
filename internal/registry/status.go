package registry

import "fmt"

// Status categorizes how a parameter entered the registry. It only affects
// overwrite policy; it never changes how a value is computed or read.
type Status int

const (
	// Established marks a hand-entered axiom seeded by bootstrap code.
	// Established entries are protected from non-Established overwrites.
	Established Status = iota
	// Geometric marks a value derived from the fixed topological inputs.
	Geometric
	// Derived marks an ordinary computed value. This is the default status
	// the execution driver commits outputs with.
	Derived
	// Predicted marks a computed value intended for comparison against an
	// external reference in the gate-check ledger.
	Predicted
	// Terminal marks a final value no later simulation is expected to read.
	Terminal
	// Validation marks a self-check result, not a physical quantity.
	Validation
)

var statusNames = map[Status]string{
	Established: "ESTABLISHED",
	Geometric:   "GEOMETRIC",
	Derived:     "DERIVED",
	Predicted:   "PREDICTED",
	Terminal:    "TERMINAL",
	Validation:  "VALIDATION",
}

// String returns the canonical upper-case tag for the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS(%d)", int(s))
}

// Valid reports whether s is one of the closed set of known statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus converts a canonical tag back into a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown parameter status %q", name)
}

// MarshalText implements encoding.TextMarshaler so entries serialize with
// their canonical tags in JSON and YAML reports.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid parameter status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
