package registry

import (
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Entry is the immutable record stored for one parameter: the scalar value,
// the textual source that produced it, a status tag, and the write time.
type Entry struct {
	Value     cty.Value
	Source    string
	Status    Status
	Timestamp time.Time
}

// Reader is the read-only view of the store handed to simulations. Keeping
// writes out of the interface makes "simulations only write through the
// driver" a structural property instead of a documented discipline.
type Reader interface {
	// Get returns the stored scalar for path, or MissingParameterError.
	Get(path string) (cty.Value, error)
	// Float returns the value converted to a float64.
	Float(path string) (float64, error)
	// Int returns the value as an int64, failing on non-integers.
	Int(path string) (int64, error)
	// Bool returns the value as a bool.
	Bool(path string) (bool, error)
	// Has reports whether path has been set. It never fails.
	Has(path string) bool
}

var _ Reader = (*Registry)(nil)

// Registry is the dotted-path to Entry store. The zero value is not usable;
// construct instances with New. It is an explicit object passed to every
// execution rather than a process-wide singleton, so test isolation needs
// nothing beyond a fresh instance (or Reset on a reused one).
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty parameter registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Set creates or replaces the entry at path. Replacing an Established entry
// with a non-Established write fails with OverwriteProtectionError; all
// other overwrites are last-writer-wins. The previous entry is not retained.
func (r *Registry) Set(path string, value cty.Value, source string, status Status) error {
	if path == "" {
		return fmt.Errorf("parameter path must not be empty")
	}
	if source == "" {
		return fmt.Errorf("parameter %q: source must not be empty", path)
	}
	if !status.Valid() {
		return fmt.Errorf("parameter %q: invalid status %d", path, int(status))
	}
	if value == cty.NilVal || value.IsNull() || !value.IsKnown() {
		return fmt.Errorf("parameter %q: value must be a known, non-null scalar", path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[path]; ok {
		if existing.Status == Established && status != Established {
			return &OverwriteProtectionError{
				Path:            path,
				ExistingSource:  existing.Source,
				AttemptedSource: source,
				Attempted:       status,
			}
		}
	}

	r.entries[path] = Entry{
		Value:     value,
		Source:    source,
		Status:    status,
		Timestamp: time.Now(),
	}
	return nil
}

// Get returns the stored scalar for path.
func (r *Registry) Get(path string) (cty.Value, error) {
	entry, err := r.Entry(path)
	if err != nil {
		return cty.NilVal, err
	}
	return entry.Value, nil
}

// Entry returns the full record for path, for provenance inspection.
func (r *Registry) Entry(path string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[path]
	if !ok {
		return Entry{}, &MissingParameterError{Path: path}
	}
	return entry, nil
}

// Has reports whether path has been set.
func (r *Registry) Has(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[path]
	return ok
}

// Float returns the value at path converted to a float64.
func (r *Registry) Float(path string) (float64, error) {
	num, err := r.number(path)
	if err != nil {
		return 0, err
	}
	f, _ := num.AsBigFloat().Float64()
	return f, nil
}

// Int returns the value at path as an int64. A numeric value with a
// fractional part is an error, not a truncation.
func (r *Registry) Int(path string) (int64, error) {
	num, err := r.number(path)
	if err != nil {
		return 0, err
	}
	i, acc := num.AsBigFloat().Int64()
	if acc != big.Exact {
		return 0, fmt.Errorf("parameter %q is not an integer", path)
	}
	return i, nil
}

// Bool returns the value at path as a bool.
func (r *Registry) Bool(path string) (bool, error) {
	v, err := r.Get(path)
	if err != nil {
		return false, err
	}
	converted, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("parameter %q is not a bool: %w", path, err)
	}
	return converted.True(), nil
}

func (r *Registry) number(path string) (cty.Value, error) {
	v, err := r.Get(path)
	if err != nil {
		return cty.NilVal, err
	}
	num, err := convert.Convert(v, cty.Number)
	if err != nil {
		return cty.NilVal, fmt.Errorf("parameter %q is not numeric: %w", path, err)
	}
	return num, nil
}

// Paths returns every set path in sorted order. It is a snapshot; mutating
// the registry afterwards does not affect the returned slice.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.entries))
	for path := range r.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of stored entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset discards every entry, including Established ones. Intended for test
// isolation between independent pipeline runs sharing one instance.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]Entry)
}
