package registry

import "fmt"

// MissingParameterError is returned when a lookup names a path that was
// never set. It is never swallowed: absence is a contract violation by
// whichever simulation declared the path as an input.
type MissingParameterError struct {
	Path string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameter %q has not been set", e.Path)
}

// OverwriteProtectionError is returned when a Set would replace an
// Established entry with a non-Established write. This protects hand-entered
// axioms from being clobbered by a buggy derivation; it is a programming
// defect, not a recoverable runtime condition.
type OverwriteProtectionError struct {
	Path            string
	ExistingSource  string
	AttemptedSource string
	Attempted       Status
}

func (e *OverwriteProtectionError) Error() string {
	return fmt.Sprintf("parameter %q is %s (source %q) and cannot be overwritten with status %s by %q",
		e.Path, Established, e.ExistingSource, e.Attempted, e.AttemptedSource)
}
