// Package registry implements the shared parameter store the manuscript
// pipeline communicates through: a map from dotted paths (for example
// "topology.b3") to scalar entries carrying provenance.
//
// # Purpose
//
// Every simulation reads its declared inputs from a Registry and the
// execution driver writes its declared outputs back, each tagged with the
// producing simulation's id, a status, and a timestamp. Report generators
// later read the same entries to reconstruct provenance chains.
//
// # Semantics
//
//   - Paths are opaque keys. The "namespace.name" convention is for humans;
//     the store never interprets path structure.
//   - Lookups for absent paths fail loudly with MissingParameterError.
//     There is no default value, because a nil or zero scalar flowing
//     silently into downstream arithmetic is exactly the defect this store
//     exists to surface early.
//   - Writes replace the previous entry, last-writer-wins, with one
//     exception: an Established entry (a hand-entered axiom) can only be
//     replaced by another Established write. Anything else is an
//     OverwriteProtectionError, treated as a programming defect.
//
// # Concurrency
//
// The pipeline driver is strictly sequential, but the store is guarded by a
// RWMutex so that a caller who shares one instance across goroutines gets
// racy ordering, not corruption. Write ordering under concurrency remains
// the caller's problem.
package registry
