// Package record implements the pure operations on task records.
//
// Everything in this package is a leaf: no I/O, no shared state. The
// collection controller (internal/todo) funnels every mutation through
// these functions.
//
// # Operations
//
//   - GenerateID: "<unix-millis>-<9 lowercase alphanumerics>" identities
//   - ValidateText: the single gatekeeper for text entering the system
//   - Build / Factory.Build: construct a new record with defaults applied
//   - SelectByStatus: filter by completion state, order preserved
//   - OrderRecords: date / alphabetical / priority ordering on a copy
//   - ComputeStats: totals and a round-half-up completion percentage
//
// Inputs are never mutated. Every function that returns a slice returns
// a freshly allocated one.
//
// # Text length
//
// The 200 character limit counts Unicode code points of the NFC form of
// the trimmed text. The returned text is the trimmed input, not the
// normalized form.
package record
