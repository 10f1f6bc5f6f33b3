// Package params holds the declarative parameters of an image slot and the
// change tracking that decides which pipeline stages must re-run.
//
// # Dirty Flags
//
// Three independent flags gate the Crop, Tint and Transform stages. They are
// raised by a configuration read that changes a stage's inputs (Diff) and by a
// fresh image load for every stage that is non-trivial under the current
// parameters (Applicable). Flags accumulate until the owner completes a
// pipeline pass and clears them together.
package params
