// Package pipeline orchestrates a batch run: depth-bounded file discovery,
// parallel plan computation, the advisory confirmation gate, rename
// execution, and summary reporting.
//
// All plans are computed and collected before any rename happens; the
// confirmation prompt sits between those two phases, so declining it
// leaves the filesystem untouched.
package pipeline
