// Package transform implements the name-transformation engine: regex-driven
// field extraction, placeholder template rendering with zero-padding,
// extension enforcement, the pre-flight advisory check, and the extension
// allow-list predicate.
//
// Everything in this package is a pure function of its inputs. No I/O, no
// shared mutable state; all operations are safe to call concurrently, the
// only shared input being the caller's compiled *regexp.Regexp (immutable
// and safe for concurrent use by design of the regexp package).
package transform
