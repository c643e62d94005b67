// Package verify runs structural and type soundness checks over a compiled
// SystemIR and aggregates their findings into a report.
//
// Checks are pure, independent, and order-insensitive: each consumes only
// the immutable IR, never another check's output, so any subset in any
// order yields the same per-check findings. That makes the check loop an
// embarrassingly parallel map; VerifyParallel exploits it with a worker
// pool while keeping the report deterministic by registration order.
//
// Failure semantics: a violated invariant is always a Finding with
// Passed=false and a severity, never a panic or an error return. Malformed
// input the verifier cannot inspect (nil IR, absent signature slots) is a
// "cannot verify" info finding treated as a pass - the verifier never
// blocks a pipeline on its own incompleteness.
//
// Check IDs are a stable external contract: downstream tooling filters
// findings by ID, so IDs are never renumbered.
package verify
