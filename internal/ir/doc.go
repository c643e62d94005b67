// Package ir defines the flat intermediate representation a block tree
// compiles into, and canonical serialization for content addressing.
//
// This package contains type definitions and serialization only. All other
// internal packages import ir; ir imports nothing internal, keeping it the
// foundational layer with no circular dependencies.
//
// A SystemIR is built once per compile call and is read-only thereafter:
// the verifier and every downstream consumer see the same immutable value,
// so re-verification is idempotent by construction.
package ir
