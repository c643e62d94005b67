// Package store archives compiled systems and their verification reports
// in SQLite, keyed by content-addressed system hash.
//
// The archive is host plumbing, not core: compilation and verification
// never touch it, and the serialization it uses (plain JSON of the IR and
// report) is a choice of this host, not a format the core mandates. The
// only contract is losslessness - what goes in comes back out field for
// field.
package store
