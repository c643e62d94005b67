// Package block implements the composition algebra for WEFT system models.
//
// A model is a tree of typed blocks. Leaves are atomic blocks carrying an
// interface (four ordered port lists) and a role tag. Composites are built
// with four operators: sequential, parallel, feedback, and temporal.
//
// Construction is the first of two validation regimes: role constraints,
// sequential type compatibility (when no explicit wiring is given), and the
// temporal forward-only rule are enforced here, so an invalid sub-tree can
// never propagate into composition or compilation. Everything else is a
// verification-time concern on the compiled IR (see internal/verify).
//
// Ports are structurally typed: a port's type is the set of lowercase word
// tokens derived from its name. Two ports match by token overlap or token
// subset, never by nominal type. This is deliberate - several verifier
// checks are different strengths of the same token-subset primitive.
package block
