package block

import "fmt"

// TypeError reports a structural type failure at construction time:
// a sequential composition whose boundary ports share no tokens, or a
// temporal loop given a backward wiring. Fatal to building that sub-tree.
type TypeError struct {
	Op      string // "sequential" or "temporal"
	Message string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("type error in %s composition: %s", e.Op, e.Message)
}

// CompositionError reports a role-interface constraint violation on an
// atomic block, e.g. a boundary block declaring forward inputs.
type CompositionError struct {
	Block   string
	Role    Role
	Message string
}

// Error implements the error interface.
func (e *CompositionError) Error() string {
	return fmt.Sprintf("composition error in block %q (role %s): %s", e.Block, e.Role, e.Message)
}
