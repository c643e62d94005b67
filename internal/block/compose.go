package block

import "fmt"

// NewAtomic constructs a leaf block, enforcing the role-interface
// constraints: boundary blocks take no forward inputs, mechanism blocks
// carry no backward channels. Violations fail immediately so an invalid
// leaf never participates in composition.
func NewAtomic(name string, iface Interface, role Role) (*Atomic, error) {
	if !role.Valid() {
		return nil, &CompositionError{Block: name, Role: role, Message: "invalid role"}
	}
	switch role {
	case RoleBoundary:
		if len(iface.ForwardIn) > 0 {
			return nil, &CompositionError{
				Block:   name,
				Role:    role,
				Message: fmt.Sprintf("boundary blocks must not declare forward inputs, got %q", JoinNames(iface.ForwardIn)),
			}
		}
	case RoleMechanism:
		if len(iface.BackwardIn) > 0 || len(iface.BackwardOut) > 0 {
			return nil, &CompositionError{
				Block:   name,
				Role:    role,
				Message: "mechanism blocks must not declare backward channels",
			}
		}
	}
	return &Atomic{Name: name, Iface: iface, Role: role}, nil
}

// Sequential composes a before b. When explicit wiring is supplied it is
// authoritative and no type check runs. Otherwise at least one port of
// a's forward outputs must token-overlap a port of b's forward inputs;
// a sequence that cannot carry data is rejected here, at construction,
// rather than surfacing later as a compile artifact with no wirings.
func Sequential(a, b Block, wiring ...Wiring) (*Seq, error) {
	name := fmt.Sprintf("%s >> %s", a.BlockName(), b.BlockName())
	if len(wiring) == 0 {
		if !anyOverlap(a.Interface().ForwardOut, b.Interface().ForwardIn) {
			return nil, &TypeError{
				Op: "sequential",
				Message: fmt.Sprintf("no output of %q type-matches any input of %q and no explicit wiring was given",
					a.BlockName(), b.BlockName()),
			}
		}
	}
	return &Seq{Name: name, First: a, Second: b, Wiring: wiring}, nil
}

// Parallel composes a beside b. Interfaces concatenate; independence of the
// two sides is checked by the verifier, not here.
func Parallel(a, b Block) *Par {
	return &Par{
		Name:  fmt.Sprintf("%s | %s", a.BlockName(), b.BlockName()),
		Left:  a,
		Right: b,
	}
}

// NewFeedback wraps inner with within-timestep feedback wiring. Direction
// of the entries is not validated here: contravariant flows are expected,
// but a covariant entry is a verification-time contradiction, not a
// construction failure.
func NewFeedback(inner Block, wiring []Wiring) *Feedback {
	return &Feedback{
		Name:           fmt.Sprintf("loop(%s)", inner.BlockName()),
		Inner:          inner,
		FeedbackWiring: wiring,
	}
}

// NewTemporal wraps inner with next-timestep recurrence wiring. Any
// contravariant entry is rejected: temporal recurrence is forward-in-time
// by definition, and violating that is a logic error, not a structural
// nuance to warn about later.
func NewTemporal(inner Block, wiring []Wiring, exitCondition string) (*Temporal, error) {
	for _, w := range wiring {
		if w.Direction == Contravariant {
			return nil, &TypeError{
				Op: "temporal",
				Message: fmt.Sprintf("temporal wiring %s must be covariant: recurrence flows forward in time",
					w.String()),
			}
		}
	}
	return &Temporal{
		Name:           fmt.Sprintf("iterate(%s)", inner.BlockName()),
		Inner:          inner,
		TemporalWiring: wiring,
		ExitCondition:  exitCondition,
	}, nil
}
