package block

// Block is a node in the composition tree. It is a closed sum: exactly the
// five variants below implement it, so an exhaustive type switch over Block
// in the compiler breaks loudly if a composition operator is ever added.
// Blocks own their children exclusively; the tree itself is acyclic by
// construction (cycles are a property of the compiled wiring graph).
type Block interface {
	// BlockName returns the block's name.
	BlockName() string
	// Interface returns the block's connection surface. For composites it
	// is derived from the children on every call.
	Interface() Interface

	isBlock() // sealed
}

// Atomic is a leaf block: a named interface plus a role tag.
type Atomic struct {
	Name  string
	Iface Interface
	Role  Role
}

func (b *Atomic) isBlock() {}

// BlockName returns the block's name.
func (b *Atomic) BlockName() string { return b.Name }

// Interface returns the declared interface.
func (b *Atomic) Interface() Interface { return b.Iface }

// Seq is the sequential composition of two blocks: first's forward outputs
// feed second's forward inputs, either through explicit wiring or through
// token-overlap auto-wiring at compile time.
type Seq struct {
	Name   string
	First  Block
	Second Block
	// Wiring, when non-empty, is authoritative: it suppresses both the
	// construction-time overlap check and compile-time auto-wiring.
	Wiring []Wiring
}

func (b *Seq) isBlock() {}

// BlockName returns the composition's name.
func (b *Seq) BlockName() string { return b.Name }

// Interface derives the composite surface: forward flows enter through the
// first block and exit through the second; backward flows run the other way.
func (b *Seq) Interface() Interface {
	first, second := b.First.Interface(), b.Second.Interface()
	return Interface{
		ForwardIn:   first.ForwardIn,
		ForwardOut:  second.ForwardOut,
		BackwardIn:  second.BackwardIn,
		BackwardOut: first.BackwardOut,
	}
}

// Par is the parallel composition of two independent blocks. No wiring is
// ever attached here; whether siblings end up wired to each other is a
// verification concern, not a construction one.
type Par struct {
	Name  string
	Left  Block
	Right Block
}

func (b *Par) isBlock() {}

// BlockName returns the composition's name.
func (b *Par) BlockName() string { return b.Name }

// Interface derives the composite surface by concatenating both children.
func (b *Par) Interface() Interface {
	return concat(b.Left.Interface(), b.Right.Interface())
}

// Feedback wraps a block with within-timestep feedback wiring. The loop is
// invisible from outside: the composite interface equals the inner one.
type Feedback struct {
	Name           string
	Inner          Block
	FeedbackWiring []Wiring
}

func (b *Feedback) isBlock() {}

// BlockName returns the loop's name.
func (b *Feedback) BlockName() string { return b.Name }

// Interface returns the inner block's interface unchanged.
func (b *Feedback) Interface() Interface { return b.Inner.Interface() }

// Temporal wraps a block with next-timestep recurrence wiring and an exit
// condition. Recurrence is forward-in-time only: construction rejects
// contravariant entries.
type Temporal struct {
	Name           string
	Inner          Block
	TemporalWiring []Wiring
	ExitCondition  string
}

func (b *Temporal) isBlock() {}

// BlockName returns the loop's name.
func (b *Temporal) BlockName() string { return b.Name }

// Interface returns the inner block's interface unchanged.
func (b *Temporal) Interface() Interface { return b.Inner.Interface() }
