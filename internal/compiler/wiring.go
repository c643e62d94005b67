package compiler

import (
	"fmt"

	"github.com/weftlab/weft/internal/block"
)

// WiringOrigin records how a structural wiring came to exist. The origin
// alone determines the is_feedback/is_temporal flags on emitted records;
// direction never does.
type WiringOrigin int

const (
	// OriginAuto marks connections inferred by token overlap at a
	// sequential boundary.
	OriginAuto WiringOrigin = iota
	// OriginExplicit marks connections authored at a sequential node.
	OriginExplicit
	// OriginFeedback marks within-timestep feedback loop entries.
	OriginFeedback
	// OriginTemporal marks next-timestep recurrence entries.
	OriginTemporal
)

var originNames = map[WiringOrigin]string{
	OriginAuto:     "auto",
	OriginExplicit: "explicit",
	OriginFeedback: "feedback",
	OriginTemporal: "temporal",
}

// String returns the stable lowercase name of the origin.
func (o WiringOrigin) String() string {
	if n, ok := originNames[o]; ok {
		return n
	}
	return fmt.Sprintf("WiringOrigin(%d)", int(o))
}

// StructuralWiring is a wiring as the extraction pass sees it: the authored
// (or inferred) connection plus its origin tag. It exists only between the
// DFS and the emitter; it is never exposed on the SystemIR.
type StructuralWiring struct {
	block.Wiring
	Origin WiringOrigin
}
