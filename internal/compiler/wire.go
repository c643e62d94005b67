package compiler

import (
	"fmt"

	"github.com/weftlab/weft/internal/block"
	"github.com/weftlab/weft/internal/ir"
)

// Emitter converts a structural wiring into its compiled record. The
// default emitter derives the is_feedback/is_temporal flags purely from
// the origin tag and fills the "dataflow" category.
type Emitter func(StructuralWiring) (ir.WiringRecord, error)

// DefaultEmitter is the standard structural-to-record conversion.
func DefaultEmitter(sw StructuralWiring) (ir.WiringRecord, error) {
	return ir.WiringRecord{
		Source:     sw.SourceBlock,
		Target:     sw.TargetBlock,
		Label:      sw.Label(),
		Direction:  sw.Direction.String(),
		IsFeedback: sw.Origin == OriginFeedback,
		IsTemporal: sw.Origin == OriginTemporal,
		Category:   ir.CategoryDataflow,
	}, nil
}

// ExtractWirings walks the tree depth-first and emits one record per
// structural wiring. Sequential children's wirings are emitted before
// their parent's, keeping emission order roughly topological. An emitter
// error aborts the traversal and propagates unchanged.
func ExtractWirings(root block.Block, emit Emitter) ([]ir.WiringRecord, error) {
	var records []ir.WiringRecord
	appendWiring := func(sw StructuralWiring) error {
		rec, err := emit(sw)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	}
	if err := walkWirings(root, appendWiring); err != nil {
		return nil, err
	}
	if records == nil {
		records = []ir.WiringRecord{}
	}
	return records, nil
}

func walkWirings(b block.Block, emit func(StructuralWiring) error) error {
	switch node := b.(type) {
	case *block.Atomic:
		return nil

	case *block.Seq:
		if err := walkWirings(node.First, emit); err != nil {
			return err
		}
		if err := walkWirings(node.Second, emit); err != nil {
			return err
		}
		if len(node.Wiring) > 0 {
			for _, w := range node.Wiring {
				if err := emit(StructuralWiring{Wiring: w, Origin: OriginExplicit}); err != nil {
					return err
				}
			}
			return nil
		}
		return autoWire(node, emit)

	case *block.Par:
		// Parallel siblings are independent: recurse, emit nothing.
		if err := walkWirings(node.Left, emit); err != nil {
			return err
		}
		return walkWirings(node.Right, emit)

	case *block.Feedback:
		if err := walkWirings(node.Inner, emit); err != nil {
			return err
		}
		for _, w := range node.FeedbackWiring {
			if err := emit(StructuralWiring{Wiring: w, Origin: OriginFeedback}); err != nil {
				return err
			}
		}
		return nil

	case *block.Temporal:
		if err := walkWirings(node.Inner, emit); err != nil {
			return err
		}
		for _, w := range node.TemporalWiring {
			if err := emit(StructuralWiring{Wiring: w, Origin: OriginTemporal}); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unhandled block variant %T", b)
	}
}

// autoWire infers covariant connections across a sequential boundary: one
// wiring per (forward-out, forward-in) port pair whose token sets overlap.
// Endpoints are resolved to the leaf that actually declares the port.
func autoWire(node *block.Seq, emit func(StructuralWiring) error) error {
	outs := node.First.Interface().ForwardOut
	ins := node.Second.Interface().ForwardIn
	for _, out := range outs {
		for _, in := range ins {
			if !block.Overlaps(out, in) {
				continue
			}
			sw := StructuralWiring{
				Wiring: block.Wiring{
					SourceBlock: findOutputOwner(node.First, out.Name),
					SourcePort:  out.Name,
					TargetBlock: findInputOwner(node.Second, in.Name),
					TargetPort:  in.Name,
					Direction:   block.Covariant,
				},
				Origin: OriginAuto,
			}
			if err := emit(sw); err != nil {
				return err
			}
		}
	}
	return nil
}

// findOutputOwner locates the leaf in the subtree that declares the named
// forward output. Composites can pass a port through without any leaf
// literally declaring it; in that case the last leaf of the subtree is the
// best-effort owner (it sits closest to the sequential boundary).
func findOutputOwner(b block.Block, portName string) string {
	leaves := Leaves(b)
	for _, leaf := range leaves {
		for _, p := range leaf.Iface.ForwardOut {
			if p.Name == portName {
				return leaf.Name
			}
		}
	}
	return leaves[len(leaves)-1].Name
}

// findInputOwner is the mirror of findOutputOwner for forward inputs, with
// the first leaf of the subtree as the fallback owner.
func findInputOwner(b block.Block, portName string) string {
	leaves := Leaves(b)
	for _, leaf := range leaves {
		for _, p := range leaf.Iface.ForwardIn {
			if p.Name == portName {
				return leaf.Name
			}
		}
	}
	return leaves[0].Name
}
