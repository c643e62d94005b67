package compiler

import (
	"github.com/weftlab/weft/internal/block"
	"github.com/weftlab/weft/internal/ir"
)

// BlockRecord maps an atomic leaf to its compiled record: name plus the
// four signature slots as joined port-name strings.
func BlockRecord(leaf *block.Atomic) (ir.BlockRecord, error) {
	return ir.BlockRecord{
		Name:        leaf.Name,
		ForwardIn:   block.JoinNames(leaf.Iface.ForwardIn),
		ForwardOut:  block.JoinNames(leaf.Iface.ForwardOut),
		BackwardIn:  block.JoinNames(leaf.Iface.BackwardIn),
		BackwardOut: block.JoinNames(leaf.Iface.BackwardOut),
	}, nil
}

// Compile runs all three passes over a well-formed tree and assembles the
// SystemIR: blocks in flatten order, wirings in emission order, and the
// chain-flattened hierarchy. Total over any tree the algebra constructors
// accepted.
func Compile(name string, root block.Block) (*ir.SystemIR, error) {
	blocks, err := FlattenBlocks(root, BlockRecord)
	if err != nil {
		return nil, err
	}
	wirings, err := ExtractWirings(root, DefaultEmitter)
	if err != nil {
		return nil, err
	}
	return &ir.SystemIR{
		Name:      name,
		Blocks:    blocks,
		Wirings:   wirings,
		Hierarchy: ExtractHierarchy(root),
		Source:    root.BlockName(),
	}, nil
}
