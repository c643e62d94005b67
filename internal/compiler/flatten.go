package compiler

import (
	"fmt"

	"github.com/weftlab/weft/internal/block"
)

// FlattenBlocks collects all atomic leaves of the tree depth-first, left to
// right, mapping each through mapper. The order is stable and deterministic
// for a given tree; it is the canonical block order of the compiled system.
// A mapper error aborts the traversal and propagates unchanged.
func FlattenBlocks[T any](root block.Block, mapper func(*block.Atomic) (T, error)) ([]T, error) {
	var out []T
	if err := walkLeaves(root, func(leaf *block.Atomic) error {
		mapped, err := mapper(leaf)
		if err != nil {
			return err
		}
		out = append(out, mapped)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Leaves returns the atomic leaves of the tree in canonical order.
func Leaves(root block.Block) []*block.Atomic {
	leaves, _ := FlattenBlocks(root, func(b *block.Atomic) (*block.Atomic, error) {
		return b, nil
	})
	return leaves
}

func walkLeaves(b block.Block, visit func(*block.Atomic) error) error {
	switch node := b.(type) {
	case *block.Atomic:
		return visit(node)
	case *block.Seq:
		if err := walkLeaves(node.First, visit); err != nil {
			return err
		}
		return walkLeaves(node.Second, visit)
	case *block.Par:
		if err := walkLeaves(node.Left, visit); err != nil {
			return err
		}
		return walkLeaves(node.Right, visit)
	case *block.Feedback:
		return walkLeaves(node.Inner, visit)
	case *block.Temporal:
		return walkLeaves(node.Inner, visit)
	default:
		// Block is a closed sum; reaching this means a new variant was
		// added without updating the compiler.
		return fmt.Errorf("unhandled block variant %T", b)
	}
}
