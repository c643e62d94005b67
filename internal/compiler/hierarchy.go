package compiler

import (
	"fmt"

	"github.com/weftlab/weft/internal/block"
	"github.com/weftlab/weft/internal/ir"
)

// ExtractHierarchy rebuilds the composition tree as a simplified n-ary
// hierarchy for inspection and visualization. Chains of same-type
// sequential or parallel nodes collapse into one node with all their
// children spliced in order, so a left-leaning binary chain of N
// compositions reads as a single node with N children. A presentation
// transform only: wirings are unaffected.
//
// Node IDs are tree-path identifiers ("h0", "h0.2", ...) assigned after
// flattening, so identical trees always carry identical IDs.
func ExtractHierarchy(root block.Block) *ir.HierarchyNode {
	node := buildHierarchy(root)
	node = flattenChains(node)
	assignIDs(node, "h0")
	return node
}

func buildHierarchy(b block.Block) *ir.HierarchyNode {
	switch node := b.(type) {
	case *block.Atomic:
		return &ir.HierarchyNode{Name: node.Name, BlockName: node.Name}
	case *block.Seq:
		return &ir.HierarchyNode{
			Name:            node.Name,
			CompositionType: ir.CompositionSequential,
			Children: []*ir.HierarchyNode{
				buildHierarchy(node.First),
				buildHierarchy(node.Second),
			},
		}
	case *block.Par:
		return &ir.HierarchyNode{
			Name:            node.Name,
			CompositionType: ir.CompositionParallel,
			Children: []*ir.HierarchyNode{
				buildHierarchy(node.Left),
				buildHierarchy(node.Right),
			},
		}
	case *block.Feedback:
		return &ir.HierarchyNode{
			Name:            node.Name,
			CompositionType: ir.CompositionFeedback,
			Children:        []*ir.HierarchyNode{buildHierarchy(node.Inner)},
		}
	case *block.Temporal:
		return &ir.HierarchyNode{
			Name:            node.Name,
			CompositionType: ir.CompositionTemporal,
			Children:        []*ir.HierarchyNode{buildHierarchy(node.Inner)},
			ExitCondition:   node.ExitCondition,
		}
	default:
		panic(fmt.Sprintf("unhandled block variant %T", b))
	}
}

// flattenChains splices same-type sequential/parallel children into their
// parent, bottom-up.
func flattenChains(node *ir.HierarchyNode) *ir.HierarchyNode {
	for i, child := range node.Children {
		node.Children[i] = flattenChains(child)
	}
	if node.CompositionType != ir.CompositionSequential &&
		node.CompositionType != ir.CompositionParallel {
		return node
	}
	var merged []*ir.HierarchyNode
	for _, child := range node.Children {
		if child.CompositionType == node.CompositionType {
			merged = append(merged, child.Children...)
		} else {
			merged = append(merged, child)
		}
	}
	node.Children = merged
	return node
}

func assignIDs(node *ir.HierarchyNode, id string) {
	node.ID = id
	for i, child := range node.Children {
		assignIDs(child, fmt.Sprintf("%s.%d", id, i))
	}
}
