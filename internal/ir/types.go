package ir

// Composition type names used on hierarchy nodes. Stable strings; external
// tooling matches on them.
const (
	CompositionSequential = "sequential"
	CompositionParallel   = "parallel"
	CompositionFeedback   = "feedback"
	CompositionTemporal   = "temporal"
)

// Wiring direction names. Stable strings mirroring the algebra's Direction
// enum; round-trip through JSON losslessly.
const (
	DirectionCovariant     = "covariant"
	DirectionContravariant = "contravariant"
)

// CategoryDataflow is the default wiring category. Emitters may override it.
const CategoryDataflow = "dataflow"

// BlockRecord is one compiled block: its name plus the four signature
// slots, each a ", "-joined port-name string. An empty string means the
// slot declared no ports.
type BlockRecord struct {
	Name        string `json:"name"`
	ForwardIn   string `json:"forward_in"`
	ForwardOut  string `json:"forward_out"`
	BackwardIn  string `json:"backward_in"`
	BackwardOut string `json:"backward_out"`
}

// WiringRecord is one compiled connection between two blocks. IsFeedback
// and IsTemporal are derived from the wiring's origin at emission time,
// never from its direction; the two must round-trip independently.
type WiringRecord struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	Label      string `json:"label"`
	Direction  string `json:"direction"`
	IsFeedback bool   `json:"is_feedback"`
	IsTemporal bool   `json:"is_temporal"`
	Category   string `json:"category"`
}

// HierarchyNode is the simplified n-ary composition tree kept for
// inspection and visualization. Leaves carry BlockName and no children.
// IDs are deterministic tree-path identifiers assigned at compile time,
// so identical trees always produce identical hierarchies.
type HierarchyNode struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	CompositionType string           `json:"composition_type,omitempty"`
	Children        []*HierarchyNode `json:"children,omitempty"`
	BlockName       string           `json:"block_name,omitempty"`
	ExitCondition   string           `json:"exit_condition,omitempty"`
}

// IsLeaf reports whether the node stands for an atomic block.
func (n *HierarchyNode) IsLeaf() bool {
	return n.BlockName != "" && len(n.Children) == 0
}

// SystemIR is the compiler's output and the sole artifact verification and
// downstream tooling consume. Blocks are in canonical (flatten) order;
// wirings are in emission order.
type SystemIR struct {
	Name      string         `json:"name"`
	Blocks    []BlockRecord  `json:"blocks"`
	Wirings   []WiringRecord `json:"wirings"`
	Hierarchy *HierarchyNode `json:"hierarchy,omitempty"`
	Source    string         `json:"source"`
}

// BlockNames returns the set of block names present in the IR.
func (s *SystemIR) BlockNames() map[string]bool {
	names := make(map[string]bool, len(s.Blocks))
	for _, b := range s.Blocks {
		names[b.Name] = true
	}
	return names
}

// BlockByName returns the record for the named block, or nil.
func (s *SystemIR) BlockByName(name string) *BlockRecord {
	for i := range s.Blocks {
		if s.Blocks[i].Name == name {
			return &s.Blocks[i]
		}
	}
	return nil
}
