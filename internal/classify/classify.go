// Package classify projects a finished specification onto the canonical
// role partition: every block lands in exactly one of the four role sets,
// entity/variable pairs become the state vector, mechanism update
// declarations become the update map, and boundary/decision ports are
// collected for downstream control-form views.
package classify

import (
	"fmt"

	"github.com/weftlab/weft/internal/block"
)

// StateRef names one (entity, variable) pair of the modeled state.
type StateRef struct {
	Entity   string `json:"entity"`
	Variable string `json:"variable"`
}

// BlockDecl is one block of a finished specification as a front-end hands
// it over: the constructed atomic block plus the state refs its mechanism
// writes (empty for non-mechanisms).
type BlockDecl struct {
	Block   *block.Atomic
	Updates []StateRef
}

// EntityDecl declares one entity and its state variables.
type EntityDecl struct {
	Name      string
	Variables []string
}

// Spec is the classification input: the full block set plus the entity
// declarations of the specification.
type Spec struct {
	Blocks   []BlockDecl
	Entities []EntityDecl
}

// Classification is the canonical projection of a specification.
// The four role slices partition the block set: their union is the full
// set and their pairwise intersections are empty.
type Classification struct {
	Boundary  []string `json:"boundary"`
	Policy    []string `json:"policy"`
	Mechanism []string `json:"mechanism"`
	Control   []string `json:"control"`

	// StateVector lists every (entity, variable) pair in declaration order.
	StateVector []StateRef `json:"state_vector"`
	// Updates maps mechanism block name to the state refs it writes.
	Updates map[string][]StateRef `json:"updates"`

	// InputPorts are the forward outputs of boundary blocks; DecisionPorts
	// are the forward outputs of policy and control blocks.
	InputPorts    []string `json:"input_ports"`
	DecisionPorts []string `json:"decision_ports"`
}

// Classify partitions the specification's blocks by role tag and collects
// the derived views. Fails only on a block whose role tag is outside the
// four canonical roles, which the algebra constructors already prevent.
func Classify(spec Spec) (*Classification, error) {
	c := &Classification{Updates: make(map[string][]StateRef)}

	for _, decl := range spec.Blocks {
		b := decl.Block
		switch b.Role {
		case block.RoleBoundary:
			c.Boundary = append(c.Boundary, b.Name)
			for _, p := range b.Iface.ForwardOut {
				c.InputPorts = append(c.InputPorts, p.Name)
			}
		case block.RolePolicy:
			c.Policy = append(c.Policy, b.Name)
			for _, p := range b.Iface.ForwardOut {
				c.DecisionPorts = append(c.DecisionPorts, p.Name)
			}
		case block.RoleMechanism:
			c.Mechanism = append(c.Mechanism, b.Name)
			if len(decl.Updates) > 0 {
				c.Updates[b.Name] = append([]StateRef{}, decl.Updates...)
			}
		case block.RoleControl:
			c.Control = append(c.Control, b.Name)
			for _, p := range b.Iface.ForwardOut {
				c.DecisionPorts = append(c.DecisionPorts, p.Name)
			}
		default:
			return nil, fmt.Errorf("block %q carries unclassifiable role %d", b.Name, int(b.Role))
		}
	}

	for _, entity := range spec.Entities {
		for _, v := range entity.Variables {
			c.StateVector = append(c.StateVector, StateRef{Entity: entity.Name, Variable: v})
		}
	}

	return c, nil
}

// RoleSets returns the four role slices keyed by role name, for callers
// that iterate the partition generically.
func (c *Classification) RoleSets() map[string][]string {
	return map[string][]string{
		block.RoleBoundary.String():  c.Boundary,
		block.RolePolicy.String():    c.Policy,
		block.RoleMechanism.String(): c.Mechanism,
		block.RoleControl.String():   c.Control,
	}
}
