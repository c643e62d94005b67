package block

import "strings"

// Interface is a block's connection surface: four ordered port lists.
// ForwardIn/ForwardOut carry the timestep-local computation; BackwardIn/
// BackwardOut carry within-timestep feedback channels. All lists default
// empty. Composite interfaces are always derived from children, never
// stored, so they cannot drift out of sync with the tree.
type Interface struct {
	ForwardIn   []Port
	ForwardOut  []Port
	BackwardIn  []Port
	BackwardOut []Port
}

// concat returns the pairwise concatenation of two interfaces.
// Used by parallel composition, where both children stay independent.
func concat(a, b Interface) Interface {
	return Interface{
		ForwardIn:   append(append([]Port{}, a.ForwardIn...), b.ForwardIn...),
		ForwardOut:  append(append([]Port{}, a.ForwardOut...), b.ForwardOut...),
		BackwardIn:  append(append([]Port{}, a.BackwardIn...), b.BackwardIn...),
		BackwardOut: append(append([]Port{}, a.BackwardOut...), b.BackwardOut...),
	}
}

// JoinNames renders a port list as a ", "-joined name string.
// This is the signature-slot format used in compiled block records.
func JoinNames(ports []Port) string {
	if len(ports) == 0 {
		return ""
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// anyOverlap reports whether any port in outs token-overlaps any port in ins.
func anyOverlap(outs, ins []Port) bool {
	for _, o := range outs {
		for _, i := range ins {
			if Overlaps(o, i) {
				return true
			}
		}
	}
	return false
}
