package block

import "fmt"

// Wiring is a directed, typed connection between two block ports, authored
// explicitly at a composition point. Auto-inferred connections never appear
// as Wiring values; they exist only inside the compiler.
type Wiring struct {
	SourceBlock string
	SourcePort  string
	TargetBlock string
	TargetPort  string
	Direction   Direction
}

// Label returns the port name that labels this wiring in compiled output:
// the source port, falling back to the target port.
func (w Wiring) Label() string {
	if w.SourcePort != "" {
		return w.SourcePort
	}
	return w.TargetPort
}

// String renders the wiring for diagnostics.
func (w Wiring) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s (%s)",
		w.SourceBlock, w.SourcePort, w.TargetBlock, w.TargetPort, w.Direction)
}
