package verify

import (
	"fmt"

	"github.com/weftlab/weft/internal/ir"
)

// checkUnusedInputs reports disconnected initialization inputs: blocks
// declaring forward inputs that no wiring feeds. It also restates flows
// into undeclared blocks as warnings, so a report filtered to this check
// alone still surfaces them alongside the disconnect it implies.
func checkUnusedInputs(system *ir.SystemIR) []Finding {
	known := system.BlockNames()
	fed := make(map[string]bool)
	for _, w := range system.Wirings {
		fed[w.Target] = true
	}

	var findings []Finding
	for _, b := range system.Blocks {
		if b.ForwardIn != "" && !fed[b.Name] {
			findings = append(findings, Finding{
				CheckID:  CheckUnusedInputs,
				Severity: SeverityWarning,
				Message: fmt.Sprintf(
					"block %q declares inputs (%s) but no wiring feeds it", b.Name, b.ForwardIn),
				SourceElements: []string{b.Name},
			})
		}
	}
	for _, w := range system.Wirings {
		if !known[w.Target] {
			findings = append(findings, Finding{
				CheckID:  CheckUnusedInputs,
				Severity: SeverityWarning,
				Message: fmt.Sprintf(
					"flow %q feeds undeclared block %q", w.Label, w.Target),
				SourceElements: []string{w.Target},
			})
		}
	}
	if findings == nil {
		return []Finding{pass(CheckUnusedInputs, "every declared input is fed by a flow")}
	}
	return findings
}
