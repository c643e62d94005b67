package verify

import (
	"fmt"

	"github.com/weftlab/weft/internal/ir"
)

// checkSignatures flags orphan blocks: all four signature slots empty
// means the block can neither receive nor emit data. Compilable, but
// almost certainly an authoring mistake, so a warning.
func checkSignatures(system *ir.SystemIR) []Finding {
	var findings []Finding
	for _, b := range system.Blocks {
		if b.ForwardIn == "" && b.ForwardOut == "" && b.BackwardIn == "" && b.BackwardOut == "" {
			findings = append(findings, Finding{
				CheckID:  CheckSignatures,
				Severity: SeverityWarning,
				Message: fmt.Sprintf(
					"block %q is an orphan: no ports declared on any signature slot", b.Name),
				SourceElements: []string{b.Name},
			})
		}
	}
	if findings == nil {
		return []Finding{pass(CheckSignatures,
			fmt.Sprintf("all %d blocks declare at least one port", len(system.Blocks)))}
	}
	return findings
}
