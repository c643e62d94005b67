package verify

import (
	"fmt"

	"github.com/weftlab/weft/internal/ir"
)

// checkDanglingWirings verifies every wiring endpoint names a block that
// exists in the IR. A wiring into nowhere is always an error: the compiler
// only emits endpoints it resolved, so a dangling name means the IR was
// assembled or edited outside the compiler.
func checkDanglingWirings(system *ir.SystemIR) []Finding {
	known := system.BlockNames()

	var findings []Finding
	for _, w := range system.Wirings {
		for _, endpoint := range []struct{ role, name string }{
			{"source", w.Source},
			{"target", w.Target},
		} {
			if known[endpoint.name] {
				continue
			}
			findings = append(findings, Finding{
				CheckID:  CheckDanglingWirings,
				Severity: SeverityError,
				Message: fmt.Sprintf("wiring %q references undeclared %s block %q",
					w.Label, endpoint.role, endpoint.name),
				SourceElements: []string{endpoint.name},
			})
		}
	}
	if findings == nil {
		return []Finding{pass(CheckDanglingWirings,
			fmt.Sprintf("all %d wirings reference declared blocks", len(system.Wirings)))}
	}
	return findings
}
