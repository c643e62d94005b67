package verify

import (
	"fmt"

	"github.com/weftlab/weft/internal/ir"
)

// checkDirection verifies direction consistency: a wiring flagged as
// feedback must not simultaneously declare a covariant direction. Feedback
// is definitionally backward within the timestep, so the combination is a
// logical contradiction and always an error.
func checkDirection(system *ir.SystemIR) []Finding {
	var findings []Finding
	for _, w := range system.Wirings {
		if w.IsFeedback && w.Direction == ir.DirectionCovariant {
			findings = append(findings, Finding{
				CheckID:  CheckDirection,
				Severity: SeverityError,
				Message: fmt.Sprintf(
					"wiring %s -> %s (%q) is a contradiction: feedback wirings cannot be covariant",
					w.Source, w.Target, w.Label),
				SourceElements: []string{w.Source, w.Target},
			})
		}
	}
	if findings == nil {
		return []Finding{pass(CheckDirection, "wiring directions consistent with feedback flags")}
	}
	return findings
}
