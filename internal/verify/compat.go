package verify

import (
	"fmt"

	"github.com/weftlab/weft/internal/block"
	"github.com/weftlab/weft/internal/ir"
)

// checkDomainCodomain verifies each wiring's label is type-compatible with
// at least one of its endpoints: label tokens must be a subset of the
// source's declared output tokens OR of the target's declared input
// tokens. The looser of the two compatibility checks; failures are
// warnings.
func checkDomainCodomain(system *ir.SystemIR) []Finding {
	return checkLabelCompat(system, CheckDomainCodomain,
		func(label, srcOut, tgtIn map[string]struct{}) bool {
			return block.SubsetOf(label, srcOut) || block.SubsetOf(label, tgtIn)
		},
		"label %q of wiring %s -> %s matches neither the source outputs nor the target inputs")
}

// checkSequentialTypes is the strict sibling of checkDomainCodomain: label
// tokens must be a subset of the source's output tokens AND the target's
// input tokens simultaneously. Strictly stronger - a flow can pass the
// loose check and fail this one - and kept as a distinct check with a
// distinct ID because it answers a different question.
func checkSequentialTypes(system *ir.SystemIR) []Finding {
	return checkLabelCompat(system, CheckSequentialTypes,
		func(label, srcOut, tgtIn map[string]struct{}) bool {
			return block.SubsetOf(label, srcOut) && block.SubsetOf(label, tgtIn)
		},
		"label %q of wiring %s -> %s is not carried by both the source outputs and the target inputs")
}

func checkLabelCompat(system *ir.SystemIR, checkID string,
	compatible func(label, srcOut, tgtIn map[string]struct{}) bool,
	failFormat string) []Finding {

	var findings []Finding
	checked := 0
	for _, w := range system.Wirings {
		src, tgt := system.BlockByName(w.Source), system.BlockByName(w.Target)
		if src == nil || tgt == nil {
			// Dangling endpoints are V100's finding, not a type mismatch.
			continue
		}
		label := block.Tokenize(w.Label)
		if len(label) == 0 {
			findings = append(findings, cannotVerify(checkID,
				fmt.Sprintf("wiring %s -> %s has no label tokens", w.Source, w.Target)))
			continue
		}
		checked++
		// Outputs and inputs span both the forward and backward channels,
		// so feedback wirings over backward ports are judged fairly.
		srcOut := block.Tokenize(src.ForwardOut + " " + src.BackwardOut)
		tgtIn := block.Tokenize(tgt.ForwardIn + " " + tgt.BackwardIn)
		if compatible(label, srcOut, tgtIn) {
			continue
		}
		findings = append(findings, Finding{
			CheckID:        checkID,
			Severity:       SeverityWarning,
			Message:        fmt.Sprintf(failFormat, w.Label, w.Source, w.Target),
			SourceElements: []string{w.Source, w.Target},
		})
	}
	if findings == nil {
		return []Finding{pass(checkID, fmt.Sprintf("%d wirings type-compatible", checked))}
	}
	return findings
}
