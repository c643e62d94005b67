package verify

import (
	"context"
	"sync"

	"github.com/weftlab/weft/internal/ir"
)

// Check is one verification pass: a stable ID, a human-readable name, and
// a pure function over the IR. Run must return findings rather than
// erroring; a check that cannot inspect its input reports a "cannot
// verify" info finding.
type Check struct {
	ID   string
	Name string
	Run  func(*ir.SystemIR) []Finding
}

// Stable check IDs. External tooling filters findings by these strings;
// they are part of the contract and are never renumbered.
const (
	CheckDanglingWirings = "V100"
	CheckDomainCodomain  = "V110"
	CheckSequentialTypes = "V111"
	CheckDirection       = "V120"
	CheckAcyclicity      = "V130"
	CheckSignatures      = "V140"
	CheckUnusedInputs    = "V150"
)

// DefaultChecks returns the full generic check registry in registration
// order. The slice is freshly allocated; callers may trim it.
func DefaultChecks() []Check {
	return []Check{
		{ID: CheckDanglingWirings, Name: "dangling wirings", Run: checkDanglingWirings},
		{ID: CheckDomainCodomain, Name: "domain/codomain matching", Run: checkDomainCodomain},
		{ID: CheckSequentialTypes, Name: "sequential type compatibility", Run: checkSequentialTypes},
		{ID: CheckDirection, Name: "direction consistency", Run: checkDirection},
		{ID: CheckAcyclicity, Name: "covariant acyclicity", Run: checkAcyclicity},
		{ID: CheckSignatures, Name: "signature completeness", Run: checkSignatures},
		{ID: CheckUnusedInputs, Name: "unused inputs", Run: checkUnusedInputs},
	}
}

// Verify runs each check against the IR and aggregates the findings.
// With no explicit checks the full default registry runs. The IR is never
// mutated, so repeated calls are idempotent.
func Verify(system *ir.SystemIR, checks ...Check) *Report {
	if len(checks) == 0 {
		checks = DefaultChecks()
	}
	perCheck := make([][]Finding, len(checks))
	for i, c := range checks {
		perCheck[i] = runCheck(c, system)
	}
	return newReport(perCheck)
}

// VerifyParallel runs the checks concurrently over the immutable IR and
// merges findings deterministically by registration order. Execution order
// is unspecified; report order is not. The context aborts dispatch of
// not-yet-started checks, which then report "cannot verify".
func VerifyParallel(ctx context.Context, system *ir.SystemIR, checks ...Check) *Report {
	if len(checks) == 0 {
		checks = DefaultChecks()
	}

	const workers = 4
	sem := make(chan struct{}, workers)
	perCheck := make([][]Finding, len(checks))

	var wg sync.WaitGroup
	for i, c := range checks {
		if ctx.Err() != nil {
			perCheck[i] = []Finding{cannotVerify(c.ID, "verification canceled")}
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, c Check) {
			defer wg.Done()
			defer func() { <-sem }()
			perCheck[i] = runCheck(c, system)
		}(i, c)
	}
	wg.Wait()

	return newReport(perCheck)
}

func runCheck(c Check, system *ir.SystemIR) []Finding {
	if system == nil {
		return []Finding{cannotVerify(c.ID, "no system IR")}
	}
	findings := c.Run(system)
	if len(findings) == 0 {
		// A silent check still counts as a pass.
		findings = []Finding{pass(c.ID, c.Name+": ok")}
	}
	return findings
}
