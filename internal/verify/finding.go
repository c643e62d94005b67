package verify

import "fmt"

// Severity grades a finding. An Error severity is informational to the
// caller (the report is still returned normally); callers gate on
// Report.Errors, not on warnings or info.
type Severity int

const (
	// SeverityError marks a structurally unsound model.
	SeverityError Severity = iota
	// SeverityWarning marks a suspicious but compilable pattern.
	SeverityWarning
	// SeverityInfo marks neutral diagnostics, including "cannot verify"
	// outcomes on malformed input.
	SeverityInfo
)

var severityNames = map[Severity]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
}

// String returns the stable lowercase name of the severity.
func (s Severity) String() string {
	if n, ok := severityNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if n, ok := severityNames[s]; ok {
		return []byte(n), nil
	}
	return nil, fmt.Errorf("cannot marshal invalid severity %d", int(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	for sev, n := range severityNames {
		if n == string(text) {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", string(text))
}

// Finding is one check result. A passing check still reports a finding
// (Passed=true) so the report accounts for every check that ran.
type Finding struct {
	CheckID        string   `json:"check_id"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Passed         bool     `json:"passed"`
	SourceElements []string `json:"source_elements,omitempty"`
}

// pass builds a passing finding for a check.
func pass(checkID, message string) Finding {
	return Finding{CheckID: checkID, Severity: SeverityInfo, Message: message, Passed: true}
}

// cannotVerify builds the conservative "treated as pass" finding for input
// a check is unable to inspect.
func cannotVerify(checkID, reason string) Finding {
	return Finding{
		CheckID:  checkID,
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("cannot verify: %s", reason),
		Passed:   true,
	}
}

// Report aggregates the findings of one verification run. The counts are
// per check: every check lands in exactly one bucket (passed, or its worst
// failing severity), so ChecksPassed+Errors+Warnings+InfoCount always sums
// to ChecksTotal.
type Report struct {
	Findings     []Finding `json:"findings"`
	ChecksTotal  int       `json:"checks_total"`
	ChecksPassed int       `json:"checks_passed"`
	Errors       int       `json:"errors"`
	Warnings     int       `json:"warnings"`
	InfoCount    int       `json:"info_count"`
}

// Sound reports whether the model passed without errors. Warnings do not
// make a model unsound.
func (r *Report) Sound() bool {
	return r.Errors == 0
}

// FindingsFor returns the findings of one check by ID.
func (r *Report) FindingsFor(checkID string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.CheckID == checkID {
			out = append(out, f)
		}
	}
	return out
}

// newReport assembles a report from per-check finding lists, in
// registration order.
func newReport(perCheck [][]Finding) *Report {
	report := &Report{ChecksTotal: len(perCheck)}
	for _, findings := range perCheck {
		report.Findings = append(report.Findings, findings...)

		worst, failed := SeverityInfo, false
		for _, f := range findings {
			if f.Passed {
				continue
			}
			failed = true
			if f.Severity < worst {
				worst = f.Severity
			}
		}
		switch {
		case !failed:
			report.ChecksPassed++
		case worst == SeverityError:
			report.Errors++
		case worst == SeverityWarning:
			report.Warnings++
		default:
			report.InfoCount++
		}
	}
	return report
}
