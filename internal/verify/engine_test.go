package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlab/weft/internal/block"
	"github.com/weftlab/weft/internal/compiler"
	"github.com/weftlab/weft/internal/ir"
)

func compileSensorController(t *testing.T) *ir.SystemIR {
	t.Helper()
	sensor, err := block.NewAtomic("Sensor",
		block.Interface{ForwardOut: block.NewPorts("Temperature")}, block.RoleBoundary)
	require.NoError(t, err)
	controller, err := block.NewAtomic("Controller", block.Interface{
		ForwardIn:  block.NewPorts("Temperature"),
		ForwardOut: block.NewPorts("Command"),
	}, block.RolePolicy)
	require.NoError(t, err)

	seq, err := block.Sequential(sensor, controller)
	require.NoError(t, err)
	system, err := compiler.Compile("thermostat", seq)
	require.NoError(t, err)
	return system
}

func TestVerifyEndToEndSensorController(t *testing.T) {
	system := compileSensorController(t)

	require.Len(t, system.Wirings, 1)
	assert.Equal(t, ir.WiringRecord{
		Source: "Sensor", Target: "Controller", Label: "Temperature",
		Direction: ir.DirectionCovariant, Category: ir.CategoryDataflow,
	}, system.Wirings[0])

	report := Verify(system)
	assert.Equal(t, 0, report.Errors)
	assert.Equal(t, 0, report.Warnings)
	assert.True(t, report.Sound())
	assert.Equal(t, len(DefaultChecks()), report.ChecksTotal)
	assert.Equal(t, report.ChecksTotal, report.ChecksPassed)
}

func TestReportCountsSumToTotal(t *testing.T) {
	// A system with one error (dangling), one warning (orphan) and the
	// rest passing.
	system := &ir.SystemIR{
		Name: "broken",
		Blocks: []ir.BlockRecord{
			{Name: "A", ForwardOut: "X"},
			{Name: "Orphan"},
		},
		Wirings: []ir.WiringRecord{wiring("A", "Ghost", "X")},
	}

	report := Verify(system)
	assert.Equal(t, report.ChecksTotal,
		report.ChecksPassed+report.Errors+report.Warnings+report.InfoCount)
	assert.GreaterOrEqual(t, report.Errors, 1)
	assert.GreaterOrEqual(t, report.Warnings, 1)
	assert.False(t, report.Sound())
}

func TestVerifyIdempotent(t *testing.T) {
	system := compileSensorController(t)
	first := Verify(system)
	second := Verify(system)
	assert.Equal(t, first, second)
}

func TestVerifySubsetOrderInsensitive(t *testing.T) {
	system := &ir.SystemIR{
		Blocks:  []ir.BlockRecord{{Name: "A", ForwardOut: "X"}},
		Wirings: []ir.WiringRecord{wiring("A", "Ghost", "X")},
	}

	all := DefaultChecks()
	forward := Verify(system, all[0], all[4])
	reversed := Verify(system, all[4], all[0])

	// Per-check findings are identical regardless of run order.
	assert.Equal(t, forward.FindingsFor(CheckDanglingWirings),
		reversed.FindingsFor(CheckDanglingWirings))
	assert.Equal(t, forward.FindingsFor(CheckAcyclicity),
		reversed.FindingsFor(CheckAcyclicity))
}

func TestVerifyParallelMatchesSequential(t *testing.T) {
	system := &ir.SystemIR{
		Blocks: []ir.BlockRecord{
			{Name: "A", ForwardIn: "Z", ForwardOut: "X"},
			{Name: "B", ForwardIn: "X", ForwardOut: "Z"},
			{Name: "Orphan"},
		},
		Wirings: []ir.WiringRecord{
			wiring("A", "B", "X"),
			wiring("B", "A", "Z"),
		},
	}

	sequential := Verify(system)
	parallel := VerifyParallel(context.Background(), system)
	assert.Equal(t, sequential, parallel)
}

func TestVerifyParallelCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := VerifyParallel(ctx, compileSensorController(t))
	assert.Equal(t, len(DefaultChecks()), report.ChecksTotal)
	// Canceled checks are conservative passes, never errors.
	assert.Equal(t, 0, report.Errors)
	for _, f := range report.Findings {
		assert.Contains(t, f.Message, "cannot verify")
	}
}

func TestVerifyNilSystem(t *testing.T) {
	report := Verify(nil)
	assert.Equal(t, len(DefaultChecks()), report.ChecksTotal)
	assert.Equal(t, report.ChecksTotal, report.ChecksPassed)
	for _, f := range report.Findings {
		assert.True(t, f.Passed)
		assert.Contains(t, f.Message, "cannot verify")
	}
}

func TestSilentCheckCountsAsPass(t *testing.T) {
	silent := Check{ID: "V999", Name: "silent", Run: func(*ir.SystemIR) []Finding {
		return nil
	}}
	report := Verify(&ir.SystemIR{}, silent)
	require.Len(t, report.Findings, 1)
	assert.True(t, report.Findings[0].Passed)
	assert.Equal(t, 1, report.ChecksPassed)
}

func TestCheckIDsStable(t *testing.T) {
	// IDs are an external contract; tooling greps findings by them.
	want := []string{"V100", "V110", "V111", "V120", "V130", "V140", "V150"}
	checks := DefaultChecks()
	require.Len(t, checks, len(want))
	for i, c := range checks {
		assert.Equal(t, want[i], c.ID)
	}
}

func TestSeverityRoundTrip(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back Severity
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
}
