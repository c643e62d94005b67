package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/weftlab/weft/internal/ir"
	"github.com/weftlab/weft/internal/store"
)

func TestVerifySoundModel(t *testing.T) {
	dir := writeModel(t, thermostatModel)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ thermostat is sound")
	assert.Contains(t, output, "0 error(s)")
}

func TestVerifyContradictionFails(t *testing.T) {
	dir := writeModel(t, servoModel)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "✗ servo has wiring problems")
	assert.Contains(t, output, "V120")
}

func TestVerifyParallelMatchesSequential(t *testing.T) {
	dir := writeModel(t, servoModel)

	seqBuf := &bytes.Buffer{}
	seqCmd := NewVerifyCommand(&RootOptions{Format: "text"})
	seqCmd.SetOut(seqBuf)
	seqCmd.SetArgs([]string{dir})
	seqErr := seqCmd.Execute()

	parBuf := &bytes.Buffer{}
	parCmd := NewVerifyCommand(&RootOptions{Format: "text"})
	parCmd.SetOut(parBuf)
	parCmd.SetArgs([]string{dir, "--parallel"})
	parErr := parCmd.Execute()

	require.Error(t, seqErr)
	require.Error(t, parErr)
	assert.Equal(t, seqBuf.String(), parBuf.String())
}

func TestVerifyJSONOutput(t *testing.T) {
	dir := writeModel(t, thermostatModel)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	dataMap, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, dataMap["hash"])
	report, ok := dataMap["report"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, report["findings"])
}

func TestVerifyYAMLOutput(t *testing.T) {
	dir := writeModel(t, thermostatModel)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "yaml"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestVerifyArchivesReport(t *testing.T) {
	dir := writeModel(t, servoModel)
	dbPath := filepath.Join(t.TempDir(), "weft.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir, "--archive", dbPath})

	// Verification still fails; the report is archived regardless.
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	system, _, err := compileModel(dir)
	require.NoError(t, err)
	hash, err := ir.SystemHash(system)
	require.NoError(t, err)

	reports, err := st.ListReports(context.Background(), hash)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Greater(t, reports[0].Report.Errors, 0)
}

func TestVerifyBadModelIsCommandError(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/directory/path"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
