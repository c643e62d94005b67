package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowHierarchyText(t *testing.T) {
	dir := writeModel(t, thermostatModel)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "thermostat (3 block(s), 2 wiring(s))")
	assert.Contains(t, output, "sequential")
	assert.Contains(t, output, "Sensor [h0.0]")
	assert.Contains(t, output, "Controller [h0.1]")
	assert.Contains(t, output, "Actuator [h0.2]")
}

func TestShowHierarchyJSON(t *testing.T) {
	dir := writeModel(t, thermostatModel)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	root, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "h0", root["id"])
	assert.Equal(t, "sequential", root["composition_type"])
	children, ok := root["children"].([]interface{})
	require.True(t, ok)
	assert.Len(t, children, 3)
}

func TestShowFromArchive(t *testing.T) {
	dir := writeModel(t, thermostatModel)
	dbPath := filepath.Join(t.TempDir(), "weft.db")

	// Archive the system first.
	compileBuf := &bytes.Buffer{}
	compileCmd := NewCompileCommand(&RootOptions{Format: "json"})
	compileCmd.SetOut(compileBuf)
	compileCmd.SetArgs([]string{dir, "--archive", dbPath})
	require.NoError(t, compileCmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(compileBuf.Bytes(), &resp))
	dataMap, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	hash, ok := dataMap["hash"].(string)
	require.True(t, ok)

	buf := &bytes.Buffer{}
	cmd := NewShowCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--archive", dbPath, "--hash", hash})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Sensor [h0.0]")
}

func TestShowUnknownHash(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "weft.db")

	// Create an empty archive.
	dir := writeModel(t, thermostatModel)
	compileCmd := NewCompileCommand(&RootOptions{Format: "text"})
	compileCmd.SetOut(&bytes.Buffer{})
	compileCmd.SetArgs([]string{dir, "--archive", dbPath})
	require.NoError(t, compileCmd.Execute())

	buf := &bytes.Buffer{}
	cmd := NewShowCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--archive", dbPath, "--hash", "deadbeef"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestShowMissingSource(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewShowCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
