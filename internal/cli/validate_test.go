package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out, diag := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(diag)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeModel(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.cue"), []byte(content), 0o644))
	return dir
}

func TestValidateMotor(t *testing.T) {
	out, err := runCommand(t, "validate", motorDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 4 quantities valid")
}

func TestValidateMotorJSON(t *testing.T) {
	out, err := runCommand(t, "--format", "json", "validate", motorDir)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	require.Len(t, resp.Data.Quantities, 4)

	byName := map[string]QuantitySummary{}
	for _, q := range resp.Data.Quantities {
		byName[q.Name] = q
	}
	assert.Equal(t, "constant", byName["core_density"].Kind)
	assert.Equal(t, "function", byName["winding_resistance"].Kind)
	assert.Equal(t, "FirstOrderTaylor", byName["winding_resistance"].Tag)
	assert.Equal(t, "Clamped", byName["remanence"].Tag)
	assert.Equal(t, "kg*m^2/s^3/A^2", byName["winding_resistance"].Dim)
}

func TestValidateNonExistentDirectory(t *testing.T) {
	out, err := runCommand(t, "validate", "/nonexistent/directory/path")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E005")
	assert.Contains(t, out, "not found")
}

func TestValidateEmptyDirectory(t *testing.T) {
	_, err := runCommand(t, "validate", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E003")
}

func TestValidateReportsEveryError(t *testing.T) {
	dir := writeModel(t, `package m

quantities: {
	a: {unit: "m", value: "2 s"}
	b: {unit: "furlong", value: 1}
	c: {unit: "m", value: "1 m"}
}
`)
	out, err := runCommand(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "E204: a.value")
	assert.Contains(t, out, "E202: b.unit")
	assert.Contains(t, err.Error(), "2 error(s)")
}

func TestValidateErrorsJSON(t *testing.T) {
	dir := writeModel(t, `package m

quantities: a: {unit: "m", value: Spline: {}}
`)
	out, err := runCommand(t, "--format", "json", "validate", dir)
	require.Error(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, "E204", resp.Data.Errors[0].Code)
	assert.Equal(t, "a", resp.Data.Errors[0].Quantity)
	assert.Equal(t, 3, resp.Data.Errors[0].Line)
	assert.Contains(t, resp.Data.Errors[0].Message, "Spline")
}
