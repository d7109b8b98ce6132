package harness

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/varq/pkg/dim"
	"github.com/roach88/varq/pkg/quantity"
)

// driftingFunction passes the empty-input self-test and then returns the
// wrong dimension for any real input.
type driftingFunction struct{}

func (driftingFunction) Call(factors []dim.Quantity) dim.Quantity {
	if len(factors) == 0 {
		return dim.New(1, dim.Resistance)
	}
	return dim.New(1, dim.Length)
}

func scenariosDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join("..", "..", "testdata", "scenarios")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skip("testdata/scenarios directory not found")
	}
	return dir
}

func TestRunScenarioFiles(t *testing.T) {
	scenarios, err := LoadScenarios(scenariosDir(t))
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Cases, len(s.Cases))
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	dir := scenariosDir(t)
	for _, name := range []string{"linear_speed", "clamped_remanence"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(filepath.Join(dir, name+".yaml"))
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestRunReportsFailingCases(t *testing.T) {
	s := mustParseScenario(t, `
name: wrong_expectations
description: "every case is wrong in a different way"
unit: m
quantity: 2 m
cases:
  - name: right
    inputs: []
    expect: 2 m
  - name: wrong value
    inputs: []
    expect: 3 m
  - name: wrong dimension
    inputs: []
    expect: 2 s
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Cases, 3)

	assert.True(t, result.Cases[0].Pass)
	assert.False(t, result.Cases[1].Pass)
	assert.Contains(t, result.Cases[1].Error, "expected 3 m")
	assert.False(t, result.Cases[2].Pass)
	assert.Contains(t, result.Cases[2].Error, "dimension mismatch")
	assert.Len(t, result.Errors, 2)
}

func TestRunTolerance(t *testing.T) {
	s := mustParseScenario(t, `
name: tolerance
description: "relative tolerance above one, absolute below"
unit: m
quantity: 1000 m
cases:
  - name: loose
    inputs: []
    expect: 1000.5 m
    tolerance: 1e-3
  - name: tight
    inputs: []
    expect: 1000.5 m
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Cases[0].Pass)
	assert.False(t, result.Cases[1].Pass)
}

func TestRunCaseContractViolation(t *testing.T) {
	v, err := quantity.DynamicFunction(dim.Resistance, driftingFunction{})
	require.NoError(t, err)

	var buf bytes.Buffer
	h := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	cr := h.runCase(v, Case{
		Name:   "drift",
		Inputs: []dim.Quantity{dim.New(300, dim.Temperature)},
		Expect: dim.New(1, dim.Resistance),
	})

	assert.False(t, cr.Pass)
	assert.Contains(t, cr.Error, "dimension")
	assert.Empty(t, cr.Got)
	assert.Contains(t, buf.String(), "contract violation")
}

func TestRunCaseOtherPanicsPropagate(t *testing.T) {
	v, err := quantity.DynamicFunction(dim.None, panickingFunction{})
	require.NoError(t, err)

	assert.PanicsWithValue(t, "boom", func() {
		New().runCase(v, Case{Name: "boom", Inputs: []dim.Quantity{dim.Scalar(1)}})
	})
}

type panickingFunction struct{}

func (panickingFunction) Call(factors []dim.Quantity) dim.Quantity {
	if len(factors) > 0 {
		panic("boom")
	}
	return dim.Scalar(0)
}

func TestRunModelReference(t *testing.T) {
	s, err := LoadScenario(filepath.Join(scenariosDir(t), "motor_winding.yaml"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(s.Model) || filepath.Base(s.Model) == "motor")

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunResolveErrors(t *testing.T) {
	dir := scenariosDir(t)
	modelDir := filepath.Join(dir, "..", "models", "motor")

	tests := []struct {
		name     string
		scenario *Scenario
		contains string
	}{
		{
			name: "unknown ref",
			scenario: &Scenario{
				Name: "x", Model: modelDir, Ref: "nope",
				Cases: []Case{{Name: "c"}},
			},
			contains: `no quantity "nope"`,
		},
		{
			name: "unit disagrees with model",
			scenario: &Scenario{
				Name: "x", Model: modelDir, Ref: "core_density", Unit: "m",
				Cases: []Case{{Name: "c"}},
			},
			contains: "dimension mismatch",
		},
		{
			name: "missing model",
			scenario: &Scenario{
				Name: "x", Model: "/nonexistent/model", Ref: "a",
				Cases: []Case{{Name: "c"}},
			},
			contains: "E005",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.scenario)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestRunInlineDecodeError(t *testing.T) {
	s := mustParseScenario(t, `
name: bad
description: "inline quantity of the wrong dimension"
unit: m
quantity: 2 s
cases:
  - name: never runs
    inputs: []
    expect: 2 m
`)
	_, err := Run(s)
	require.Error(t, err)
	assert.True(t, quantity.IsDimensionMismatch(err))
}

func TestWithin(t *testing.T) {
	assert.True(t, within(1, 1, 0))
	assert.True(t, within(1e-12, 0, 1e-9))
	assert.False(t, within(1e-6, 0, 1e-9))
	assert.True(t, within(1e6+1e-4, 1e6, 1e-9))
}

func mustParseScenario(t *testing.T, content string) *Scenario {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	s, err := LoadScenario(path)
	require.NoError(t, err)
	return s
}
