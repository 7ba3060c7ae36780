package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_Golden(t *testing.T) {
	paths, err := FindScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Trace, len(scenario.Steps))
		})
	}
}

func TestRun_ReportsFailedExpectation(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: wrong_expectation
description: "capacity is deliberately mis-stated"
literals:
  - name: s
    char: byte
    text: "abc"
steps:
  - op: capacity
    target: s
    expect: 3
  - op: at
    target: s
    index: 1
    expect_error: OUT_OF_RANGE
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Expected: 3")
	assert.Contains(t, result.Errors[0], "Actual: 4")
	assert.Contains(t, result.Errors[1], "error OUT_OF_RANGE")
	assert.Contains(t, result.Errors[1], "no error")
}

func TestRun_ReportsFailedAssertion(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: wrong_assertion
description: "two different strings are not equivalent"
literals:
  - name: a
    char: byte
    text: "a"
  - name: b
    char: byte
    text: "b"
assertions:
  - type: equivalent
    literals: [a, b]
  - type: registry_count
    count: 1
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 2)
}

func TestRun_OperandKindMismatch(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: mismatch
description: "concat of a narrow and a wide string cannot run"
literals:
  - name: a
    char: byte
    text: "a"
  - name: w
    char: rune
    text: "w"
steps:
  - op: concat
    target: a
    other: w
`))
	require.NoError(t, err)

	_, err = Run(scenario)
	assert.Error(t, err)
}

func TestRun_ExplicitCapacity(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: explicit
description: "explicit capacities widen and overflow"
literals:
  - name: p
    char: char32
    text: "abc"
    capacity: 64
steps:
  - op: capacity
    target: p
    expect: 64
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)

	scenario.Literals[0].Capacity = 2
	_, err = Run(scenario)
	assert.Error(t, err)
}

func TestParseScenario_SchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty document", ``},
		{"missing description", `
name: x
literals:
  - name: a
    undefined: true
`},
		{"no literals", `
name: x
description: "d"
literals: []
`},
		{"unknown op", `
name: x
description: "d"
literals:
  - name: a
    undefined: true
steps:
  - op: explode
    target: a
`},
		{"unknown field", `
name: x
description: "d"
literals:
  - name: a
    undefined: true
    colour: red
`},
		{"bad char kind", `
name: x
description: "d"
literals:
  - name: a
    char: wchar
    text: "a"
`},
		{"negative capacity", `
name: x
description: "d"
literals:
  - name: a
    char: byte
    text: "a"
    capacity: -2
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			var se *SchemaError
			assert.ErrorAs(t, err, &se)
		})
	}
}

func TestParseScenario_ValidationRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"two forms", `
name: x
description: "d"
literals:
  - name: a
    undefined: true
    char: byte
    text: "a"
`, "exactly one of"},
		{"char without text", `
name: x
description: "d"
literals:
  - name: a
    char: byte
`, "text is required"},
		{"duplicate name", `
name: x
description: "d"
literals:
  - name: a
    undefined: true
  - name: a
    undefined: true
`, "duplicate name"},
		{"unbound target", `
name: x
description: "d"
literals:
  - name: a
    undefined: true
steps:
  - op: size
    target: b
`, "not bound"},
		{"missing other", `
name: x
description: "d"
literals:
  - name: a
    undefined: true
steps:
  - op: equal
    target: a
`, "requires other"},
		{"into binds later operands", `
name: x
description: "d"
literals:
  - name: a
    char: byte
    text: "a"
steps:
  - op: size
    target: aa
  - op: concat
    target: a
    other: a
    into: aa
`, "not bound"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunSuite(t *testing.T) {
	result, err := RunSuite(context.Background(), "testdata/scenarios")
	require.NoError(t, err)
	assert.Equal(t, result.TotalScenarios, result.Passed)
	assert.Zero(t, result.Failed)
}

func TestRunSuite_CollectsFailures(t *testing.T) {
	dir := t.TempDir()
	good, err := os.ReadFile("testdata/scenarios/fixed_string.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_good.yaml"), good, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_bad.yml"), []byte("name: [\n"), 0o644))

	result, err := RunSuite(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalScenarios)
	assert.Equal(t, 1, result.Passed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, filepath.Join(dir, "b_bad.yml"), result.Failures[0].ScenarioPath)
}

func TestFindScenarios_Errors(t *testing.T) {
	_, err := FindScenarios(filepath.Join(t.TempDir(), "missing"))
	var de *ScenarioDirError
	assert.ErrorAs(t, err, &de)

	_, err = FindScenarios(t.TempDir())
	assert.ErrorAs(t, err, &de)
}

func TestEval(t *testing.T) {
	text := "hello"
	s, err := BuildLiteral(LiteralDecl{Name: "s", Char: "byte", Text: &text})
	require.NoError(t, err)

	needle := "l"
	ev, produced, err := Eval(Step{Op: OpRFind, Target: "s", Text: &needle}, s, nil)
	require.NoError(t, err)
	assert.Nil(t, produced)
	assert.Equal(t, 3, ev.Result)

	ev, produced, err = Eval(Step{Op: OpConcat, Target: "s", Other: "s"}, s, s)
	require.NoError(t, err)
	require.NotNil(t, produced)
	assert.Equal(t, "hellohello", ev.Result)
	assert.Equal(t, 16, ev.Capacity)

	ev, _, err = Eval(Step{Op: OpAt, Target: "s", Index: 9}, s, nil)
	require.NoError(t, err)
	assert.Equal(t, "OUT_OF_RANGE", ev.Error)
	assert.Nil(t, ev.Result)

	_, _, err = Eval(Step{Op: OpEqual, Target: "s"}, s, nil)
	assert.Error(t, err)
}
