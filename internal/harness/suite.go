package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// ScenarioDirError is returned when a suite directory is missing or holds no
// scenario files.
type ScenarioDirError struct {
	Dir    string
	Reason string
}

// Error implements the error interface.
func (e *ScenarioDirError) Error() string {
	return fmt.Sprintf("scenario directory %s: %s", e.Dir, e.Reason)
}

// SuiteResult summarizes a directory of scenarios.
type SuiteResult struct {
	TotalScenarios int               `json:"total_scenarios"`
	Passed         int               `json:"passed"`
	Failed         int               `json:"failed"`
	Failures       []ScenarioFailure `json:"failures,omitempty"`
}

// ScenarioFailure represents a scenario that failed to load, run or pass.
type ScenarioFailure struct {
	ScenarioPath string `json:"scenario_path"`
	Error        string `json:"error"`
}

// FindScenarios returns the .yaml and .yml files directly under dir, sorted.
func FindScenarios(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &ScenarioDirError{Dir: dir, Reason: err.Error()}
	}
	if !info.IsDir() {
		return nil, &ScenarioDirError{Dir: dir, Reason: "not a directory"}
	}

	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, &ScenarioDirError{Dir: dir, Reason: "no scenario files"}
	}
	slices.Sort(paths)
	return paths, nil
}

// RunSuite loads and runs every scenario under dir.
//
// For each scenario file:
// 1. Load and validate it
// 2. Run it via Run
// 3. Collect the outcome
//
// The context is checked between scenarios.
func RunSuite(ctx context.Context, dir string, opts ...Option) (*SuiteResult, error) {
	paths, err := FindScenarios(dir)
	if err != nil {
		return nil, err
	}

	result := &SuiteResult{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.TotalScenarios++

		scenario, err := LoadScenario(path)
		if err != nil {
			result.fail(path, fmt.Sprintf("failed to load scenario: %v", err))
			continue
		}

		runResult, err := Run(scenario, opts...)
		if err != nil {
			result.fail(path, fmt.Sprintf("scenario execution failed: %v", err))
			continue
		}
		if !runResult.Pass {
			result.fail(path, fmt.Sprintf("scenario assertions failed: %v", runResult.Errors))
			continue
		}
		result.Passed++
	}
	return result, nil
}

func (r *SuiteResult) fail(path, msg string) {
	r.Failed++
	r.Failures = append(r.Failures, ScenarioFailure{ScenarioPath: path, Error: msg})
}
