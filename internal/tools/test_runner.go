package tools

import (
	"context"
	"fmt"
	"strings"
)

type TestKind string

const (
	TestKindPlaywright TestKind = "playwright"
	TestKindPytest     TestKind = "pytest"
)

// TestRunResult mirrors the subprocess outcome.
type TestRunResult struct {
	ReturnCode int    `json:"returncode"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
}

type TestRunner struct {
	runner ExecRunner
}

func NewTestRunner(runner ExecRunner) *TestRunner {
	if runner == nil {
		runner = RealExecRunner{}
	}
	return &TestRunner{runner: runner}
}

// ParseTestKind accepts the kind names plus the generation languages that map
// onto them.
func ParseTestKind(s string) (TestKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "playwright", "ts", "js", "typescript", "javascript":
		return TestKindPlaywright, nil
	case "pytest", "python", "py":
		return TestKindPytest, nil
	}
	return "", fmt.Errorf("unsupported test kind %q (supported: playwright, pytest)", s)
}

// Run executes the suite of the given kind. A process that cannot be started
// is reported as return code -1 with the error in Stderr.
func (r *TestRunner) Run(ctx context.Context, kind TestKind, cwd string) TestRunResult {
	var name string
	var args []string
	switch kind {
	case TestKindPytest:
		name, args = "python", []string{"-m", "pytest", "-q"}
		if cwd == "" {
			cwd = "python_tests"
		}
	default:
		name, args = "npx", []string{"playwright", "test"}
		if cwd == "" {
			cwd = "tests"
		}
	}

	res, err := r.runner.Run(ctx, cwd, name, args...)
	if err != nil {
		return TestRunResult{ReturnCode: -1, Stdout: res.Stdout, Stderr: err.Error()}
	}
	return TestRunResult{ReturnCode: res.ExitCode, Stdout: res.Stdout, Stderr: res.Stderr}
}
