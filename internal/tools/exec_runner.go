package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExecRunner runs external programs. err is reserved for processes that could
// not be run at all; a non-zero exit is reported through ExitCode.
type ExecRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (ExecResult, error)
}

type RealExecRunner struct{}

func (r RealExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (ExecResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = -1
	return result, fmt.Errorf("command failed: %s %s: %w", name, strings.Join(args, " "), err)
}

type ExecCall struct {
	Dir  string
	Name string
	Args []string
}

func (c ExecCall) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// FakeExecRunner records calls and answers them through Handler, or with a
// successful empty result when Handler is nil.
type FakeExecRunner struct {
	Handler func(call ExecCall) (ExecResult, error)

	mu    sync.Mutex
	calls []ExecCall
}

func (f *FakeExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (ExecResult, error) {
	call := ExecCall{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ExecResult{ExitCode: -1}, err
	}
	if f.Handler == nil {
		return ExecResult{Stdout: "mock command output"}, nil
	}
	return f.Handler(call)
}

func (f *FakeExecRunner) Calls() []ExecCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ExecCall(nil), f.calls...)
}

// Commands returns each recorded call as a single "name args" line.
func (f *FakeExecRunner) Commands() []string {
	calls := f.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.String())
	}
	return out
}
