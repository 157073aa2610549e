// Package runnertest provides a recording runner.Runner for tests.
package runnertest

import (
	"context"
	"errors"
	"fmt"

	"github.com/shinji-kodama/shopify-heroku/internal/model"
	"github.com/shinji-kodama/shopify-heroku/internal/runner"
)

// Call records one invocation made through the fake.
type Call struct {
	// Mode is "output" or "stream".
	Mode string
	Name string
	Args []string
}

// String returns the command line of the call.
func (c Call) String() string {
	return runner.CommandLine(c.Name, c.Args...)
}

// Response is the scripted outcome of a command.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Fake is a runner.Runner that returns scripted responses keyed by the full
// command line. Commands without a scripted response succeed with empty
// output. Executables are found by LookPath unless listed in Missing.
type Fake struct {
	Calls     []Call
	responses map[string]Response
	missing   map[string]bool
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{
		responses: make(map[string]Response),
		missing:   make(map[string]bool),
	}
}

// On scripts the response for a command line such as "heroku info --app demo".
func (f *Fake) On(commandLine string, resp Response) *Fake {
	f.responses[commandLine] = resp
	return f
}

// OnOutput scripts a successful command producing stdout.
func (f *Fake) OnOutput(commandLine, stdout string) *Fake {
	return f.On(commandLine, Response{Stdout: stdout})
}

// Fail scripts a command that exits with status 1 and the given stderr.
func (f *Fake) Fail(commandLine, stderr string) *Fake {
	return f.On(commandLine, Response{Stderr: stderr, ExitCode: 1})
}

// Missing makes LookPath fail for the named executable.
func (f *Fake) Missing(name string) *Fake {
	f.missing[name] = true
	return f
}

// CommandLines returns the command line of every recorded call, in order.
func (f *Fake) CommandLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.String())
	}
	return lines
}

// Called reports whether the command line was run at least once.
func (f *Fake) Called(commandLine string) bool {
	for _, c := range f.Calls {
		if c.String() == commandLine {
			return true
		}
	}
	return false
}

// Output implements runner.Runner.
func (f *Fake) Output(_ context.Context, name string, args ...string) (model.CommandResult, error) {
	resp := f.record("output", name, args)
	result := model.CommandResult{ExitCode: resp.ExitCode, Stdout: resp.Stdout, Stderr: resp.Stderr}
	return result, f.errorFor(name, args, result)
}

// Stream implements runner.Runner. Scripted output is discarded.
func (f *Fake) Stream(_ context.Context, name string, args ...string) error {
	resp := f.record("stream", name, args)
	return f.errorFor(name, args, model.CommandResult{ExitCode: resp.ExitCode})
}

// LookPath implements runner.Runner.
func (f *Fake) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/local/bin/" + name, nil
}

func (f *Fake) record(mode, name string, args []string) Response {
	call := Call{Mode: mode, Name: name, Args: append([]string(nil), args...)}
	f.Calls = append(f.Calls, call)
	return f.responses[call.String()]
}

func (f *Fake) errorFor(name string, args []string, result model.CommandResult) error {
	if result.ExitCode == 0 {
		return nil
	}
	return &runner.CommandError{
		Name:   name,
		Args:   args,
		Result: result,
		Err:    errors.New("exit status " + fmt.Sprint(result.ExitCode)),
	}
}
