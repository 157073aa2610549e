package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/shinji-kodama/shopify-heroku/internal/model"
)

// Runner executes external commands synchronously.
type Runner interface {
	// Output runs the command and captures stdout and stderr.
	// A non-zero exit status is returned as a *CommandError; the returned
	// CommandResult is populated in both cases.
	Output(ctx context.Context, name string, args ...string) (model.CommandResult, error)

	// Stream runs the command with the runner's stdio attached, so the
	// user sees the child's output as it happens. Nothing is captured.
	Stream(ctx context.Context, name string, args ...string) error

	// LookPath reports the absolute path of an executable on PATH.
	LookPath(name string) (string, error)
}

// CommandError describes a failed external command.
type CommandError struct {
	// Name is the executable that was run.
	Name string

	// Args are the arguments passed to the executable.
	Args []string

	// Result holds the exit code and any captured output.
	Result model.CommandResult

	// Err is the error returned by os/exec.
	Err error
}

// Error includes the redacted command line and, when captured, the trimmed
// stderr of the child so the message is useful on its own.
func (e *CommandError) Error() string {
	message := fmt.Sprintf("%s failed", RedactedCommandLine(e.Name, e.Args...))
	if stderr := strings.TrimSpace(e.Result.Stderr); stderr != "" {
		return fmt.Sprintf("%s: %s", message, stderr)
	}
	return fmt.Sprintf("%s: %v", message, e.Err)
}

// Unwrap returns the underlying os/exec error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandLine joins an executable and its arguments with spaces.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// assignment matches a KEY=VALUE argument such as the ones passed to
// `heroku config:set`.
var assignment = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=.+$`)

// RedactedCommandLine is CommandLine with the value of every KEY=VALUE
// argument replaced, so the result can be logged or shown in errors.
func RedactedCommandLine(name string, args ...string) string {
	shown := make([]string, len(args))
	for i, arg := range args {
		shown[i] = assignment.ReplaceAllString(arg, "$1=<redacted>")
	}
	return CommandLine(name, shown...)
}

// ExecRunner implements Runner with os/exec.
//
// The zero value streams to the process's own stdio and logs nothing.
type ExecRunner struct {
	// Stdin, Stdout and Stderr are used by Stream. Nil means the
	// corresponding os.Std* file.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger receives a debug record for every command started.
	Logger *slog.Logger
}

// NewExecRunner creates an ExecRunner attached to the process's stdio.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{Logger: logger}
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (model.CommandResult, error) {
	r.logStart("capture", name, args)

	// #nosec G204 -- the executable and arguments come from this program,
	// not from a shell string.
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := model.CommandResult{
		ExitCode: exitCode(cmd, err),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if err != nil {
		return result, &CommandError{Name: name, Args: args, Result: result, Err: err}
	}
	return result, nil
}

// Stream implements Runner.
func (r *ExecRunner) Stream(ctx context.Context, name string, args ...string) error {
	r.logStart("stream", name, args)

	// #nosec G204 -- see Output.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.stdin()
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	if err := cmd.Run(); err != nil {
		return &CommandError{
			Name:   name,
			Args:   args,
			Result: model.CommandResult{ExitCode: exitCode(cmd, err)},
			Err:    err,
		}
	}
	return nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *ExecRunner) logStart(mode, name string, args []string) {
	if r.Logger == nil {
		return
	}
	r.Logger.Debug("running command", "mode", mode, "cmd", RedactedCommandLine(name, args...))
}

func (r *ExecRunner) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return os.Stdin
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

// exitCode extracts the child's exit status. It returns -1 when the
// process never started (e.g., executable not found) or was killed.
func exitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}
