package model

import (
	"fmt"
	"strings"
)

// EnvironmentVariable is a single KEY=VALUE pair copied from the Shopify
// app environment into Heroku config vars.
type EnvironmentVariable struct {
	// Key is the variable name (e.g., "SHOPIFY_API_KEY").
	Key string

	// Value is everything after the first "=" of the source line.
	// It may itself contain "=" characters.
	Value string
}

// String renders the variable in the KEY=VALUE form accepted by
// `heroku config:set`.
func (v EnvironmentVariable) String() string {
	return v.Key + "=" + v.Value
}

// CommandResult holds the outcome of one external process invocation.
type CommandResult struct {
	// ExitCode is the child process exit status. -1 means the process
	// could not be started or was terminated by a signal.
	ExitCode int

	// Stdout is the captured standard output. Empty when output was streamed.
	Stdout string

	// Stderr is the captured standard error. Empty when output was streamed.
	Stderr string
}

// Lines splits captured stdout into lines, dropping blank ones.
// Surrounding whitespace (including a trailing "\r") is trimmed from each line.
func (r CommandResult) Lines() []string {
	var lines []string
	for _, line := range strings.Split(r.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ExitCode defines the process exit codes used by the CLI.
//
// Every failure maps to ExitGeneralError; the type exists so that errors
// can carry their code up to cli.Execute without string matching.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates the command failed.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// Commands return it from RunE so that cli.Execute can translate it into
// the process exit status and print the hint, if any.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Hint is an optional suggestion printed after the error
	// (e.g., "Make sure you are in a git repository").
	Hint string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// WithHint returns the error with Hint set. It mutates and returns the
// receiver so it can be chained onto a constructor.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
