// Package model defines the domain types and value objects for the
// shopify-heroku CLI.
//
// This package contains pure data structures with no external dependencies.
// EnvironmentVariable and CommandResult are transient values that live for
// a single command invocation; nothing is persisted.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries an exit code and an optional hint for the user.
package model
