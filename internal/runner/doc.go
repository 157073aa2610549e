// Package runner is the single place where shopify-heroku starts child
// processes.
//
// Every interaction with the Shopify CLI, the Heroku CLI and git goes
// through the Runner interface. Output captures stdout/stderr for parsing;
// Stream attaches the child to the terminal so native progress output (for
// example `git push`) is shown live. Callers in other packages depend on the
// interface so tests can substitute a recording fake.
package runner
