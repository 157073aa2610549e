// Package main is the entry point for the shopify-heroku CLI.
//
// This binary copies a Shopify app's credentials into a Heroku app and
// deploys the app to Heroku. It delegates all functionality to the
// internal/cli package, which defines cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process. During development, they default to "dev",
// "none", and "unknown" respectively.
package main

import (
	"github.com/shinji-kodama/shopify-heroku/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Execute logs any error and exits with the matching code.
	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
