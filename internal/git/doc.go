// Package git provides the Git operations used by shopify-heroku.
//
// All Git operations are performed by invoking the git binary through
// runner.Runner, rather than using a Git library like go-git. This means:
//   - pushes use the user's credential helpers and SSH configuration
//   - `git push` progress is shown exactly as the user sees it in a terminal
//   - the `heroku` remote created by `heroku git:remote` is visible here
//
// The Manager struct provides methods for pushing and for the read-only
// repository queries that the doctor command reports on.
package git
