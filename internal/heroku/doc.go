// Package heroku wraps the Heroku CLI subcommands used by shopify-heroku
// and resolves the public URL of a Heroku app.
//
// Subcommands used:
//   - heroku info --app <app>             (Web URL discovery)
//   - heroku config:set KEY=VALUE --app <app>
//   - heroku stack:set <stack> --app <app>
//   - heroku git:remote -a <app>
//
// The Heroku CLI is treated as an opaque collaborator: the contract is its
// text output and exit status, never the Platform API.
package heroku
