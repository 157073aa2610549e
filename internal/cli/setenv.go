// setenv.go implements the "shopify-heroku set-env" command.
//
// set-env reads the Shopify app environment with `shopify app env show`,
// keeps the API credentials, adds the app's public URL and writes each
// variable to the Heroku app with `heroku config:set`.

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/shopify-heroku/internal/envvars"
	"github.com/shinji-kodama/shopify-heroku/internal/heroku"
	"github.com/shinji-kodama/shopify-heroku/internal/model"
)

// NewSetEnvCommand creates the "set-env" cobra command.
func NewSetEnvCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-env <heroku-app-name>",
		Short: "Set Shopify environment variables to Heroku",
		Long: `Copy SHOPIFY_API_KEY and SHOPIFY_API_SECRET from the Shopify app in the
current directory into the Heroku app's config vars, together with
SHOPIFY_APP_URL set to the Heroku app's public URL.

The URL is read from "heroku info". If that is not possible (for example
when the account lacks access to app info), https://<app>.herokuapp.com is
used instead.

Examples:
  shopify-heroku set-env my-shopify-app
  shopify-heroku set-env --config shopify-heroku.yaml my-shopify-app`,

		Args: appNameArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSetEnv(cmd.Context(), args[0])
		},
	}
}

// runSetEnv is the main logic function for the set-env command.
// Each config:set runs on its own; a failure stops the command without
// undoing variables that were already set.
func (a *app) runSetEnv(ctx context.Context, herokuApp string) error {
	a.log.Info("Setting Shopify environment variables", "app", herokuApp)

	// Step 1: Fetch the Shopify environment into memory.
	a.log.Info("Fetching environment variables from Shopify...")
	lines, err := a.shopify.EnvShow(ctx)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			"Failed to fetch Shopify environment variables", err)
	}

	// Step 2: Keep only the required keys.
	a.log.Debug("Filtering required variables", "keys", a.cfg.RequiredKeys)
	filtered, err := envvars.Select(lines, a.cfg.RequiredKeys)
	if err != nil {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("No %s found in Shopify environment variables",
				strings.Join(a.cfg.RequiredKeys, " or ")))
	}

	// Step 3: Resolve the public URL and add it to the list.
	appURL := a.resolveAppURL(ctx, herokuApp)
	filtered = append(filtered, a.cfg.AppURLKey+"="+appURL)

	// Step 4: Push every variable to Heroku, one config:set per variable.
	a.log.Info("Pushing environment variables to Heroku...")
	for _, v := range envvars.Parse(filtered) {
		a.log.Info("Setting " + v.Key + "...")
		if err := a.heroku.ConfigSet(ctx, herokuApp, v); err != nil {
			return model.WrapCLIError(model.ExitGeneralError,
				"Error setting environment variables to Heroku", err)
		}
	}

	a.log.Info("Environment variables successfully set", "app", herokuApp)
	return nil
}

// resolveAppURL reports how the URL was found. Every failure on this path
// is a warning.
func (a *app) resolveAppURL(ctx context.Context, herokuApp string) string {
	a.log.Info("Getting Web URL for Heroku app", "app", herokuApp)

	resolved := a.heroku.ResolveAppURL(ctx, herokuApp, a.cfg.AppDomain, a.prober)
	if resolved.Source == heroku.SourceInfo {
		a.log.Info("Found Heroku Web URL", "url", resolved.URL)
		return resolved.URL
	}

	a.log.Warn("Could not fetch Heroku app URL directly, constructing URL...", "error", resolved.LookupErr)
	a.log.Info("Using constructed Heroku URL", "url", resolved.URL)
	switch {
	case resolved.Verified():
		a.log.Info("Verified URL is accessible", "url", resolved.URL)
	case resolved.Probed:
		a.log.Warn("Could not verify URL accessibility, proceeding anyway", "error", resolved.ProbeErr)
	}
	return resolved.URL
}
