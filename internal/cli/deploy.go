// deploy.go implements the "shopify-heroku deploy" command.
//
// deploy prepares the Heroku app for container builds and pushes the
// current repository to it. Preparation steps are best effort; only the
// push decides the exit code.

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/shopify-heroku/internal/model"
)

// deployHint is printed when no branch could be pushed.
const deployHint = "Make sure you are in a git repository and have committed your changes."

// NewDeployCommand creates the "deploy" cobra command.
func NewDeployCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <heroku-app-name>",
		Short: "Deploy Shopify app to Heroku",
		Long: `Deploy the Shopify app in the current git repository to Heroku.

The command sets the app's stack to "container", registers the "heroku"
git remote and pushes the main branch. When pushing main fails, master is
pushed instead. git's own progress output is shown as it happens.

Examples:
  shopify-heroku deploy my-shopify-app`,

		Args: appNameArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDeploy(cmd.Context(), args[0])
		},
	}
}

// runDeploy is the main logic function for the deploy command.
func (a *app) runDeploy(ctx context.Context, herokuApp string) error {
	a.log.Info("Deploying Shopify app to Heroku", "app", herokuApp)

	// Step 1: Switch to the container stack. This fails when the stack is
	// already set, so the error is only a warning.
	a.log.Info("Setting Heroku stack", "app", herokuApp, "stack", a.cfg.Stack)
	if err := a.heroku.StackSet(ctx, herokuApp, a.cfg.Stack); err != nil {
		a.log.Warn("Failed to set Heroku stack, it might be already set", "stack", a.cfg.Stack, "error", err)
	} else {
		a.log.Info("Heroku stack set", "stack", a.cfg.Stack)
	}

	// Step 2: Register the git remote. A remote left over from an earlier
	// deploy still works, so failure is a warning too.
	a.log.Info("Setting up Heroku remote", "app", herokuApp)
	if err := a.heroku.GitRemote(ctx, herokuApp, a.cfg.Remote); err != nil {
		a.log.Warn("Could not set Heroku remote", "error", err)
		a.log.Warn("Continuing with deployment anyway...")
	} else {
		a.log.Info("Heroku remote set", "remote", a.cfg.Remote)
	}

	// Step 3: Push, falling back through the configured branches.
	a.log.Info("Deploying", "app", herokuApp)
	branch, err := a.pushFirstBranch(ctx)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "Deployment failed", err).
			WithHint(deployHint)
	}

	a.log.Info("Successfully deployed", "app", herokuApp, "branch", branch)
	return nil
}

// pushFirstBranch pushes cfg.Branches in order and returns the first branch
// that was pushed. With the default branches this is one retry: main, then
// master. The error of the last attempt is returned when all fail.
func (a *app) pushFirstBranch(ctx context.Context) (string, error) {
	var lastErr error
	for i, branch := range a.cfg.Branches {
		if i > 0 {
			a.log.Warn("Deployment failed with "+a.cfg.Branches[i-1]+" branch, trying "+branch+" branch...",
				"error", lastErr)
		}
		a.log.Debug("Pushing", "remote", a.cfg.Remote, "branch", branch)

		if err := a.git.Push(ctx, a.cfg.Remote, branch); err != nil {
			lastErr = err
			continue
		}
		return branch, nil
	}
	return "", lastErr
}
