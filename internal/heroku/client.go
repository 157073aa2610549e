package heroku

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/shopify-heroku/internal/model"
	"github.com/shinji-kodama/shopify-heroku/internal/runner"
)

const (
	// DefaultBinary is the Heroku CLI executable name.
	DefaultBinary = "heroku"

	// ContainerStack is the stack that builds the app from heroku.yml.
	ContainerStack = "container"
)

// Client runs Heroku CLI subcommands through a runner.Runner.
type Client struct {
	runner runner.Runner
	binary string
}

// NewClient creates a Client. An empty binary means DefaultBinary.
func NewClient(r runner.Runner, binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{runner: r, binary: binary}
}

// Info returns the raw output of `heroku info --app <app>`.
func (c *Client) Info(ctx context.Context, app string) (string, error) {
	result, err := c.runner.Output(ctx, c.binary, "info", "--app", app)
	if err != nil {
		return "", err
	}
	return result.Stdout, nil
}

// WebURL returns the "Web URL:" reported by `heroku info`.
// It returns ErrWebURLNotFound when the command succeeds but the label is
// missing from its output.
func (c *Client) WebURL(ctx context.Context, app string) (string, error) {
	info, err := c.Info(ctx, app)
	if err != nil {
		return "", err
	}
	return ParseWebURL(info)
}

// ConfigSet sets one config var with `heroku config:set KEY=VALUE --app <app>`.
func (c *Client) ConfigSet(ctx context.Context, app string, v model.EnvironmentVariable) error {
	if _, err := c.runner.Output(ctx, c.binary, "config:set", v.String(), "--app", app); err != nil {
		return fmt.Errorf("set %s: %w", v.Key, err)
	}
	return nil
}

// StackSet switches the app stack, e.g. to ContainerStack.
func (c *Client) StackSet(ctx context.Context, app, stack string) error {
	_, err := c.runner.Output(ctx, c.binary, "stack:set", stack, "--app", app)
	return err
}

// DefaultGitRemote is the remote name `heroku git:remote` creates when
// none is given.
const DefaultGitRemote = "heroku"

// GitRemote registers the app's git remote in the current repository
// with `heroku git:remote -a <app>`. A remote other than
// DefaultGitRemote is passed with -r.
func (c *Client) GitRemote(ctx context.Context, app, remote string) error {
	args := []string{"git:remote", "-a", app}
	if remote != "" && remote != DefaultGitRemote {
		args = append(args, "-r", remote)
	}
	_, err := c.runner.Output(ctx, c.binary, args...)
	return err
}
