// Package shopify wraps the Shopify CLI.
//
// Only `shopify app env show` is used. The command prints the app's
// environment as KEY=VALUE lines, which envvars filters and parses.
package shopify

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/shopify-heroku/internal/runner"
)

// DefaultBinary is the Shopify CLI executable name.
const DefaultBinary = "shopify"

// Client runs Shopify CLI subcommands through a runner.Runner.
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

// EnvShow runs `shopify app env show` and returns its non-blank output
// lines. Must be run from inside the Shopify app directory.
func (c *Client) EnvShow(ctx context.Context) ([]string, error) {
	result, err := c.runner.Output(ctx, c.binary, "app", "env", "show")
	if err != nil {
		return nil, fmt.Errorf("shopify app env show: %w", err)
	}
	return result.Lines(), nil
}
