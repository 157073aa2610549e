// Package cli implements the cobra-based CLI commands for shopify-heroku.
//
// Each subcommand (set-env, deploy, doctor) is defined in its own file
// within this package. This file defines the root command, the global flags
// and the app value that carries configuration, the logger and the
// external-CLI clients into every subcommand.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/shopify-heroku/internal/config"
	"github.com/shinji-kodama/shopify-heroku/internal/docker"
	"github.com/shinji-kodama/shopify-heroku/internal/git"
	"github.com/shinji-kodama/shopify-heroku/internal/heroku"
	"github.com/shinji-kodama/shopify-heroku/internal/logger"
	"github.com/shinji-kodama/shopify-heroku/internal/model"
	"github.com/shinji-kodama/shopify-heroku/internal/runner"
	"github.com/shinji-kodama/shopify-heroku/internal/shopify"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// globalOptions holds the values of the root command's persistent flags.
type globalOptions struct {
	configPath string
	verbose    bool
	noColor    bool
}

// dockerChecker is the part of docker.Client used by doctor.
type dockerChecker interface {
	Host() string
	Ping(ctx context.Context) (string, error)
	Close() error
}

// dependencies are the process-level collaborators of the CLI.
// NewRootCommand uses the real ones; tests substitute fakes.
type dependencies struct {
	// runner executes external commands. Nil means an ExecRunner bound
	// to the process stdio.
	runner runner.Runner

	// prober checks constructed app URLs. Nil means an HTTPProber.
	prober heroku.Prober

	// dockerClient connects to the Docker daemon.
	dockerClient func() (dockerChecker, error)

	// workDir returns the directory holding heroku.yml.
	workDir func() (string, error)

	// stderr receives all diagnostics.
	stderr io.Writer
}

func defaultDependencies() dependencies {
	return dependencies{
		dockerClient: func() (dockerChecker, error) {
			c, err := docker.NewClient()
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		workDir: os.Getwd,
		stderr:  os.Stderr,
	}
}

// app is shared by all subcommands. Its fields are filled in by the root
// command's PersistentPreRunE, after flags are parsed.
type app struct {
	opts globalOptions
	deps dependencies

	cfg     *config.Config
	log     *slog.Logger
	runner  runner.Runner
	prober  heroku.Prober
	shopify *shopify.Client
	heroku  *heroku.Client
	git     *git.Manager
}

// setup loads the configuration and builds the clients.
func (a *app) setup() error {
	a.log = logger.New(a.deps.stderr, logger.Options{
		Verbose: a.opts.verbose,
		NoColor: a.opts.noColor,
	})

	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}
	a.cfg = cfg
	if a.opts.configPath != "" {
		a.log.Debug("loaded configuration", "path", a.opts.configPath)
	}

	a.runner = a.deps.runner
	if a.runner == nil {
		a.runner = runner.NewExecRunner(a.log)
	}
	a.prober = a.deps.prober
	if a.prober == nil {
		a.prober = heroku.NewHTTPProber(cfg.ProbeTimeout.Std())
	}

	a.shopify = shopify.NewClient(a.runner, cfg.ShopifyBin)
	a.heroku = heroku.NewClient(a.runner, cfg.HerokuBin)
	a.git = git.NewManager(a.runner, cfg.GitBin)
	return nil
}

// NewRootCommand creates and configures the root cobra command with all
// subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultDependencies())
}

func newRootCommand(deps dependencies) *cobra.Command {
	a := &app{deps: deps}

	rootCmd := &cobra.Command{
		Use:   "shopify-heroku",
		Short: "CLI tool for Shopify and Heroku integration",
		Long: `shopify-heroku copies a Shopify app's API credentials into a Heroku app's
config vars and deploys the app to Heroku's container stack.

It drives the Shopify CLI, the Heroku CLI and git; all three must be
installed and logged in.`,

		// Errors are printed by Execute through the colored logger.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.SetErr(deps.stderr)

	rootCmd.PersistentFlags().StringVar(&a.opts.configPath, "config", "", "Path to a YAML or JSONC configuration file")
	rootCmd.PersistentFlags().BoolVarP(&a.opts.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&a.opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewSetEnvCommand(a))
	rootCmd.AddCommand(NewDeployCommand(a))
	rootCmd.AddCommand(NewDoctorCommand(a))

	return rootCmd
}

// Execute runs the root command and exits the process with the resulting
// exit code. This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	os.Exit(int(execute(rootCmd, os.Stderr)))
}

// execute runs rootCmd and maps its outcome to an exit code. Errors and
// panics escaping a command are logged to stderr in full.
func execute(rootCmd *cobra.Command, stderr io.Writer) (code model.ExitCode) {
	// The logger is built after Execute so --no-color has been parsed.
	newLog := func() *slog.Logger {
		noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
		return logger.New(stderr, logger.Options{NoColor: noColor})
	}

	defer func() {
		if r := recover(); r != nil {
			newLog().Error("unexpected error", "panic", r, "stack", string(debug.Stack()))
			code = model.ExitGeneralError
		}
	}()

	err := rootCmd.Execute()
	if err == nil {
		return model.ExitSuccess
	}
	log := newLog()

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(log, cliErr)
		if cliErr.Code == model.ExitSuccess {
			return model.ExitGeneralError
		}
		return cliErr.Code
	}

	// Generic error (e.g., wrong number of arguments) exits with code 1.
	log.Error(err.Error())
	return model.ExitGeneralError
}

// printError logs a CLIError and its hint.
func printError(log *slog.Logger, err *model.CLIError) {
	if err.Err != nil {
		log.Error(err.Message, "error", err.Err)
	} else {
		log.Error(err.Message)
	}
	if err.Hint != "" {
		log.Warn(err.Hint)
	}
}

// appNameArgs requires exactly one non-empty Heroku app name.
func appNameArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if args[0] == "" {
		return errors.New("heroku app name must not be empty")
	}
	return nil
}
