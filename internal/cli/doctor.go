// doctor.go implements the "shopify-heroku doctor" command.
//
// doctor inspects the local environment without changing anything: the
// three CLIs on PATH, the git repository the deploy would push, heroku.yml
// for the container stack, and the Docker daemon.

package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/shopify-heroku/internal/manifest"
	"github.com/shinji-kodama/shopify-heroku/internal/model"
)

// checkStatus is the outcome of one doctor check.
type checkStatus string

const (
	checkOK   checkStatus = "ok"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult is one line of the doctor report.
type checkResult struct {
	Name   string
	Status checkStatus
	Detail string
}

// NewDoctorCommand creates the "doctor" cobra command.
func NewDoctorCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the environment is ready for set-env and deploy",
		Long: `Check the local environment before running set-env or deploy.

Required checks (exit code 1 when any fails):
  - shopify, heroku and git are installed
  - the current directory is inside a git work tree
  - heroku.yml exists and references existing Dockerfiles

Advisory checks (reported as warnings):
  - the current branch is one that deploy pushes
  - the heroku git remote is configured
  - a Docker daemon is reachable for local image builds`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context())
		},
	}
}

// runDoctor runs every check, logs the report and fails when a required
// check failed.
func (a *app) runDoctor(ctx context.Context) error {
	results := a.doctorChecks(ctx)

	failed := 0
	for _, r := range results {
		switch r.Status {
		case checkOK:
			a.log.Info(r.Name, "status", r.Status, "detail", r.Detail)
		case checkWarn:
			a.log.Warn(r.Name, "status", r.Status, "detail", r.Detail)
		case checkFail:
			failed++
			a.log.Error(r.Name, "status", r.Status, "detail", r.Detail)
		}
	}

	if failed > 0 {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%d required check(s) failed", failed))
	}
	a.log.Info("All required checks passed")
	return nil
}

// doctorChecks runs the checks in report order.
func (a *app) doctorChecks(ctx context.Context) []checkResult {
	var results []checkResult

	for _, bin := range []string{a.cfg.ShopifyBin, a.cfg.HerokuBin} {
		results = append(results, a.checkBinary(bin))
	}
	gitBinary := a.checkBinary(a.cfg.GitBin)
	results = append(results, gitBinary)

	// The repository checks need git itself; its failure is already reported.
	switch {
	case gitBinary.Status != checkOK:
		a.log.Debug("skipping git repository checks", "git", a.cfg.GitBin)
	case a.git.IsInsideWorkTree(ctx):
		results = append(results, checkResult{Name: "git work tree", Status: checkOK, Detail: "inside a git repository"})
		results = append(results, a.checkBranch(ctx), a.checkRemote(ctx))
	default:
		results = append(results, checkResult{Name: "git work tree", Status: checkFail, Detail: "not inside a git repository"})
	}

	results = append(results, a.checkManifest(), a.checkDocker(ctx))
	return results
}

func (a *app) checkBinary(bin string) checkResult {
	name := bin + " binary"
	path, err := a.runner.LookPath(bin)
	if err != nil {
		return checkResult{Name: name, Status: checkFail, Detail: err.Error()}
	}
	return checkResult{Name: name, Status: checkOK, Detail: path}
}

func (a *app) checkBranch(ctx context.Context) checkResult {
	const name = "current branch"
	branch, err := a.git.CurrentBranch(ctx)
	if err != nil {
		return checkResult{Name: name, Status: checkWarn, Detail: err.Error()}
	}
	if !slices.Contains(a.cfg.Branches, branch) {
		return checkResult{Name: name, Status: checkWarn,
			Detail: fmt.Sprintf("%s is checked out; deploy pushes %v", branch, a.cfg.Branches)}
	}
	return checkResult{Name: name, Status: checkOK, Detail: branch}
}

func (a *app) checkRemote(ctx context.Context) checkResult {
	name := a.cfg.Remote + " remote"
	url, err := a.git.RemoteURL(ctx, a.cfg.Remote)
	if err != nil {
		return checkResult{Name: name, Status: checkWarn,
			Detail: "not configured; deploy runs heroku git:remote to add it"}
	}
	return checkResult{Name: name, Status: checkOK, Detail: url}
}

func (a *app) checkManifest() checkResult {
	name := manifest.FileName
	dir, err := a.deps.workDir()
	if err != nil {
		return checkResult{Name: name, Status: checkFail, Detail: err.Error()}
	}
	m, err := manifest.LoadDir(dir)
	if err != nil {
		return checkResult{Name: name, Status: checkFail, Detail: err.Error()}
	}
	return checkResult{Name: name, Status: checkOK,
		Detail: fmt.Sprintf("builds %v", m.Processes())}
}

func (a *app) checkDocker(ctx context.Context) checkResult {
	const name = "docker daemon"
	c, err := a.deps.dockerClient()
	if err != nil {
		return checkResult{Name: name, Status: checkWarn, Detail: err.Error()}
	}
	defer func() { _ = c.Close() }()

	version, err := c.Ping(ctx)
	if err != nil {
		return checkResult{Name: name, Status: checkWarn, Detail: err.Error()}
	}
	return checkResult{Name: name, Status: checkOK,
		Detail: fmt.Sprintf("API %s at %s", version, c.Host())}
}
