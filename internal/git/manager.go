package git

import (
	"context"
	"strings"

	"github.com/shinji-kodama/shopify-heroku/internal/runner"
)

const (
	// DefaultBinary is the git executable name.
	DefaultBinary = "git"

	// DefaultRemote is the remote name created by `heroku git:remote`.
	DefaultRemote = "heroku"
)

// DefaultBranches is the order in which deploy tries branch names.
var DefaultBranches = []string{"main", "master"}

// Manager provides Git operations by invoking the git CLI.
type Manager struct {
	runner runner.Runner
	binary string

	// repoPath is passed to git with -C when non-empty. Empty means the
	// process working directory, which is what the CLI uses.
	repoPath string
}

// NewManager creates a Manager operating in the current working directory.
// An empty binary means DefaultBinary.
func NewManager(r runner.Runner, binary string) *Manager {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Manager{runner: r, binary: binary}
}

// WithRepoPath returns a copy of m that runs git against repoPath.
func (m *Manager) WithRepoPath(repoPath string) *Manager {
	c := *m
	c.repoPath = repoPath
	return &c
}

// Push runs `git push <remote> <branch>` with output streamed to the
// terminal.
func (m *Manager) Push(ctx context.Context, remote, branch string) error {
	return m.runner.Stream(ctx, m.binary, m.args("push", remote, branch)...)
}

// IsInsideWorkTree reports whether the working directory is inside a Git
// work tree. Any git failure (including "not a git repository") is false.
func (m *Manager) IsInsideWorkTree(ctx context.Context) bool {
	out, err := m.output(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// CurrentBranch returns the short name of the checked-out branch
// ("HEAD" when detached).
func (m *Manager) CurrentBranch(ctx context.Context) (string, error) {
	return m.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// RemoteURL returns the fetch URL of the named remote.
func (m *Manager) RemoteURL(ctx context.Context, name string) (string, error) {
	return m.output(ctx, "remote", "get-url", name)
}

// output runs a capturing git command and returns trimmed stdout.
func (m *Manager) output(ctx context.Context, args ...string) (string, error) {
	result, err := m.runner.Output(ctx, m.binary, m.args(args...)...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}

// args prepends -C <repoPath> when a repository path is set.
func (m *Manager) args(args ...string) []string {
	if m.repoPath == "" {
		return args
	}
	return append([]string{"-C", m.repoPath}, args...)
}
