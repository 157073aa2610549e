package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/shopify-heroku/internal/model"
	"github.com/shinji-kodama/shopify-heroku/internal/runner/runnertest"
)

// stubProber records probed URLs and returns err.
type stubProber struct {
	err  error
	urls []string
}

func (p *stubProber) Probe(_ context.Context, url string) error {
	p.urls = append(p.urls, url)
	return p.err
}

// stubDocker is a dockerChecker with a scripted ping result.
type stubDocker struct {
	pingErr error
	closed  bool
}

func (d *stubDocker) Host() string {
	return "unix:///var/run/docker.sock"
}

func (d *stubDocker) Ping(context.Context) (string, error) {
	if d.pingErr != nil {
		return "", d.pingErr
	}
	return "1.47", nil
}

func (d *stubDocker) Close() error {
	d.closed = true
	return nil
}

// testEnv wires a root command to fakes and captures its diagnostics.
type testEnv struct {
	runner    *runnertest.Fake
	prober    *stubProber
	docker    *stubDocker
	dockerErr error
	workDir   string
	stderr    bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		runner:  runnertest.NewFake(),
		prober:  &stubProber{},
		docker:  &stubDocker{},
		workDir: t.TempDir(),
	}
}

func (e *testEnv) deps() dependencies {
	return dependencies{
		runner: e.runner,
		prober: e.prober,
		dockerClient: func() (dockerChecker, error) {
			if e.dockerErr != nil {
				return nil, e.dockerErr
			}
			return e.docker, nil
		},
		workDir: func() (string, error) { return e.workDir, nil },
		stderr:  &e.stderr,
	}
}

// run executes the CLI with args and returns the exit code.
func (e *testEnv) run(args ...string) model.ExitCode {
	rootCmd := newRootCommand(e.deps())
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&bytes.Buffer{})
	return execute(rootCmd, &e.stderr)
}

// output returns everything logged so far.
func (e *testEnv) output() string {
	return e.stderr.String()
}

// writeFile creates a file under the test working directory.
func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.workDir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

var errDockerMissing = errors.New("Docker socket not found")
