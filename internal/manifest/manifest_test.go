package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validManifest = `
setup:
  addons:
    - plan: heroku-postgresql
      as: DATABASE
  config:
    NODE_ENV: production
build:
  docker:
    web: Dockerfile
    worker: worker/Dockerfile
release:
  image: web
  command:
    - npm run migrate
run:
  web: npm run start
  worker:
    command:
      - npm run worker
    image: worker
`

// writeApp creates an app directory with the given heroku.yml and files.
func writeApp(t *testing.T, manifest string, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	if manifest != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(manifest), 0o644))
	}
	for _, f := range files {
		path := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("FROM node:20\n"), 0o644))
	}
	return dir
}

func TestLoadDir_Valid(t *testing.T) {
	dir := writeApp(t, validManifest, "Dockerfile", "worker/Dockerfile")

	m, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"web", "worker"}, m.Processes())
	assert.Equal(t, "Dockerfile", m.Build.Docker["web"])
	assert.Equal(t, []Addon{{Plan: "heroku-postgresql", As: "DATABASE"}}, m.Setup.Addons)
	assert.Equal(t, "production", m.Setup.Config["NODE_ENV"])
	require.NotNil(t, m.Release)
	assert.Equal(t, "web", m.Release.Image)

	// Both forms of run entries decode.
	assert.Equal(t, RunProcess{Command: []string{"npm run start"}}, m.Run["web"])
	assert.Equal(t, RunProcess{Command: []string{"npm run worker"}, Image: "worker"}, m.Run["worker"])
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadDir_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		files    []string
	}{
		{
			name:     "malformed yaml",
			manifest: "build: [docker\n",
		},
		{
			name:     "no docker builds",
			manifest: "build:\n  docker: {}\n",
		},
		{
			name:     "missing dockerfile",
			manifest: "build:\n  docker:\n    web: Dockerfile\n",
		},
		{
			name:     "dockerfile is a directory",
			manifest: "build:\n  docker:\n    web: docker\n",
			files:    []string{"docker/Dockerfile"},
		},
		{
			name:     "empty dockerfile entry",
			manifest: "build:\n  docker:\n    web: \"\"\n",
		},
		{
			name:     "release image not built",
			manifest: "build:\n  docker:\n    web: Dockerfile\nrelease:\n  image: worker\n",
			files:    []string{"Dockerfile"},
		},
		{
			name:     "addon without plan",
			manifest: "setup:\n  addons:\n    - as: DB\nbuild:\n  docker:\n    web: Dockerfile\n",
			files:    []string{"Dockerfile"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeApp(t, tt.manifest, tt.files...)
			_, err := LoadDir(dir)
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}
