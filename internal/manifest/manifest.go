// Package manifest reads heroku.yml, the build manifest the Heroku
// container stack uses to build and run an app.
//
// `deploy` switches the app to the container stack, so a push only builds
// when the repository root has a heroku.yml whose build.docker section
// points at existing Dockerfiles. The doctor command uses this package to
// report a broken manifest before a push is attempted.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// FileName is the manifest file name Heroku looks for at the repo root.
const FileName = "heroku.yml"

var (
	// ErrNotFound is returned when no heroku.yml exists.
	ErrNotFound = errors.New("heroku.yml not found")

	// ErrInvalidManifest is wrapped by every validation failure.
	ErrInvalidManifest = errors.New("invalid heroku.yml")
)

// Manifest is the subset of heroku.yml this tool checks.
type Manifest struct {
	Setup   Setup                 `yaml:"setup,omitempty"`
	Build   Build                 `yaml:"build"`
	Release *Release              `yaml:"release,omitempty"`
	Run     map[string]RunProcess `yaml:"run,omitempty"`
}

// Setup provisions add-ons and config vars when the app is created from
// the manifest.
type Setup struct {
	Addons []Addon           `yaml:"addons,omitempty"`
	Config map[string]string `yaml:"config,omitempty"`
}

// Addon is one add-on plan to provision.
type Addon struct {
	Plan string `yaml:"plan"`
	As   string `yaml:"as,omitempty"`
}

// Build maps process types to Dockerfiles.
type Build struct {
	Docker map[string]string `yaml:"docker"`
	Config map[string]string `yaml:"config,omitempty"`
}

// Release describes the release-phase command.
type Release struct {
	Image   string   `yaml:"image"`
	Command []string `yaml:"command,omitempty"`
}

// RunProcess is the command for one process type. heroku.yml accepts
// either a plain string or a mapping with command and image.
type RunProcess struct {
	Command []string `yaml:"command,omitempty"`
	Image   string   `yaml:"image,omitempty"`
}

// UnmarshalYAML accepts both `web: bundle exec puma` and the mapping form.
func (p *RunProcess) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Command = []string{node.Value}
		return nil
	}
	type plain RunProcess
	return node.Decode((*plain)(p))
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, path, err)
	}
	return &m, nil
}

// LoadDir loads heroku.yml from dir and validates it against the files in
// dir.
func LoadDir(dir string) (*Manifest, error) {
	m, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	if err := m.Validate(dir); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that the manifest declares at least one Docker build,
// that every referenced Dockerfile exists under dir, and that the release
// image names a built process type.
func (m *Manifest) Validate(dir string) error {
	if len(m.Build.Docker) == 0 {
		return fmt.Errorf("%w: build.docker must declare at least one process type", ErrInvalidManifest)
	}

	for _, process := range m.Processes() {
		dockerfile := m.Build.Docker[process]
		if dockerfile == "" {
			return fmt.Errorf("%w: build.docker.%s has no Dockerfile", ErrInvalidManifest, process)
		}
		info, err := os.Stat(filepath.Join(dir, dockerfile))
		if err != nil || info.IsDir() {
			return fmt.Errorf("%w: build.docker.%s: %s does not exist", ErrInvalidManifest, process, dockerfile)
		}
	}

	if m.Release != nil && m.Release.Image != "" {
		if _, ok := m.Build.Docker[m.Release.Image]; !ok {
			return fmt.Errorf("%w: release.image %q is not built by build.docker", ErrInvalidManifest, m.Release.Image)
		}
	}

	for _, addon := range m.Setup.Addons {
		if addon.Plan == "" {
			return fmt.Errorf("%w: setup.addons entry without plan", ErrInvalidManifest)
		}
	}
	return nil
}

// Processes returns the process types built by the manifest, sorted.
func (m *Manifest) Processes() []string {
	names := make([]string, 0, len(m.Build.Docker))
	for name := range m.Build.Docker {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
