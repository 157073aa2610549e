// Package config provides optional settings for shopify-heroku.
//
// Without a config file every command behaves exactly as documented in the
// README: `shopify`, `heroku` and `git` from PATH, the "heroku" remote,
// branches main then master, and the two Shopify API keys. A file passed
// with --config overrides individual fields.
//
// Files ending in .yaml or .yml are decoded with gopkg.in/yaml.v3. Any
// other file is treated as JSON with comments: github.com/tidwall/jsonc
// strips comments and trailing commas before encoding/json decodes it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/shopify-heroku/internal/envvars"
	"github.com/shinji-kodama/shopify-heroku/internal/git"
	"github.com/shinji-kodama/shopify-heroku/internal/heroku"
	"github.com/shinji-kodama/shopify-heroku/internal/shopify"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultAppURLKey is the config var that receives the resolved app URL.
const DefaultAppURLKey = "SHOPIFY_APP_URL"

// Config holds every tunable of the CLI.
type Config struct {
	// ShopifyBin is the Shopify CLI executable.
	ShopifyBin string `yaml:"shopify_bin,omitempty" json:"shopify_bin,omitempty"`

	// HerokuBin is the Heroku CLI executable.
	HerokuBin string `yaml:"heroku_bin,omitempty" json:"heroku_bin,omitempty"`

	// GitBin is the git executable.
	GitBin string `yaml:"git_bin,omitempty" json:"git_bin,omitempty"`

	// Remote is the git remote deploy pushes to.
	Remote string `yaml:"remote,omitempty" json:"remote,omitempty"`

	// Branches are tried in order by deploy until one push succeeds.
	Branches []string `yaml:"branches,omitempty" json:"branches,omitempty"`

	// RequiredKeys are the Shopify variables copied by set-env.
	RequiredKeys []string `yaml:"required_keys,omitempty" json:"required_keys,omitempty"`

	// AppURLKey is the config var set to the resolved app URL.
	AppURLKey string `yaml:"app_url_key,omitempty" json:"app_url_key,omitempty"`

	// AppDomain is the domain used to construct the fallback app URL.
	AppDomain string `yaml:"app_domain,omitempty" json:"app_domain,omitempty"`

	// Stack is the Heroku stack deploy switches to.
	Stack string `yaml:"stack,omitempty" json:"stack,omitempty"`

	// ProbeTimeout bounds the reachability check of a constructed URL,
	// written as a Go duration ("10s").
	ProbeTimeout Duration `yaml:"probe_timeout,omitempty" json:"probe_timeout,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ShopifyBin:   shopify.DefaultBinary,
		HerokuBin:    heroku.DefaultBinary,
		GitBin:       git.DefaultBinary,
		Remote:       git.DefaultRemote,
		Branches:     append([]string(nil), git.DefaultBranches...),
		RequiredKeys: append([]string(nil), envvars.DefaultRequiredKeys...),
		AppURLKey:    DefaultAppURLKey,
		AppDomain:    heroku.DefaultAppDomain,
		Stack:        heroku.ContainerStack,
		ProbeTimeout: Duration(heroku.DefaultProbeTimeout),
	}
}

// Validate checks that the configuration can drive the commands.
func (c *Config) Validate() error {
	required := []struct{ name, value string }{
		{"shopify_bin", c.ShopifyBin},
		{"heroku_bin", c.HerokuBin},
		{"git_bin", c.GitBin},
		{"remote", c.Remote},
		{"app_url_key", c.AppURLKey},
		{"app_domain", c.AppDomain},
		{"stack", c.Stack},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, f.name)
		}
	}

	if len(c.Branches) == 0 {
		return fmt.Errorf("%w: branches must list at least one branch", ErrInvalidConfig)
	}
	for i, b := range c.Branches {
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("%w: branch at index %d is empty", ErrInvalidConfig, i)
		}
	}

	if len(c.RequiredKeys) == 0 {
		return fmt.Errorf("%w: required_keys must list at least one key", ErrInvalidConfig)
	}
	for i, k := range c.RequiredKeys {
		if k == "" || strings.ContainsAny(k, "= \t") {
			return fmt.Errorf("%w: required key at index %d is not a variable name: %q", ErrInvalidConfig, i, k)
		}
	}
	if strings.ContainsAny(c.AppURLKey, "= \t") {
		return fmt.Errorf("%w: app_url_key is not a variable name: %q", ErrInvalidConfig, c.AppURLKey)
	}

	if c.ProbeTimeout < 0 {
		return fmt.Errorf("%w: probe_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Load returns Default() overlaid with the file at path. An empty path
// returns the defaults without touching the filesystem.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var file Config
	if err := loadFile(path, &file); err != nil {
		return nil, err
	}
	merge(cfg, &file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile decodes path into cfg, choosing the decoder by extension.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML in %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return fmt.Errorf("failed to parse JSON in %s: %w", path, err)
		}
	}
	return nil
}

// merge copies every field set in file over base. Slices replace rather
// than append.
func merge(base, file *Config) {
	setString(&base.ShopifyBin, file.ShopifyBin)
	setString(&base.HerokuBin, file.HerokuBin)
	setString(&base.GitBin, file.GitBin)
	setString(&base.Remote, file.Remote)
	setString(&base.AppURLKey, file.AppURLKey)
	setString(&base.AppDomain, file.AppDomain)
	setString(&base.Stack, file.Stack)

	if file.Branches != nil {
		base.Branches = file.Branches
	}
	if file.RequiredKeys != nil {
		base.RequiredKeys = file.RequiredKeys
	}
	if file.ProbeTimeout != 0 {
		base.ProbeTimeout = file.ProbeTimeout
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
