// Package config holds runtime configuration: defaults, an optional YAML
// settings file, and validation. Defaults match the legacy maintenance
// script for parity, so a repository that worked with the old script works
// here unchanged.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally layered with [Config.ApplyFile], then mutated by CLI flags
// before being passed (by pointer) to packages that need it.
type Config struct {
	// WorkspaceRoot is the repository checkout root. Resolved by
	// [Config.ResolveRoot]; not settable from the YAML file.
	WorkspaceRoot string `yaml:"-"`

	// Site identity. BaseURL wins when set; otherwise it is derived as
	// https://<owner>.github.io/<repo>/.
	Owner   string `yaml:"owner"`
	Repo    string `yaml:"repo"`
	BaseURL string `yaml:"base_url"`

	// Workspace-relative paths.
	ContentDir   string `yaml:"content_dir"`
	ManifestPath string `yaml:"manifest"`
	TemplatePath string `yaml:"template"`
	IndexPath    string `yaml:"index"`

	// Behavior and display.
	DryRun  bool   `yaml:"-"`
	Verbose bool   `yaml:"-"`
	NoColor bool   `yaml:"-"`
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns a Config matching the legacy script constants.
func DefaultConfig() Config {
	return Config{
		Owner:        "splunk",
		Repo:         "splunk-show-public",
		ContentDir:   "public",
		ManifestPath: "redirects.json",
		TemplatePath: "_redirect_templates/redirect_template.html",
		IndexPath:    "REDIRECTS.md",
	}
}

// ApplyFile layers settings from a YAML file onto c. Fields absent from
// the file keep their current values. Unknown keys are rejected so typos
// in a settings file fail loudly.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// ResolveRoot fills WorkspaceRoot when unset: $GITHUB_WORKSPACE if present
// (the GitHub Actions case), otherwise the current directory. The result
// is absolute with symlinks resolved so path containment checks compare
// like with like.
func (c *Config) ResolveRoot() error {
	root := c.WorkspaceRoot
	if root == "" {
		root = os.Getenv("GITHUB_WORKSPACE")
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("workspace root: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("workspace root %s: %w", root, err)
	}
	c.WorkspaceRoot = resolved
	return nil
}

// Validate checks the base URL and required paths, and canonicalizes the
// base URL to end with a slash. ResolveRoot must have run first.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		if c.Owner == "" || c.Repo == "" {
			return errors.New("need either base_url or both owner and repo")
		}
		c.BaseURL = fmt.Sprintf("https://%s.github.io/%s/", c.Owner, c.Repo)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q (need http(s)://host/...)", c.BaseURL)
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}

	if c.ContentDir == "" || c.ManifestPath == "" || c.TemplatePath == "" || c.IndexPath == "" {
		return errors.New("content_dir, manifest, template, and index paths must not be empty")
	}
	return nil
}

// ValidatePaths ensures the resolved content root sits inside the
// workspace root, so a stray setting can never make orphan cleanup delete
// HTML outside the repository. Both arguments must be absolute paths.
func (c *Config) ValidatePaths(rootAbs, contentAbs string) error {
	sep := string(filepath.Separator)
	if contentAbs != rootAbs && !strings.HasPrefix(contentAbs+sep, rootAbs+sep) {
		return errors.New("content directory must be inside the workspace root")
	}
	return nil
}

// ContentRoot returns the absolute content directory path.
func (c *Config) ContentRoot() string {
	return filepath.Join(c.WorkspaceRoot, filepath.FromSlash(c.ContentDir))
}

// ManifestAbs returns the absolute manifest path.
func (c *Config) ManifestAbs() string {
	return filepath.Join(c.WorkspaceRoot, filepath.FromSlash(c.ManifestPath))
}

// TemplateAbs returns the absolute template path.
func (c *Config) TemplateAbs() string {
	return filepath.Join(c.WorkspaceRoot, filepath.FromSlash(c.TemplatePath))
}

// IndexAbs returns the absolute index path.
func (c *Config) IndexAbs() string {
	return filepath.Join(c.WorkspaceRoot, filepath.FromSlash(c.IndexPath))
}
