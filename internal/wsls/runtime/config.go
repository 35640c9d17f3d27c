package runtime

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config captures every knob shared by the serve and inspect entry points.
// Keeping it a lightweight struct makes it trivial to reuse in tests.
type Config struct {
	Workspace   string
	ConfigPath  string
	LogPath     string
	MaxFileSize int64
}

// FileConfig is the optional on-disk overlay persisted at
// .wsls/config.yaml inside the workspace.
type FileConfig struct {
	LogPath     string `yaml:"log_path"`
	MaxFileSize int64  `yaml:"max_file_size"`
}

// DefaultConfig infers sensible defaults based on the current working
// directory. Errors from os.Getwd are ignored so callers can override
// manually.
func DefaultConfig() Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Config{
		Workspace:  cwd,
		ConfigPath: filepath.Join(cwd, ".wsls", "config.yaml"),
	}
}

// Normalize ensures every filesystem path is absolute and fills missing
// defaults so callers never have to re-check the same invariants.
func (c *Config) Normalize() error {
	if c.Workspace == "" {
		return fmt.Errorf("workspace path required")
	}
	absWorkspace, err := filepath.Abs(c.Workspace)
	if err != nil {
		return fmt.Errorf("resolve workspace: %w", err)
	}
	c.Workspace = absWorkspace
	if c.ConfigPath == "" {
		c.ConfigPath = filepath.Join(c.Workspace, ".wsls", "config.yaml")
	}
	if !filepath.IsAbs(c.ConfigPath) {
		c.ConfigPath = filepath.Join(c.Workspace, c.ConfigPath)
	}
	if c.LogPath != "" && !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(c.Workspace, c.LogPath)
	}
	return nil
}

// LoadFileConfig reads the yaml overlay. A missing file is reported with
// os.ErrNotExist so callers can treat it as optional.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// Apply folds the overlay into the config; explicit values win over file
// values, which win over defaults.
func (c *Config) Apply(fc FileConfig) {
	if c.LogPath == "" && fc.LogPath != "" {
		c.LogPath = fc.LogPath
	}
	if c.MaxFileSize == 0 && fc.MaxFileSize > 0 {
		c.MaxFileSize = fc.MaxFileSize
	}
}
