package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the host application's inspection settings. Every field has a
// working default; a missing config file is not an error.
type Config struct {
	// Title is shown at the top of the root menu.
	Title string `yaml:"title,omitempty"`

	// StorePath is the settings database. Relative paths resolve against
	// the config directory.
	StorePath string `yaml:"storePath,omitempty"`

	// Domain is the default settings domain for unqualified keys.
	Domain string `yaml:"domain,omitempty"`

	// LogDir is scanned for *.log files alongside in-process capture
	// buffers. Empty disables the file scan.
	LogDir string `yaml:"logDir,omitempty"`

	// TruncateAt caps one-line value summaries, in runes.
	TruncateAt int `yaml:"truncateAt,omitempty"`
}

const (
	defaultTitle      = "Inspect"
	defaultDomain     = "app"
	defaultTruncateAt = 80
)

// Dir resolves the config directory, honoring the test/advanced override.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("INSPECT_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".inspect"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file, filling defaults for anything unset. A
// missing file yields the pure defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Domain == "" {
		c.Domain = defaultDomain
	}
	if c.TruncateAt <= 0 {
		c.TruncateAt = defaultTruncateAt
	}
	if c.StorePath == "" {
		c.StorePath = "settings.db"
	}
	if !filepath.IsAbs(c.StorePath) {
		if dir, err := Dir(); err == nil {
			c.StorePath = filepath.Join(dir, c.StorePath)
		}
	}
}

func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, ".config-*.yaml", path, b, 0o644)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
