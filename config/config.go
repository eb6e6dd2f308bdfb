// Package config loads user defaults from a YAML file.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const envConfigPath = "CURLFORM_CONFIG"

// Config holds defaults for command line flags. Unset fields leave the
// built-in defaults alone.
type Config struct {
	Timeout string `yaml:"timeout"`
	Follow  *bool  `yaml:"follow"`
	Verify  *bool  `yaml:"verify"`
	HTTP1   *bool  `yaml:"http1"`
	Format  string `yaml:"format"`
	Color   string `yaml:"color"`
	Print   string `yaml:"print"`
}

// DefaultPath returns the file named by $CURLFORM_CONFIG, or the per-user
// config location. explicit is true for the former.
func DefaultPath() (path string, explicit bool) {
	if p := os.Getenv(envConfigPath); p != "" {
		return p, true
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "curlform", "config.yaml"), false
}

// Load reads the config at the default path. A missing file is only an
// error when the user named it.
func Load() (*Config, error) {
	path, explicit := DefaultPath()
	if path == "" {
		return &Config{}, nil
	}
	cfg, err := LoadFile(path)
	if os.IsNotExist(errors.Cause(err)) && !explicit {
		return &Config{}, nil
	}
	return cfg, err
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	cfg := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty file decodes to io.EOF.
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Format {
	case "", "form", "json", "bash", "cmd":
	default:
		return errors.Errorf("format must be one of form, json, bash, cmd: %s", c.Format)
	}
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return errors.Errorf("color must be one of auto, always, never: %s", c.Color)
	}
	return nil
}
