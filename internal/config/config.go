package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/agentflare-ai/dokuref/internal/locate"
)

// Config holds settings loaded from dokuref.yml.
type Config struct {
	Title             string   `yaml:"title,omitempty"`
	ReservedPrefix    string   `yaml:"reservedPrefix,omitempty"`
	Python            string   `yaml:"python,omitempty"`
	Extension         string   `yaml:"extension,omitempty"`
	SearchEnv         string   `yaml:"searchEnv,omitempty"`
	SearchDirs        []string `yaml:"searchDirs,omitempty"`
	ReplaceSearchDirs bool     `yaml:"replaceSearchDirs,omitempty"`
	LogLevel          string   `yaml:"logLevel,omitempty"`
	Jobs              int      `yaml:"jobs,omitempty"`
}

// Names are the file names Load looks for, in order.
var Names = []string{"dokuref.yml", "dokuref.yaml"}

// Load reads dokuref.yml or dokuref.yaml from dir. A missing file yields a
// zero-value config, not an error.
func Load(dir string) (*Config, error) {
	for _, name := range Names {
		cfg, err := LoadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return &Config{}, nil
}

// LoadFile reads a config from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from DOKUREF_* variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("DOKUREF_PYTHON"); ok && v != "" {
		c.Python = v
	}
	if v, ok := lookup("DOKUREF_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("DOKUREF_TITLE"); ok && v != "" {
		c.Title = v
	}
	if v, ok := lookup("DOKUREF_JOBS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DOKUREF_JOBS: %w", err)
		}
		c.Jobs = n
	}
	return nil
}

// PythonBin returns the configured interpreter, defaulting to python3.
func (c *Config) PythonBin() string {
	if c.Python != "" {
		return c.Python
	}
	return "python3"
}

// Locate converts the search settings for the locator.
func (c *Config) Locate() locate.Config {
	return locate.Config{
		Env:     c.SearchEnv,
		Dirs:    c.SearchDirs,
		Replace: c.ReplaceSearchDirs,
	}
}
