package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	// Remote is the remote queried for the advertised HEAD branch.
	Remote string `json:"remote" yaml:"remote"`

	// DefaultBranch, when set, skips the remote HEAD query entirely.
	DefaultBranch string `json:"defaultBranch" yaml:"defaultBranch"`

	// Engine selects the resolver implementation ("gitcli" or "gogit").
	Engine string `json:"engine" yaml:"engine"`

	Filters FilterConfig `json:"filters" yaml:"filters"`
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Remote: "origin",
		Engine: "gitcli",
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// configNames are the file names searched when no path is given, in order.
var configNames = []string{".diffscope.json", ".diffscope.yaml", ".diffscope.yml"}

// LoadConfig loads configuration from a file, merging with defaults.
// With an empty path the default locations (CWD, then home) are searched.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isYAMLPath(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file, JSON or YAML by extension.
func SaveConfig(cfg *Config, path string) error {
	var data []byte
	var err error
	if isYAMLPath(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func findConfigFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range configNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
