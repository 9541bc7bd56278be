package internal

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds optional overrides loaded from ~/.hive-mind/config.yaml.
// A missing config file is not an error; all fields default to "".
type Config struct {
	// ProjectsRoot overrides the raw session root (~/.claude/projects).
	ProjectsRoot string `yaml:"projects_root,omitempty"`
	// OutputDir overrides the extracted-session directory for the project.
	OutputDir string `yaml:"output_dir,omitempty"`
	// IndexPath overrides the session index location.
	IndexPath string `yaml:"index_path,omitempty"`
}

// ConfigPath returns the config file location.
func ConfigPath() (string, error) {
	hiveDir, err := HiveDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(hiveDir, "config.yaml"), nil
}

// LoadConfig reads the user config file, returning zero-value defaults when
// it does not exist.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return &cfg, nil
}
