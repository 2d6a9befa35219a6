package site

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a site config from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing site YAML: %w", err)
	}

	if cfg.WorldBound <= 0 {
		cfg.WorldBound = DefaultWorldBound
	}
	if cfg.RoadBuffer <= 0 {
		cfg.RoadBuffer = DefaultRoadBuffer
	}

	return &cfg, nil
}

// LoadProject loads a site config from a project directory.
// It looks for site.yaml in the given directory.
func LoadProject(projectDir string) (*Config, error) {
	return Load(filepath.Join(projectDir, "site.yaml"))
}
