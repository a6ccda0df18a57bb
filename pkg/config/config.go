package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/nightjar/pkg/extractor"
	"github.com/simonhull/firebird-suite/nightjar/pkg/filesystem"
)

// FileName is the project configuration file looked up in the working
// directory.
const FileName = "nightjar.yaml"

// Config represents nightjar.yaml configuration
type Config struct {
	Project  ProjectConfig  `yaml:"project"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Report   ReportConfig   `yaml:"report"`
}

// ProjectConfig locates the application
type ProjectConfig struct {
	Root          string `yaml:"root"`
	Entry         string `yaml:"entry"`
	RootComponent string `yaml:"root_component"`
	RootCall      string `yaml:"root_call"`
}

// AnalysisConfig tunes cataloging and the walk
type AnalysisConfig struct {
	Skip           []string `yaml:"skip"`
	Extensions     []string `yaml:"extensions"`
	SkipUnparsable bool     `yaml:"skip_unparsable"`
	PreciseGuard   bool     `yaml:"precise_guard"`
}

// ReportConfig defines output settings
type ReportConfig struct {
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// the defaults; fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a config matching a create-react-app layout
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			Root:          ".",
			Entry:         "src/index.js",
			RootComponent: extractor.DefaultRootCall,
			RootCall:      extractor.DefaultRootCall,
		},
		Analysis: AnalysisConfig{
			Skip:       []string{},
			Extensions: append([]string{}, filesystem.DefaultExtensions...),
		},
		Report: ReportConfig{
			Format: "text",
		},
	}
}

// SaveConfig writes configuration to a YAML file
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration for values the analyzer cannot use.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Project.Root) == "" {
		problems = append(problems, "project.root is required")
	}
	if strings.TrimSpace(c.Project.Entry) == "" {
		problems = append(problems, "project.entry is required")
	}
	for _, ext := range c.Analysis.Extensions {
		if !strings.HasPrefix(ext, ".") {
			problems = append(problems, fmt.Sprintf("extension %q must start with a dot", ext))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
