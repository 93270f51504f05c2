// Package config loads the hpcgen tool configuration from YAML. The file is
// optional; every knob has a working default so the tool runs bare.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the configuration file location when set.
const EnvConfigPath = "HPCGEN_CONFIG"

// Config holds the complete tool configuration
type Config struct {
	Version   string          `yaml:"version" json:"version"`
	Product   ProductConfig   `yaml:"product" json:"product"`
	Defaults  DefaultsConfig  `yaml:"defaults" json:"defaults"`
	Rendering RenderingConfig `yaml:"rendering" json:"rendering"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
}

// ProductConfig describes the simulation product the generated jobs run.
type ProductConfig struct {
	// FullPath is the solver executable submitted to the dispatch daemon.
	// When empty, the path resolver falls back to InstallRoot/ansysedt.
	FullPath    string `yaml:"fullPath" json:"fullPath"`
	InstallRoot string `yaml:"installRoot" json:"installRoot"`
}

// DefaultsConfig holds default job parameters applied when a job document
// does not supply its own.
type DefaultsConfig struct {
	ClusterName     string  `yaml:"clusterName" json:"clusterName"`
	NumCores        int     `yaml:"numCores" json:"numCores"`
	NumNodes        int     `yaml:"numNodes" json:"numNodes"`
	NumTasks        int     `yaml:"numTasks" json:"numTasks"`
	RAMLimit        int     `yaml:"ramLimit" json:"ramLimit"`
	RAMPerCore      float64 `yaml:"ramPerCore" json:"ramPerCore"`
	WaitForLicense  bool    `yaml:"waitForLicense" json:"waitForLicense"`
	MonitorProgress bool    `yaml:"monitorProgress" json:"monitorProgress"`
}

// RenderingConfig holds descriptor rendering options.
type RenderingConfig struct {
	// TemplatePath overrides the built-in descriptor template.
	TemplatePath string `yaml:"templatePath" json:"templatePath"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultConfig returns a config with working defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Product: ProductConfig{
			InstallRoot: "/opt/AnsysEM/v242/Linux64",
		},
		Defaults: DefaultsConfig{
			ClusterName:     "localhost",
			NumCores:        4,
			NumNodes:        1,
			NumTasks:        1,
			RAMLimit:        90,
			RAMPerCore:      2.0,
			WaitForLicense:  false,
			MonitorProgress: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads the YAML configuration at path. An empty path falls back
// to the HPCGEN_CONFIG environment variable; a missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	d := c.Defaults
	if d.NumCores <= 0 {
		return fmt.Errorf("config defaults.numCores: must be positive, got %d", d.NumCores)
	}
	if d.NumNodes <= 0 {
		return fmt.Errorf("config defaults.numNodes: must be positive, got %d", d.NumNodes)
	}
	if d.NumTasks <= 0 {
		return fmt.Errorf("config defaults.numTasks: must be positive, got %d", d.NumTasks)
	}
	if d.RAMLimit <= 0 {
		return fmt.Errorf("config defaults.ramLimit: must be positive, got %d", d.RAMLimit)
	}
	if d.RAMPerCore <= 0 {
		return fmt.Errorf("config defaults.ramPerCore: must be positive, got %g", d.RAMPerCore)
	}
	if c.Logging.Level != "" {
		switch c.Logging.Level {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("config logging.level: unknown level %q", c.Logging.Level)
		}
	}
	return nil
}

// ProductPathResolver returns the executable path resolver injected into
// job construction. The configured full path wins; otherwise the path is
// derived from the install root.
func (c *Config) ProductPathResolver() func() string {
	return func() string {
		if c.Product.FullPath != "" {
			return c.Product.FullPath
		}
		return c.Product.InstallRoot + "/ansysedt"
	}
}
