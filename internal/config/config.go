package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	Name           string = "beautify-ls"
	Version        string = "0.1.0"
	ConfigFileName string = ".beautify-ls.yaml"

	ConfigItemBeautifiers string = "beautifiers"
)

type Config struct {
	RawData     []byte
	Beautifiers map[string]Beautifier
	initialized bool
}

// Beautifier describes one external beautification command.
type Beautifier struct {
	Enabled        bool     `yaml:"enabled"`
	Path           string   `yaml:"path"`
	Args           []string `yaml:"args"`
	ConfigFile     string   `yaml:"configFile"`
	Languages      []string `yaml:"languages"`
	Priority       int      `yaml:"priority"`
	Stdin          bool     `yaml:"stdin"`
	TimeoutSeconds int      `yaml:"timeoutSeconds"`
}

func (config *Config) IsInitialized() bool {
	return config.initialized
}

func (config *Config) LoadConfig(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, fmt.Errorf("config file not found: %s", configPath)
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileData struct {
		Beautifiers map[string]Beautifier `yaml:"beautifiers"`
	}
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(fileData.Beautifiers) == 0 {
		return config, fmt.Errorf("no beautifiers configured (missing key %s)", ConfigItemBeautifiers)
	}

	config.RawData = rawData
	config.Beautifiers = fileData.Beautifiers
	config.initialized = true

	return config, nil
}
