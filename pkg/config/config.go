package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/leaktk/precommit/pkg/fs"
	"github.com/leaktk/precommit/pkg/logger"
)

type (
	// Config provides a general structure to capture the config options
	// for the pre-commit guard.
	Config struct {
		Logger    Logger    `toml:"logger"`
		Scanner   Scanner   `toml:"scanner"`
		Formatter Formatter `toml:"formatter"`
	}

	// Logger provides general logging config
	Logger struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	}

	// Scanner provides scanner specific config
	Scanner struct {
		// Workers is how many files are scanned at the same time
		Workers int `toml:"workers"`
		// RulesPath points at an optional gitleaks formatted rules file
		RulesPath string `toml:"rules_path"`
		// DisabledRules lists rule IDs that should not be evaluated
		DisabledRules []string `toml:"disabled_rules"`
	}

	// Formatter configures how the report is rendered
	Formatter struct {
		Format string `toml:"format"`
	}
)

var localConfigDir = filepath.Join(xdg.ConfigHome, "leaktk")

const (
	configFileName = "precommit.toml"
	configEnvVar   = "LEAKTK_PRECOMMIT_CONFIG"
	systemConfig   = "/etc/leaktk/precommit.toml"
)

// DefaultConfig provides a fully usable instance of Config with default
// values provided
func DefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Level:  "INFO",
			Format: "HUMAN",
		},
		Scanner: Scanner{
			Workers: 4,
		},
		Formatter: Formatter{
			Format: "HUMAN",
		},
	}
}

// LoadConfigFromFile provides a config object with default values set plus any
// custom values pulled in from the config file
func LoadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(filepath.Clean(path), cfg); err != nil {
		return nil, fmt.Errorf("could not load config: path=%q error=%q", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("loaded config: path=%q", path)
	return cfg, nil
}

// Validate checks the values that can't be fixed up with a default
func (c *Config) Validate() error {
	if _, err := logger.ParseLoggerFormat(c.Logger.Format); err != nil {
		return err
	}

	if c.Scanner.Workers < 1 {
		return fmt.Errorf("invalid scanner workers: workers=%d", c.Scanner.Workers)
	}

	if len(c.Scanner.RulesPath) > 0 {
		if !fs.FileExists(c.Scanner.RulesPath) {
			return fmt.Errorf("could not find rules file: rules_path=%q", c.Scanner.RulesPath)
		}
	}

	return nil
}

// ApplyLogger pushes the logger settings into the logger package
func (c *Config) ApplyLogger() error {
	format, err := logger.ParseLoggerFormat(c.Logger.Format)
	if err != nil {
		return err
	}

	if err := logger.SetLoggerFormat(format); err != nil {
		return err
	}

	return logger.SetLoggerLevel(c.Logger.Level)
}

// LocateAndLoadConfig looks through the possible places for the config
// favoring the provided path if it is set
func LocateAndLoadConfig(path string) (*Config, error) {
	if len(path) > 0 {
		return LoadConfigFromFile(path)
	}

	if path = os.Getenv(configEnvVar); len(path) > 0 {
		return LoadConfigFromFile(path)
	}

	path = filepath.Join(localConfigDir, configFileName)
	if fs.FileExists(path) {
		return LoadConfigFromFile(path)
	}

	if fs.FileExists(systemConfig) {
		return LoadConfigFromFile(systemConfig)
	}

	logger.Debug("no config file found, using defaults")
	return DefaultConfig(), nil
}
