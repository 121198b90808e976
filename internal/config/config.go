// Package config loads scriptkit defaults from YAML files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/scriptkit/internal/logging"
)

// ProjectFileName is the project-level config file looked up in the working directory.
const ProjectFileName = ".scriptkit.yaml"

// Config represents the complete scriptkit configuration.
type Config struct {
	Version  int            `yaml:"version" json:"version"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Validate ValidateConfig `yaml:"validate" json:"validate"`
}

// LoggingConfig configures the logger built for every command.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	File      string `yaml:"file" json:"file"`
	Format    string `yaml:"format" json:"format"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// OutputConfig configures the skeleton's result record.
type OutputConfig struct {
	// Format is "json" or "yaml".
	Format string `yaml:"format" json:"format"`
}

// ValidateConfig holds the requirements checked by `scriptkit validate`.
type ValidateConfig struct {
	// MinGoVersion is "major.minor", e.g. "1.21".
	MinGoVersion string        `yaml:"min_go_version" json:"min_go_version"`
	Commands     []string      `yaml:"commands" json:"commands"`
	Modules      []string      `yaml:"modules" json:"modules"`
	SupportedOS  []string      `yaml:"supported_os" json:"supported_os"`
	Network      NetworkConfig `yaml:"network" json:"network"`
	MinDiskGB    float64       `yaml:"min_disk_gb" json:"min_disk_gb"`
}

// NetworkConfig is the reachability probe target.
type NetworkConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Timeout string `yaml:"timeout" json:"timeout"`
	// Retries is the number of extra attempts after a failed probe.
	Retries int `yaml:"retries" json:"retries"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			Level:     "INFO",
			Format:    "text",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Validate: ValidateConfig{
			MinGoVersion: "1.21",
			SupportedOS:  []string{"linux", "darwin", "windows"},
			Network: NetworkConfig{
				Host:    "github.com",
				Port:    443,
				Timeout: "5s",
			},
			MinDiskGB: 0.1,
		},
	}
}

// NetworkTimeout parses Validate.Network.Timeout. Invalid values fall back to 5s.
func (c *Config) NetworkTimeout() time.Duration {
	d, err := time.ParseDuration(c.Validate.Network.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// LoggingOptions converts the logging section into logging.Config.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		FilePath:  c.Logging.File,
		Format:    c.Logging.Format,
		MaxSizeMB: c.Logging.MaxSizeMB,
		MaxFiles:  c.Logging.MaxFiles,
	}
}

// GetUserConfigPath returns the path to the user configuration file:
//   - $XDG_CONFIG_HOME/scriptkit/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/scriptkit/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scriptkit", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "scriptkit", "config.yaml")
	}
	return filepath.Join(home, ".config", "scriptkit", "config.yaml")
}

// Load loads configuration for dir, in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/scriptkit/config.yaml)
//  3. Project config (.scriptkit.yaml or .scriptkit.yml in dir)
//  4. Environment variables (SCRIPTKIT_*)
//
// Command-line flags are applied on top by the caller.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userPath := GetUserConfigPath(); fileExists(userPath) {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads .scriptkit.yaml, falling back to .scriptkit.yml.
func (c *Config) loadFromFile(dir string) error {
	yamlPath := filepath.Join(dir, ProjectFileName)
	if fileExists(yamlPath) {
		return c.loadYAML(yamlPath)
	}

	ymlPath := filepath.Join(dir, ".scriptkit.yml")
	if fileExists(ymlPath) {
		return c.loadYAML(ymlPath)
	}

	return nil
}

// loadYAML parses path and merges its non-zero values into c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.File != "" {
		c.Logging.File = other.Logging.File
	}
	if other.Logging.Format != "" {
		c.Logging.Format = other.Logging.Format
	}
	if other.Logging.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxFiles != 0 {
		c.Logging.MaxFiles = other.Logging.MaxFiles
	}

	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}

	v := other.Validate
	if v.MinGoVersion != "" {
		c.Validate.MinGoVersion = v.MinGoVersion
	}
	if len(v.Commands) > 0 {
		c.Validate.Commands = v.Commands
	}
	if len(v.Modules) > 0 {
		c.Validate.Modules = v.Modules
	}
	if len(v.SupportedOS) > 0 {
		c.Validate.SupportedOS = v.SupportedOS
	}
	if v.Network.Host != "" {
		c.Validate.Network.Host = v.Network.Host
	}
	if v.Network.Port != 0 {
		c.Validate.Network.Port = v.Network.Port
	}
	if v.Network.Timeout != "" {
		c.Validate.Network.Timeout = v.Network.Timeout
	}
	if v.Network.Retries != 0 {
		c.Validate.Network.Retries = v.Network.Retries
	}
	if v.MinDiskGB != 0 {
		c.Validate.MinDiskGB = v.MinDiskGB
	}
}

// applyEnvOverrides applies SCRIPTKIT_* environment variable overrides.
// Unparseable numeric values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SCRIPTKIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SCRIPTKIT_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("SCRIPTKIT_NETWORK_HOST"); v != "" {
		c.Validate.Network.Host = v
	}
	if v := os.Getenv("SCRIPTKIT_NETWORK_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			c.Validate.Network.Port = p
		}
	}
	if v := os.Getenv("SCRIPTKIT_NETWORK_TIMEOUT"); v != "" {
		c.Validate.Network.Timeout = v
	}
	if v := os.Getenv("SCRIPTKIT_NETWORK_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Validate.Network.Retries = n
		}
	}
	if v := os.Getenv("SCRIPTKIT_MIN_DISK_GB"); v != "" {
		if gb, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && gb >= 0 {
			c.Validate.MinDiskGB = gb
		}
	}
}

// Check checks that the configuration values are usable.
func (c *Config) Check() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be 'text' or 'json', got %s", c.Logging.Format)
	}

	switch strings.ToLower(c.Output.Format) {
	case "json", "yaml":
	default:
		return fmt.Errorf("output.format must be 'json' or 'yaml', got %s", c.Output.Format)
	}

	if c.Validate.Network.Port <= 0 || c.Validate.Network.Port > 65535 {
		return fmt.Errorf("validate.network.port must be between 1 and 65535, got %d", c.Validate.Network.Port)
	}

	if d, err := time.ParseDuration(c.Validate.Network.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("validate.network.timeout must be a positive duration, got %q", c.Validate.Network.Timeout)
	}

	if c.Validate.Network.Retries < 0 {
		return fmt.Errorf("validate.network.retries must be non-negative, got %d", c.Validate.Network.Retries)
	}

	if c.Validate.MinDiskGB < 0 {
		return fmt.Errorf("validate.min_disk_gb must be non-negative, got %f", c.Validate.MinDiskGB)
	}

	return nil
}

// WriteYAML writes the configuration to path, creating parent directories.
func (c *Config) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
