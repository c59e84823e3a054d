package config

import (
	"fmt"
	"os"
	"path/filepath"

	"weekmd/internal/lang"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the profile looked up in the working directory when
// --config is not given.
const DefaultFileName = ".weekmd.yaml"

// Config holds the optional weekmd profile.
type Config struct {
	// Student details used when the matching flags are not set.
	Student StudentConfig `yaml:"student"`

	// Extra extension to tag mappings, merged onto the built-in table.
	Languages map[string]string `yaml:"languages,omitempty"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StudentConfig holds the header fields that rarely change between weeks.
type StudentConfig struct {
	Name          string  `yaml:"name,omitempty"`
	Class         string  `yaml:"class,omitempty"`
	StudentNumber *uint32 `yaml:"student_number,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultPath returns DefaultFileName inside the working directory.
func DefaultPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(cwd, DefaultFileName)
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Logging,
		validation.Field(&c.Logging.Level, validation.In("debug", "info", "warn", "warning", "error")),
		validation.Field(&c.Logging.Format, validation.In("console", "text", "json")),
	); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}

	if err := c.LanguageTable().Validate(); err != nil {
		return fmt.Errorf("invalid languages config: %w", err)
	}
	return nil
}

// LanguageTable returns the built-in table with Languages merged on top.
func (c *Config) LanguageTable() lang.Table {
	return lang.DefaultTable().Merge(c.Languages)
}
