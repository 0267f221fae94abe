package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/payra-dev/payra/internal/categorize"
)

// FileName is the config file inside the payra home.
const FileName = "payra.yaml"

// Config represents the top-level payra.yaml configuration. Fields tagged
// with env can be overridden from the environment or <home>/.env.
type Config struct {
	Currency  string            `yaml:"currency" env:"PAYRA_CURRENCY"`
	LogLevel  string            `yaml:"log_level" env:"PAYRA_LOG_LEVEL"`
	StoreFile string            `yaml:"store_file" env:"PAYRA_STORE_FILE"`
	Import    ImportConfig      `yaml:"import"`
	Rules     []categorize.Rule `yaml:"rules,omitempty"`
}

// ImportConfig controls CSV import behavior.
type ImportConfig struct {
	MoveProcessed bool `yaml:"move_processed"` // move inbox files to import/processed after commit
}

// Load reads a payra.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadHome reads <home>/payra.yaml, then applies <home>/.env and the
// process environment on top.
func LoadHome(home string) (*Config, error) {
	cfg, err := Load(filepath.Join(home, FileName))
	if err != nil {
		return nil, err
	}
	if err := godotenv.Load(filepath.Join(home, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg fields from PAYRA_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new home.
func Default() *Config {
	return &Config{
		Currency:  "USD",
		LogLevel:  "info",
		StoreFile: "payra.db",
		Import: ImportConfig{
			MoveProcessed: true,
		},
	}
}

// StorePath resolves the database file against home unless it is absolute.
func (c *Config) StorePath(home string) string {
	if filepath.IsAbs(c.StoreFile) {
		return c.StoreFile
	}
	return filepath.Join(home, c.StoreFile)
}

// Matcher builds the category matcher from the configured rules, falling
// back to the built-in table when none are set.
func (c *Config) Matcher() *categorize.Matcher {
	return categorize.New(c.Rules)
}
