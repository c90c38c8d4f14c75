package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "surveyq.yaml"

// Config holds all surveyq configuration.
type Config struct {
	Classifier ClassifierConfig `yaml:"classifier"`
	Loader     LoaderConfig     `yaml:"loader"`
	Logging    LoggingConfig    `yaml:"logging"`
	Session    SessionConfig    `yaml:"session"`
	Display    DisplayConfig    `yaml:"display"`
}

// ClassifierConfig tunes question type inference.
type ClassifierConfig struct {
	Delimiter      string  `yaml:"delimiter"`        // multi-choice separator
	MaxUniqueRatio float64 `yaml:"max_unique_ratio"` // distinct/answered below this is single-choice
	MaxOptions     int     `yaml:"max_options"`      // single-choice needs fewer distinct values than this
}

// LoaderConfig configures source parsing.
type LoaderConfig struct {
	Workers int    `yaml:"workers"`
	Sheet   string `yaml:"sheet"` // Excel worksheet, empty = first
	Comma   string `yaml:"comma"` // CSV field separator
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// SessionConfig configures where the loaded source list is remembered.
type SessionConfig struct {
	ManifestPath string `yaml:"manifest_path"`
}

// DisplayConfig holds CLI presentation defaults.
type DisplayConfig struct {
	TopN int `yaml:"top_n"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			Delimiter:      ";",
			MaxUniqueRatio: 0.2,
			MaxOptions:     50,
		},
		Loader: LoaderConfig{
			Workers: 4,
			Comma:   ",",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Session: SessionConfig{
			ManifestPath: filepath.Join(".surveyq", "session.yaml"),
		},
		Display: DisplayConfig{
			TopN: 10,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("SURVEYQ_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if path := os.Getenv("SURVEYQ_MANIFEST"); path != "" {
		c.Session.ManifestPath = path
	}
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Classifier.Delimiter) != 1 {
		return fmt.Errorf("classifier.delimiter must be a single character, got %q", c.Classifier.Delimiter)
	}
	if c.Classifier.MaxUniqueRatio <= 0 || c.Classifier.MaxUniqueRatio > 1 {
		return fmt.Errorf("classifier.max_unique_ratio must be in (0, 1], got %v", c.Classifier.MaxUniqueRatio)
	}
	if c.Classifier.MaxOptions <= 0 {
		return fmt.Errorf("classifier.max_options must be positive, got %d", c.Classifier.MaxOptions)
	}
	if c.Loader.Workers <= 0 {
		return fmt.Errorf("loader.workers must be positive, got %d", c.Loader.Workers)
	}
	if utf8.RuneCountInString(c.Loader.Comma) != 1 {
		return fmt.Errorf("loader.comma must be a single character, got %q", c.Loader.Comma)
	}

	validLevel := false
	for _, l := range ValidLevels {
		if strings.EqualFold(c.Logging.Level, l) {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid logging format: %s (valid: console, json)", c.Logging.Format)
	}
	if c.Session.ManifestPath == "" {
		return errors.New("session.manifest_path is empty")
	}
	return nil
}

// CommaRune returns the CSV separator as a rune.
func (c *Config) CommaRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Loader.Comma)
	if r == utf8.RuneError {
		return ','
	}
	return r
}
