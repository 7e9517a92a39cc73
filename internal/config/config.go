package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API         APIConfig         `yaml:"api"`
	Annotations AnnotationsConfig `yaml:"annotations"`
	Batch       BatchConfig       `yaml:"batch"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutMinutes int    `yaml:"timeout_minutes"`
}

type AnnotationsConfig struct {
	URL string `yaml:"url"`
}

type BatchConfig struct {
	PaceMS int `yaml:"pace_ms"`
}

type PathsConfig struct {
	DataDir   string `yaml:"data_dir"`
	WatchDir  string `yaml:"watch_dir"`
	ExportDir string `yaml:"export_dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML config at path, applies environment overrides and
// fills in defaults. A missing file is not an error; the defaults plus
// environment are enough to run. A .env file in the working directory is
// honored before the environment is read.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env + defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.API.BaseURL = envOrDefault("MJT_API_BASE_URL", c.API.BaseURL)
	c.Annotations.URL = envOrDefault("MJT_ANNOTATIONS_URL", c.Annotations.URL)
	c.Paths.DataDir = envOrDefault("MJT_DATA_DIR", c.Paths.DataDir)
	c.Paths.WatchDir = envOrDefault("MJT_WATCH_DIR", c.Paths.WatchDir)
	c.Paths.ExportDir = envOrDefault("MJT_EXPORT_DIR", c.Paths.ExportDir)
	c.Logging.Level = envOrDefault("MJT_LOG_LEVEL", c.Logging.Level)

	if v, err := parseIntEnv("MJT_BATCH_PACE_MS", int64(c.Batch.PaceMS)); err == nil {
		c.Batch.PaceMS = int(v)
	}
}

func (c *Config) Validate() error {
	if c.API.TimeoutMinutes < 0 {
		return fmt.Errorf("api.timeout_minutes must not be negative")
	}
	if c.Batch.PaceMS < 0 {
		return fmt.Errorf("batch.pace_ms must not be negative")
	}

	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://127.0.0.1:8000"
	}
	if c.API.TimeoutMinutes == 0 {
		c.API.TimeoutMinutes = 10
	}
	if c.Batch.PaceMS == 0 {
		c.Batch.PaceMS = 1000
	}
	if c.Paths.DataDir == "" {
		c.Paths.DataDir = DefaultDataDir()
	}
	if c.Paths.ExportDir == "" {
		c.Paths.ExportDir = "exports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// DefaultDataDir returns the per-user data directory.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".mjtranscripciones")
}

// APITimeout returns the remote client timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutMinutes) * time.Minute
}

// Pace returns the inter-item delay used by batch processing.
func (c *Config) Pace() time.Duration {
	return time.Duration(c.Batch.PaceMS) * time.Millisecond
}

// InstructionsDBPath returns the SQLite path for the instruction store.
func (c *Config) InstructionsDBPath() string {
	return filepath.Join(c.Paths.DataDir, "instructions.sqlite")
}

// LogFilePath returns the log destination used while the TUI owns stdout.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.DataDir, "mjtranscripciones.log")
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseIntEnv(key string, fallback int64) (int64, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}

	num, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return num, nil
}
