package common

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Downstream DownstreamConfig `yaml:"downstream"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig holds upload and review-database paths
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
	DBPath  string `yaml:"db_path"`
}

// PipelineConfig holds the simulated pipeline timings
type PipelineConfig struct {
	StepDelay    time.Duration `yaml:"step_delay"`
	ExtractDelay time.Duration `yaml:"extract_delay"`
	SaveDelay    time.Duration `yaml:"save_delay"`
}

// DownstreamConfig holds the push endpoint; empty means log-only publication
type DownstreamConfig struct {
	URL string `yaml:"url"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "./data/uploads"),
			DBPath:  getEnv("REVIEW_DB_PATH", "./data/review.db"),
		},
		Pipeline: PipelineConfig{
			StepDelay:    getEnvAsDuration("PIPELINE_STEP_DELAY", 1200*time.Millisecond),
			ExtractDelay: getEnvAsDuration("PIPELINE_EXTRACT_DELAY", 3*time.Second),
			SaveDelay:    getEnvAsDuration("PIPELINE_SAVE_DELAY", 800*time.Millisecond),
		},
		Downstream: DownstreamConfig{
			URL: getEnv("DOWNSTREAM_URL", ""),
		},
	}
}

// LoadConfigFile overlays a YAML config file onto c.
func (c *Config) LoadConfigFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "server addr is required", ErrInvalidInput)
	}
	if c.Storage.DataDir == "" {
		return NewAppError("CONFIG_ERROR", "data dir is required", ErrInvalidInput)
	}
	if c.Storage.DBPath == "" {
		return NewAppError("CONFIG_ERROR", "review db path is required", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
