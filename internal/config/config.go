// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the telemetry server.
type Config struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	StaticDir        string `yaml:"static_dir"`
	Workers          int    `yaml:"workers"`
	PostgresDSN      string `yaml:"postgres_dsn"`
	ClickhouseDSN    string `yaml:"clickhouse_dsn"`
	MetricsNamespace string `yaml:"metrics_namespace"`
	MaxUploadBytes   int64  `yaml:"max_upload_bytes"`
}

// Default returns a configuration that serves on all interfaces with
// in-memory storage only (empty DSNs disable the archive backends).
func Default() *Config {
	return &Config{
		Host:             "0.0.0.0",
		Port:             8000,
		StaticDir:        "static",
		Workers:          4,
		MetricsNamespace: "activity_telemetry_lab",
		MaxUploadBytes:   32 << 20,
	}
}

// Load reads the YAML file at configPath on top of the defaults.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", configPath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate performs basic configuration validation.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d", c.Port)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be greater than 0")
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
