package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Media     MediaConfig     `yaml:"media"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	// Path to the SQLite file. Empty means ~/.launchpad/projects.db.
	Path string `yaml:"path"`
}

type MediaConfig struct {
	Root string `yaml:"root"`
}

type TransportConfig struct {
	// Mode is "http" (REST API plus MCP endpoint) or "stdio" (MCP only).
	Mode string `yaml:"mode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 5001,
		},
		Media: MediaConfig{
			Root: "media/uploads",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("LAUNCHPAD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("LAUNCHPAD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("LAUNCHPAD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LAUNCHPAD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("LAUNCHPAD_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if mediaRoot := os.Getenv("LAUNCHPAD_MEDIA_ROOT"); mediaRoot != "" {
		cfg.Media.Root = mediaRoot
	}
	if mode := os.Getenv("LAUNCHPAD_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("LAUNCHPAD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

// DBPath resolves the configured database path, defaulting to
// ~/.launchpad/projects.db.
func (c Config) DBPath() (string, error) {
	if c.DB.Path != "" {
		return c.DB.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".launchpad", "projects.db"), nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
