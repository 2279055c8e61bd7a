package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	DB         DBConfig         `yaml:"db"`
	Log        LogConfig        `yaml:"log"`
	Generation GenerationConfig `yaml:"generation"`
	Billing    BillingConfig    `yaml:"billing"`
	Auth       AuthConfig       `yaml:"auth"`
	Transport  TransportConfig  `yaml:"transport"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// GenerationConfig controls the model-backed stage generator.
type GenerationConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// BillingConfig carries the portal URL surfaced when an owner runs out
// of credits.
type BillingConfig struct {
	PortalURL string `yaml:"portal_url"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TransportConfig selects how the server speaks MCP: "stdio" for local
// clients or "http" for hosted deployments.
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "venturly.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Generation: GenerationConfig{
			Model:   "gemini-2.0-flash",
			Timeout: 45 * time.Second,
		},
		Billing: BillingConfig{
			PortalURL: "https://venturly.app/billing",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
	}

	if path := os.Getenv("VENTURLY_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("VENTURLY_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("VENTURLY_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid VENTURLY_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("VENTURLY_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("VENTURLY_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if key := os.Getenv("VENTURLY_GENAI_API_KEY"); key != "" {
		cfg.Generation.APIKey = key
	}
	if model := os.Getenv("VENTURLY_GENAI_MODEL"); model != "" {
		cfg.Generation.Model = model
	}
	if timeoutStr := os.Getenv("VENTURLY_GENAI_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid VENTURLY_GENAI_TIMEOUT: %w", err)
		}
		cfg.Generation.Timeout = timeout
	}
	if portal := os.Getenv("VENTURLY_BILLING_PORTAL_URL"); portal != "" {
		cfg.Billing.PortalURL = portal
	}
	if mode := os.Getenv("VENTURLY_TRANSPORT_MODE"); mode != "" {
		if mode != "stdio" && mode != "http" {
			return Config{}, fmt.Errorf("invalid VENTURLY_TRANSPORT_MODE: %q", mode)
		}
		cfg.Transport.Mode = mode
	}
	if enabledStr := os.Getenv("VENTURLY_AUTH_ENABLED"); enabledStr != "" {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid VENTURLY_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = enabled
	}

	return cfg, nil
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
