package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort = 3000
	defaultEnv  = "development"
	defaultDSN  = "root:password@tcp(127.0.0.1:3306)/linguamate?charset=utf8mb4&parseTime=True&loc=Local"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port      int    `yaml:"port"`
	DSN       string `yaml:"dsn"` // MySQL DSN
	RedisURL  string `yaml:"redis_url"`
	Env       string `yaml:"env"` // "development" | "production"
	JWTSecret string `yaml:"jwt_secret"`
	ClientURL string `yaml:"client_url"`

	Assets  AssetsConfig  `yaml:"assets"`
	ChatDir ChatDirConfig `yaml:"chat_directory"`
}

// AssetsConfig configures the S3-compatible avatar/image host.
type AssetsConfig struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// ChatDirConfig configures the best-effort chat-directory sync service.
type ChatDirConfig struct {
	Enable    bool   `yaml:"enable"`
	Endpoint  string `yaml:"endpoint"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
}

// Load reads the YAML config at path, applies LM_* environment overrides and
// defaults, and validates the result. A missing file is not an error; env and
// defaults alone can carry a dev setup.
func Load(path string) (*AppConfig, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigPath
	}

	cfg := &AppConfig{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// fall through to env + defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("LM_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("LM_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("LM_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("LM_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("LM_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("LM_CLIENT_URL"); v != "" {
		cfg.ClientURL = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		cfg.DSN = defaultDSN
	}
	env := strings.ToLower(strings.TrimSpace(cfg.Env))
	switch env {
	case "development", "production":
		cfg.Env = env
	default:
		cfg.Env = defaultEnv
	}
}

func (c *AppConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if !c.IsDev() && strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("jwt_secret is required in production")
	}
	if c.Assets.Enable {
		if c.Assets.Bucket == "" || c.Assets.Region == "" {
			return errors.New("assets: bucket and region are required when enabled")
		}
	}
	if c.ChatDir.Enable && strings.TrimSpace(c.ChatDir.Endpoint) == "" {
		return errors.New("chat_directory: endpoint is required when enabled")
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }
