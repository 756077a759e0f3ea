package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"smartnotes/pkg/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr       = ":8080"
	DefaultStaticDir  = "static"
	DefaultAPIVersion = "2024-02-15-preview"
	DefaultAITimeout  = 30 * time.Second
)

// AzureOpenAI holds the external provider settings.
type AzureOpenAI struct {
	Endpoint   string        `yaml:"endpoint"`
	APIKey     string        `yaml:"api_key"`
	Deployment string        `yaml:"deployment"`
	APIVersion string        `yaml:"api_version"`
	Timeout    time.Duration `yaml:"timeout"`
}

type Config struct {
	Addr      string      `yaml:"addr"`
	StaticDir string      `yaml:"static_dir"`
	JWTSecret string      `yaml:"jwt_secret"`
	LogLevel  string      `yaml:"log_level"`
	AI        AzureOpenAI `yaml:"ai"`
}

// Load builds the configuration from an optional YAML file, a .env file and
// the process environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	override(&cfg.Addr, "ADDR")
	override(&cfg.StaticDir, "STATIC_DIR")
	override(&cfg.JWTSecret, "API_JWT_SECRET")
	override(&cfg.LogLevel, "LOG_LEVEL")
	override(&cfg.AI.Endpoint, "AZURE_OPENAI_ENDPOINT")
	override(&cfg.AI.APIKey, "AZURE_OPENAI_API_KEY")
	override(&cfg.AI.Deployment, "AZURE_OPENAI_DEPLOYMENT")
	override(&cfg.AI.APIVersion, "AZURE_OPENAI_API_VERSION")

	if v := env("AI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AI_TIMEOUT %q: %w", v, err)
		}
		cfg.AI.Timeout = d
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.AI.APIVersion == "" {
		c.AI.APIVersion = DefaultAPIVersion
	}
	if c.AI.Timeout <= 0 {
		c.AI.Timeout = DefaultAITimeout
	}
	c.AI.Endpoint = strings.TrimSpace(c.AI.Endpoint)
	c.AI.APIKey = strings.TrimSpace(c.AI.APIKey)
	c.AI.Deployment = strings.TrimSpace(c.AI.Deployment)
}

// AIEnabled reports whether a real provider can be used. The deployment name
// is only needed for the call itself and does not gate the capability.
func (a AzureOpenAI) AIEnabled() bool {
	return a.Endpoint != "" && a.APIKey != ""
}

func override(dst *string, key string) {
	if v := env(key); v != "" {
		*dst = v
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
