package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Quota   QuotaConfig   `yaml:"quota"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port               string `yaml:"port"`
	CORSAllowedOrigins string `yaml:"cors_allowed_origins"`
}

// QuotaConfig selects the limiter backend and the two request policies
type QuotaConfig struct {
	Backend      string        `yaml:"backend"`
	HourlyLimit  int           `yaml:"hourly_limit"`
	HourlyWindow time.Duration `yaml:"hourly_window"`
	DailyLimit   int           `yaml:"daily_limit"`
}

// StorageConfig holds connection strings for the external quota backends
type StorageConfig struct {
	RedisURI      string `yaml:"redis_uri"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	PostgresDSN   string `yaml:"postgres_dsn"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Default returns the configuration used when no file or environment is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8080",
			CORSAllowedOrigins: "*",
		},
		LLM: DefaultLLMConfig(),
		Quota: QuotaConfig{
			Backend:      BackendMemory,
			HourlyLimit:  10,
			HourlyWindow: time.Hour,
			DailyLimit:   3,
		},
		Storage: StorageConfig{
			RedisURI:      "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "realitycheck",
		},
		Auth: AuthConfig{
			JWTSecret: "dev-secret-change-in-production",
			TokenTTL:  30 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path (a
// missing file is not an error), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.CORSAllowedOrigins = getEnvOrDefault("CORS_ALLOWED_ORIGINS", c.Server.CORSAllowedOrigins)

	c.LLM.Provider = getEnvOrDefault("LLM_PROVIDER", c.LLM.Provider)
	c.LLM.OpenAIKey = getEnvOrDefault("OPENAI_API_KEY", c.LLM.OpenAIKey)
	c.LLM.AnthropicKey = getEnvOrDefault("ANTHROPIC_API_KEY", c.LLM.AnthropicKey)
	c.LLM.GeminiKey = getEnvOrDefault("GEMINI_API_KEY", c.LLM.GeminiKey)
	c.LLM.Model = getEnvOrDefault("LLM_MODEL", c.LLM.Model)
	c.LLM.BaseURL = getEnvOrDefault("LLM_BASE_URL", c.LLM.BaseURL)
	c.LLM.RPM = getEnvInt("LLM_RPM", c.LLM.RPM)

	c.Quota.Backend = getEnvOrDefault("QUOTA_BACKEND", c.Quota.Backend)
	c.Quota.HourlyLimit = getEnvInt("QUOTA_HOURLY_LIMIT", c.Quota.HourlyLimit)
	c.Quota.DailyLimit = getEnvInt("QUOTA_DAILY_LIMIT", c.Quota.DailyLimit)

	c.Storage.RedisURI = getEnvOrDefault("REDIS_URI", c.Storage.RedisURI)
	c.Storage.MongoURI = getEnvOrDefault("MONGO_URI", c.Storage.MongoURI)
	c.Storage.PostgresDSN = getEnvOrDefault("POSTGRES_DSN", c.Storage.PostgresDSN)

	c.Auth.JWTSecret = getEnvOrDefault("JWT_SECRET", c.Auth.JWTSecret)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnvOrDefault("LOG_FILE", c.Log.File)
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.Quota.Backend {
	case BackendMemory, BackendRedis, BackendMongo, BackendPostgres:
	default:
		return fmt.Errorf("unknown quota backend %q", c.Quota.Backend)
	}
	if c.Quota.Backend == BackendPostgres && c.Storage.PostgresDSN == "" {
		return errors.New("postgres quota backend requires POSTGRES_DSN")
	}
	if c.Quota.HourlyLimit < 1 || c.Quota.DailyLimit < 1 {
		return errors.New("quota limits must be positive")
	}
	if c.Quota.HourlyWindow <= 0 {
		return errors.New("quota hourly_window must be positive")
	}
	return c.LLM.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
