package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port                   int `yaml:"port"`
	ReadTimeoutSeconds     int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds     int `yaml:"idle_timeout_seconds"`
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
}

type RateLimitConfig struct {
	Capacity      int `yaml:"capacity"`
	RefillSeconds int `yaml:"refill_seconds"`
}

// CacheConfig selects the result cache. Backend is "memory" or "redis".
type CacheConfig struct {
	Backend    string `yaml:"backend"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the main config struct that holds all configs
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache"`
	Redis     RedisConfig     `yaml:"redis"`
	History   HistoryConfig   `yaml:"history"`
	Logging   LogConfig       `yaml:"logging"`
}

func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:                   8080,
			ReadTimeoutSeconds:     15,
			WriteTimeoutSeconds:    15,
			IdleTimeoutSeconds:     60,
			ShutdownTimeoutSeconds: 10,
		},
		RateLimit: RateLimitConfig{Capacity: 5, RefillSeconds: 60},
		Cache:     CacheConfig{Backend: "memory", TTLSeconds: 86400},
		Redis:     RedisConfig{Addr: "localhost:6379"},
		History:   HistoryConfig{Capacity: 1000},
		Logging:   LogConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path and finally the environment. A .env file in the working directory is
// loaded first when present.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()
	if path != "" {
		// #nosec G304: the path comes from the operator's command line
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	assignEnvValues(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func assignEnvValues(cfg *AppConfig) {
	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", cfg.Server.Port)
	cfg.Server.ReadTimeoutSeconds = GetEnvOrDefaultAsInt("SERVER_READ_TIMEOUT_SECONDS", cfg.Server.ReadTimeoutSeconds)
	cfg.Server.WriteTimeoutSeconds = GetEnvOrDefaultAsInt("SERVER_WRITE_TIMEOUT_SECONDS", cfg.Server.WriteTimeoutSeconds)
	cfg.Server.IdleTimeoutSeconds = GetEnvOrDefaultAsInt("SERVER_IDLE_TIMEOUT_SECONDS", cfg.Server.IdleTimeoutSeconds)
	cfg.Server.ShutdownTimeoutSeconds = GetEnvOrDefaultAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", cfg.Server.ShutdownTimeoutSeconds)

	cfg.RateLimit.Capacity = GetEnvOrDefaultAsInt("RATE_LIMIT_CAPACITY", cfg.RateLimit.Capacity)
	cfg.RateLimit.RefillSeconds = GetEnvOrDefaultAsInt("RATE_LIMIT_REFILL_SECONDS", cfg.RateLimit.RefillSeconds)

	cfg.Cache.Backend = GetEnvOrDefaultAsString("CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.TTLSeconds = GetEnvOrDefaultAsInt("CACHE_TTL_SECONDS", cfg.Cache.TTLSeconds)

	cfg.Redis.Addr = GetEnvOrDefaultAsString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = GetEnvOrDefaultAsString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = GetEnvOrDefaultAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.History.Capacity = GetEnvOrDefaultAsInt("HISTORY_CAPACITY", cfg.History.Capacity)

	cfg.Logging.Level = GetEnvOrDefaultAsString("LOGGING_LEVEL", cfg.Logging.Level)
}

func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.RateLimit.Capacity <= 0 {
		return fmt.Errorf("rate limit capacity must be positive, got %d", c.RateLimit.Capacity)
	}
	if c.RateLimit.RefillSeconds <= 0 {
		return fmt.Errorf("rate limit refill must be positive, got %d", c.RateLimit.RefillSeconds)
	}
	switch strings.ToLower(c.Cache.Backend) {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("redis cache backend requires redis.addr")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

func (c *AppConfig) Addr() string { return ":" + strconv.Itoa(c.Server.Port) }

func (c *AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c *AppConfig) RefillInterval() time.Duration {
	return time.Duration(c.RateLimit.RefillSeconds) * time.Second
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func (s ServerConfig) ReadTimeout() time.Duration     { return seconds(s.ReadTimeoutSeconds) }
func (s ServerConfig) WriteTimeout() time.Duration    { return seconds(s.WriteTimeoutSeconds) }
func (s ServerConfig) IdleTimeout() time.Duration     { return seconds(s.IdleTimeoutSeconds) }
func (s ServerConfig) ShutdownTimeout() time.Duration { return seconds(s.ShutdownTimeoutSeconds) }

func GetEnvOrDefaultAsString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}
