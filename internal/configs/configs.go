package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"ai-notebook.com/ai-notebook/internal/ai"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	AppURL                 string
	StorageDriver          string
	StoragePrefix          string
	DatabaseDSN            string
	RedisAddr              string
	PostgresDSN            string
	RateLimit              int
	ShutdownTimeoutSeconds int
	LogLevel               string
	SeedSampleData         bool
	CurrentUser            User
	AI                     ai.Config
}

// User is the acting user; there is no authentication, so every request
// runs as this member.
type User struct {
	ID    string
	Name  string
	Email string
}

func Load() (Config, error) {
	var errs []string
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		StorageDriver:          strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		StoragePrefix:          getEnv("STORAGE_PREFIX", "ai-notebook-"),
		DatabaseDSN:            getEnv("DATABASE_DSN", "notebook.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		PostgresDSN:            getEnv("POSTGRES_DSN", ""),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60, &errs),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20, &errs),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		SeedSampleData:         getEnvAsBool("SEED_SAMPLE_DATA", false, &errs),
		CurrentUser: User{
			ID:    getEnv("CURRENT_USER_ID", "current-user"),
			Name:  getEnv("CURRENT_USER_NAME", "Current User"),
			Email: getEnv("CURRENT_USER_EMAIL", "user@example.com"),
		},
		AI: ai.Config{
			APIKey:      getEnv("OPENROUTER_API_KEY", ""),
			BaseURL:     getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:       getEnv("OPENROUTER_MODEL", "deepseek/deepseek-chat-v3.1"),
			Temperature: getEnvAsFloat("AI_TEMPERATURE", 0.7, &errs),
			MaxTokens:   getEnvAsInt("AI_MAX_TOKENS", 1000, &errs),
			AppURL:      getEnv("OPENROUTER_APP_URL", "http://localhost:3000"),
			AppTitle:    getEnv("OPENROUTER_APP_TITLE", "AI Notebook"),
		},
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.StorageDriver {
	case DriverMemory, DriverRedis:
	case DriverSQLite:
		if cfg.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN must not be empty when STORAGE_DRIVER is sqlite")
		}
	case DriverPostgres:
		if cfg.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN must not be empty when STORAGE_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, sqlite, redis, postgres (got %q)", cfg.StorageDriver)
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.AI.MaxTokens <= 0 {
		return fmt.Errorf("AI_MAX_TOKENS must be greater than 0")
	}
	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 2 {
		return fmt.Errorf("AI_TEMPERATURE must be between 0 and 2")
	}
	if cfg.CurrentUser.ID == "" {
		return fmt.Errorf("CURRENT_USER_ID must not be empty")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int, errs *[]string) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Sprintf("invalid integer value for %s", key))
			return defaultVal
		}
		return i
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64, errs *[]string) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*errs = append(*errs, fmt.Sprintf("invalid number value for %s", key))
			return defaultVal
		}
		return f
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool, errs *[]string) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			*errs = append(*errs, fmt.Sprintf("invalid boolean value for %s", key))
			return defaultVal
		}
		return b
	}
	return defaultVal
}
