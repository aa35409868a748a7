package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	DbMaxOpenConns    int
	DbMaxIdleConns    int
	DbConnMaxLifetime time.Duration
	DbPingTimeout     time.Duration
	AutoMigrate       bool
	AllowedOrigins    []string
	TrustedProxies    []string
	TranslationFolder string
}

// LoadConfig reads .env (when present) and the process environment.
// A missing DATABASE_URL is fatal: the server refuses to start without storage.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:           getEnv("APP_NAME", "advanced-todo"),
		AppEnv:            getEnv("APP_ENV", EnvDevelopment),
		AppPort:           getEnv("APP_PORT", "4000"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DbMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DbMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DbConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DbPingTimeout:     getEnvAsDuration("DB_PING_TIMEOUT", 5*time.Second),
		AutoMigrate:       getEnvAsBool("AUTO_MIGRATE", false),
		AllowedOrigins:    parseList(getEnv("ALLOWED_ORIGINS", "*")),
		TrustedProxies:    parseList(os.Getenv("TRUSTED_PROXIES")),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
