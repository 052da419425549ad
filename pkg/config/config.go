package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported SQL dialects.
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectSQLite   = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	// Database
	Database    string
	DBUser      string
	Password    string
	Host        string
	DBPort      string
	Dialect     string
	AutoMigrate bool

	// RabbitMQ, empty disables event publishing
	RabbitMQURL string

	// PostHog exception reporting, empty key disables it
	PostHogAPIKey   string
	PostHogEndpoint string

	// API
	APIPort  string
	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Database:        getEnv("DATABASE", "library"),
		DBUser:          getEnv("DB_USER", "postgres"),
		Password:        getEnv("PASSWORD", "postgres"),
		Host:            getEnv("HOST", "localhost"),
		DBPort:          os.Getenv("DB_PORT"),
		Dialect:         strings.ToLower(getEnv("DIALECT", DialectPostgres)),
		AutoMigrate:     getBool("AUTO_MIGRATE", true),
		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
		PostHogAPIKey:   os.Getenv("POSTHOG_API_KEY"),
		PostHogEndpoint: getEnv("POSTHOG_ENDPOINT", "https://us.i.posthog.com"),
		APIPort:         getEnv("API_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports configuration the service cannot start with.
func (c *Config) Validate() error {
	switch c.Dialect {
	case DialectPostgres, DialectMySQL, DialectSQLite:
	default:
		return fmt.Errorf("unsupported DIALECT %q", c.Dialect)
	}
	if c.Database == "" {
		return fmt.Errorf("DATABASE must not be empty")
	}
	return nil
}

// Port returns DB_PORT or the default port of the dialect.
func (c *Config) Port() string {
	if c.DBPort != "" {
		return c.DBPort
	}
	switch c.Dialect {
	case DialectMySQL:
		return "3306"
	default:
		return "5432"
	}
}

// DSN builds the connection string for the configured dialect. For sqlite
// DATABASE is the file path.
func (c *Config) DSN() string {
	switch c.Dialect {
	case DialectMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.Password, c.Host, c.Port(), c.Database)
	case DialectSQLite:
		return c.Database
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.Host, c.DBUser, c.Password, c.Database, c.Port())
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
