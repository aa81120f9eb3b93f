package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Practice  PracticeConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

type AuthConfig struct {
	// JWTSecret signs practitioner tokens. Symmetric key for
	// single-practice deployments; an external IdP public key can
	// replace it without touching the middleware contract.
	JWTSecret string
	Issuer    string
}

// RateLimitConfig bounds per-IP request rates on the public API.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

// PracticeConfig identifies the practice running this instance.
// The name appears in exported report titles when set.
type PracticeConfig struct {
	Name string
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "platform"),
			Password: getEnv("DB_PASSWORD", "platform"),
			Database: getEnv("DB_NAME", "platform"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-prod"),
			Issuer:    getEnv("JWT_ISSUER", "gp-assess"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvInt("RATE_LIMIT_RPS", 50),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 100),
		},
		Practice: PracticeConfig{
			Name: getEnv("PRACTICE_NAME", ""),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
