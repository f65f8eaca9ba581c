// Package config loads runtime configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	// Admin bootstrap credentials. The admin identity is authenticated
	// against this pair, not against a stored hash.
	AdminEmail    string
	AdminPassword string

	ResendAPIKey string
	ResendFrom   string

	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string

	CORSOrigins   []string
	RunMigrations bool
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:          fallback(os.Getenv("PORT"), "8080"),
		DBHost:        fallback(os.Getenv("DB_HOST"), "localhost"),
		DBPort:        fallback(os.Getenv("DB_PORT"), "5432"),
		DBUser:        strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword:    strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBName:        strings.TrimSpace(os.Getenv("DB_NAME")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		ResendAPIKey:  strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		ResendFrom:    fallback(os.Getenv("RESEND_FROM_EMAIL"), "noreply@eliteassociate.in"),
		S3Bucket:      strings.TrimSpace(os.Getenv("AWS_BUCKET_NAME")),
		S3Region:      fallback(os.Getenv("AWS_REGION"), "ap-south-1"),
		S3AccessKey:   strings.TrimSpace(os.Getenv("AWS_ACCESS_KEY_ID")),
		S3SecretKey:   strings.TrimSpace(os.Getenv("AWS_SECRET_ACCESS_KEY")),
		S3Endpoint:    strings.TrimSpace(os.Getenv("AWS_S3_ENDPOINT")),
		CORSOrigins:   parseCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}

	if cfg.DBUser == "" || cfg.DBName == "" {
		return Config{}, errors.New("DB_USER and DB_NAME are required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// DSN returns the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return ":" + c.Port
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
