package main

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	DBDSN       string
	JWTSecret   string
	RedisAddr   string
	AutoMigrate bool
	UploadBase  string
	LogLevel    string
	LogFormat   string
}

// LoadConfig builds the configuration from environment variables. Only
// DB_DSN is mandatory; everything else has a working default.
func LoadConfig() (*Config, error) {
	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	cfg := &Config{
		Port:        getEnv("PORT", "8081"),
		DBDSN:       getEnv("DB_DSN", ""),
		JWTSecret:   secret,
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		AutoMigrate: true,
		UploadBase:  getEnv("UPLOAD_BASE", "uploads"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
	}
	switch strings.ToLower(os.Getenv("DB_AUTO_MIGRATE")) {
	case "false", "0", "no":
		cfg.AutoMigrate = false
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
