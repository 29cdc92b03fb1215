package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration, loaded from the environment.
type Config struct {
	RunAddress  string
	DatabaseURI string
	JWTSecret   string
	JWTTokenTTL time.Duration
	LogLevel    string
}

// Load reads configuration from environment variables, applying defaults
// for everything except the database URI.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("RUN_ADDRESS", ":8080")
	viper.SetDefault("JWT_SECRET", "default-secret-key-change-in-production")
	viper.SetDefault("JWT_TOKEN_TTL", "24h")
	viper.SetDefault("LOG_LEVEL", "info")

	tokenTTL, err := time.ParseDuration(viper.GetString("JWT_TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		RunAddress:  viper.GetString("RUN_ADDRESS"),
		DatabaseURI: viper.GetString("DATABASE_URI"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		JWTTokenTTL: tokenTTL,
		LogLevel:    viper.GetString("LOG_LEVEL"),
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI is required (DATABASE_URI env)")
	}

	return cfg, nil
}
