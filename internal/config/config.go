// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/streamflix/streamflix/internal/constants"
)

const (
	// Default configuration file name
	defaultConfigFile = "config.json"

	// Fallback secret used when SECRET_KEY is unset. Fine for local
	// development, never for a deployed instance.
	devSecretKey = "streamflix-secret-key-2025"
)

// Config holds the application configuration.
// It supports loading from environment variables and JSON files;
// environment variables take precedence over file values.
type Config struct {
	// Server settings
	SecretKey string `json:"SECRET_KEY"`
	Port      string `json:"PORT"`

	// Storage settings
	DatabasePath string `json:"DATABASE_PATH"`
	ProgressPath string `json:"PROGRESS_DB_PATH"`
	DataDir      string `json:"DATA_DIR"`
	UploadDir    string `json:"UPLOAD_DIR"`

	// Mail settings for password reset
	MailServer   string `json:"MAIL_SERVER"`
	MailPort     int    `json:"MAIL_PORT"`
	MailUsername string `json:"MAIL_USERNAME"`
	MailPassword string `json:"MAIL_PASSWORD"`
	MailSimulate bool   `json:"MAIL_SIMULATE"`

	// OTP settings
	OTPExpiryMinutes int `json:"OTP_EXPIRY_MINUTES"`

	// Catalog cache settings
	CacheSize int           `json:"CACHE_SIZE"`
	CacheTTL  time.Duration `json:"-"`
}

// Load reads configuration from an optional JSON file and environment
// variables, then validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		SecretKey:        devSecretKey,
		Port:             constants.DefaultPort,
		DatabasePath:     constants.DefaultDatabasePath,
		ProgressPath:     constants.DefaultProgressPath,
		DataDir:          constants.DefaultDataDir,
		UploadDir:        constants.DefaultUploadDir,
		MailServer:       constants.DefaultMailServer,
		MailPort:         constants.DefaultMailPort,
		OTPExpiryMinutes: constants.DefaultOTPExpiryMinutes,
		CacheSize:        constants.DefaultCacheSize,
		CacheTTL:         time.Duration(constants.DefaultCacheTTL) * time.Minute,
	}

	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		// Ignore file not found errors
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() {
	setIfPresent(&c.SecretKey, "SECRET_KEY")
	setIfPresent(&c.Port, "PORT")
	setIfPresent(&c.DatabasePath, "DATABASE_PATH")
	setIfPresent(&c.ProgressPath, "PROGRESS_DB_PATH")
	setIfPresent(&c.DataDir, "DATA_DIR")
	setIfPresent(&c.UploadDir, "UPLOAD_DIR")
	setIfPresent(&c.MailServer, "MAIL_SERVER")
	setIfPresent(&c.MailUsername, "MAIL_USERNAME")
	setIfPresent(&c.MailPassword, "MAIL_PASSWORD")

	if v := os.Getenv("MAIL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MailPort = port
		}
	}
	if v := os.Getenv("MAIL_SIMULATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.MailSimulate = b
		}
	}
	if v := os.Getenv("OTP_EXPIRY_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			c.OTPExpiryMinutes = minutes
		}
	}
}

// loadFromFile loads configuration from a JSON file.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, c)
}

// Validate checks if the configuration is valid.
// Mail delivery falls back to simulate mode when credentials are absent,
// so an unset SMTP account is not an error.
func (c *Config) Validate() error {
	if c.OTPExpiryMinutes <= 0 {
		return fmt.Errorf("OTP_EXPIRY_MINUTES must be positive, got %d", c.OTPExpiryMinutes)
	}
	if c.MailPort <= 0 || c.MailPort > 65535 {
		return fmt.Errorf("MAIL_PORT out of range: %d", c.MailPort)
	}

	if c.MailUsername == "" || c.MailPassword == "" {
		c.MailSimulate = true
	}

	if c.CacheSize <= 0 {
		c.CacheSize = constants.DefaultCacheSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Duration(constants.DefaultCacheTTL) * time.Minute
	}

	return nil
}

// OTPExpiry returns the challenge lifetime as a duration.
func (c *Config) OTPExpiry() time.Duration {
	return time.Duration(c.OTPExpiryMinutes) * time.Minute
}

func setIfPresent(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
