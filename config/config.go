// Package config loads the tracker settings from a YAML file, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Prefix of every environment variable read by Load.
const Prefix = "TRACKER_"

// Config holds application configuration.
type Config struct {
	Port           int    `yaml:"port"`
	LogLevel       string `yaml:"log_level"`
	LogPretty      bool   `yaml:"log_pretty"`
	Currency       string `yaml:"currency"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	PageSize       int    `yaml:"page_size"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:           8080,
		LogLevel:       "info",
		Currency:       "INR",
		MaxUploadBytes: 5 << 20,
		PageSize:       10,
	}
}

// Load reads configuration from .env, the YAML file named by TRACKER_CONFIG
// and the environment, in increasing order of precedence.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv(Prefix + "CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("cannot parse config file %q: %w", path, err)
	}
	return nil
}

// loadEnv overrides c with the TRACKER_ environment variables. Invalid values
// are all reported at once.
func (c *Config) loadEnv() error {
	var errs []error
	c.Port = getEnvAsInt("PORT", c.Port, &errs)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogPretty = getEnvAsBool("LOG_PRETTY", c.LogPretty, &errs)
	c.Currency = getEnv("CURRENCY", c.Currency)
	c.MaxUploadBytes = int64(getEnvAsInt("MAX_UPLOAD_BYTES", int(c.MaxUploadBytes), &errs))
	c.PageSize = getEnvAsInt("PAGE_SIZE", c.PageSize, &errs)
	return errors.Join(errs...)
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Errorf("invalid currency %q: must be an ISO 4217 code", c.Currency))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("invalid max upload size %d", c.MaxUploadBytes))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("invalid page size %d", c.PageSize))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(Prefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	value := os.Getenv(Prefix + key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s%s: %q is not an integer", Prefix, key, value))
		return defaultValue
	}
	return i
}

func getEnvAsBool(key string, defaultValue bool, errs *[]error) bool {
	value := os.Getenv(Prefix + key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s%s: %q is not a boolean", Prefix, key, value))
		return defaultValue
	}
	return b
}
