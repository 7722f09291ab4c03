// Package config provides configuration for the LearnHub backend.
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

// Config holds the backend configuration.
type Config struct {
	// Server settings
	HTTPPort        int           `yaml:"http_port"`
	RoutePrefix     string        `yaml:"route_prefix"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Database
	DatabaseURL       string        `yaml:"database_url"`
	StoreQueryTimeout time.Duration `yaml:"store_query_timeout"`

	// Inference service
	InferenceURL       string        `yaml:"inference_url"`
	InferenceAPIKey    string        `yaml:"inference_api_key"`
	InferenceTimeout   time.Duration `yaml:"inference_timeout"`
	AssistantMode      string        `yaml:"assistant_mode"`
	DefaultPromptType  string        `yaml:"default_prompt_type"`
	ExposeErrorDetails bool          `yaml:"expose_error_details"`

	// Admission policy
	PolicyFile       string `yaml:"policy_file"`
	MaxMessageLength int    `yaml:"max_message_length"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		HTTPPort:           8080,
		RoutePrefix:        "/user",
		ShutdownTimeout:    10 * time.Second,
		DatabaseURL:        "file:learnhub.db?mode=rwc&_busy_timeout=5000&_journal_mode=WAL",
		StoreQueryTimeout:  5 * time.Second,
		InferenceTimeout:   60 * time.Second,
		DefaultPromptType:  "improved",
		ExposeErrorDetails: true,
		LogLevel:           "info",
		LogFormat:          "json",
	}
}

// Load loads configuration from a .env file (if present), an optional YAML
// file named by CONFIG_FILE, and environment variables, in that order of
// increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	cfg.bound()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTPPort = getEnvInt("HTTP_PORT", c.HTTPPort)
	c.RoutePrefix = getEnv("ROUTE_PREFIX", c.RoutePrefix)
	c.ShutdownTimeout = getEnvMillis("SHUTDOWN_TIMEOUT_MS", c.ShutdownTimeout)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.StoreQueryTimeout = getEnvMillis("STORE_QUERY_TIMEOUT_MS", c.StoreQueryTimeout)
	// FLASK_URL is the name the first deployment used for the inference endpoint.
	c.InferenceURL = getEnv("INFERENCE_URL", getEnv("FLASK_URL", c.InferenceURL))
	c.InferenceAPIKey = getEnv("INFERENCE_API_KEY", c.InferenceAPIKey)
	c.InferenceTimeout = getEnvMillis("INFERENCE_TIMEOUT_MS", c.InferenceTimeout)
	c.AssistantMode = getEnv("ASSISTANT_MODE", c.AssistantMode)
	c.DefaultPromptType = getEnv("DEFAULT_PROMPT_TYPE", c.DefaultPromptType)
	c.ExposeErrorDetails = getEnvBool("EXPOSE_ERROR_DETAILS", c.ExposeErrorDetails)
	c.PolicyFile = getEnv("ASSISTANT_POLICY_FILE", c.PolicyFile)
	c.MaxMessageLength = getEnvInt("ASSISTANT_MAX_MESSAGE_LENGTH", c.MaxMessageLength)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
}

// bound restores defaults for timeouts a config file left unset or set
// to a non-positive value. Every outbound call must stay bounded.
func (c *Config) bound() {
	def := Default()
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	if c.StoreQueryTimeout <= 0 {
		c.StoreQueryTimeout = def.StoreQueryTimeout
	}
	if c.InferenceTimeout <= 0 {
		c.InferenceTimeout = def.InferenceTimeout
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvMillis(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
