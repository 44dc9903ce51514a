package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvAPIURL       = "TRANSCRIPTION_API_URL"
	EnvLegacyAPIURL = "REACT_APP_API_URL"
	EnvHost         = "UI_HOST"
	EnvPort         = "UI_PORT"
	EnvEnvironment  = "UI_ENV"
	EnvLogLevel     = "LOG_LEVEL"
	EnvSessionTTL   = "UI_SESSION_TTL"
	EnvReadTimeout  = "UI_READ_TIMEOUT"
	EnvIdleTimeout  = "UI_IDLE_TIMEOUT"
	EnvMaxUploadMB  = "UI_MAX_UPLOAD_MB"
)

// Config holds everything the client needs to reach the backend and serve the UI
type Config struct {
	APIURL      string        `validate:"required,url"`
	Host        string        `validate:"required"`
	Port        string        `validate:"required,numeric"`
	Environment string        `validate:"oneof=development production test"`
	LogLevel    string        `validate:"oneof=debug info warn error"`
	SessionTTL  time.Duration `validate:"gt=0"`
	ReadTimeout time.Duration `validate:"gt=0"`
	IdleTimeout time.Duration `validate:"gt=0"`
	// MaxUploadBytes bounds the body of one file selection
	MaxUploadBytes int64 `validate:"gt=0"`
}

var validate = validator.New()

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Variables may also be set system-wide, so a missing file is fine
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// FromEnv builds a Config from the current environment, applying defaults
func FromEnv() (*Config, error) {
	sessionTTL, err := getMinutes(EnvSessionTTL, DefaultSessionTTL)
	if err != nil {
		return nil, err
	}
	readTimeout, err := getSeconds(EnvReadTimeout, DefaultReadTimeout)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getSeconds(EnvIdleTimeout, DefaultIdleTimeout)
	if err != nil {
		return nil, err
	}

	maxUploadMB, err := getInt(EnvMaxUploadMB, DefaultMaxUploadMB)
	if err != nil {
		return nil, err
	}

	apiURL := strings.TrimSpace(os.Getenv(EnvAPIURL))
	if apiURL == "" {
		apiURL = strings.TrimSpace(os.Getenv(EnvLegacyAPIURL))
	}

	return &Config{
		APIURL:      NormalizeBaseURL(apiURL),
		Host:        getEnvOrDefault(EnvHost, DefaultHost),
		Port:        getEnvOrDefault(EnvPort, DefaultPort),
		Environment: getEnvOrDefault(EnvEnvironment, DefaultEnvironment),
		LogLevel:    strings.ToLower(getEnvOrDefault(EnvLogLevel, DefaultLogLevel)),
		SessionTTL:  sessionTTL,
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,

		MaxUploadBytes: int64(maxUploadMB) << 20,
	}, nil
}

// Validate checks struct tags first and then the hand-written rules
func (c *Config) Validate() error {
	if err := ValidateURL(c.APIURL, EnvAPIURL); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid configuration: %s failed %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := ValidatePort(c.Port, "UI"); err != nil {
		return err
	}
	if err := ValidateTimeout(c.ReadTimeout, "read"); err != nil {
		return err
	}
	return ValidateTimeout(c.IdleTimeout, "idle")
}

// IsProduction reports whether the UI runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr returns host:port for the web front
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// NormalizeBaseURL trims whitespace and trailing slashes so paths can be appended
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// InitializeConfig loads environment and validates configuration
// This is the main entry point for configuration loading
func InitializeConfig() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getSeconds(key string, fallback time.Duration) (time.Duration, error) {
	return getDuration(key, fallback, time.Second)
}

func getMinutes(key string, fallback time.Duration) (time.Duration, error) {
	return getDuration(key, fallback, time.Minute)
}

func getDuration(key string, fallback, unit time.Duration) (time.Duration, error) {
	n, err := getInt(key, int(fallback/unit))
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * unit, nil
}

func getInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a whole number", key, value)
	}
	return n, nil
}
