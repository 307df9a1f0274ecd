package server

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the viewer server settings, loaded from the environment
// with sensible defaults
type Config struct {
	Host           string
	Port           int
	AllowedOrigins []string
	Environment    string
	// IoUThreshold is the minimum IoU for the comparison run
	IoUThreshold float64
}

// LoadConfig reads the server configuration from environment variables
func LoadConfig() Config {
	return Config{
		Host:           getEnv("ANNOCMP_HOST", "0.0.0.0"),
		Port:           getEnvAsInt("ANNOCMP_PORT", 8080),
		AllowedOrigins: getEnvAsStringSlice("ANNOCMP_ALLOWED_ORIGINS", []string{"*"}),
		Environment:    getEnv("ANNOCMP_ENV", "development"),
		IoUThreshold:   getEnvAsFloat("ANNOCMP_IOU_THRESHOLD", 0.5),
	}
}

// Validate checks the configuration for out of range values
func (c Config) Validate() error {

	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, "port must be between 1 and 65535")
	}

	if c.IoUThreshold <= 0 || c.IoUThreshold > 1 {
		problems = append(problems, "IoU threshold must be in (0, 1]")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s",
			strings.Join(problems, ", "))
	}

	return nil
}

// Addr returns the host:port listen address
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
