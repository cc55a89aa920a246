package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Logging LoggingConfig
	IO      IOConfig
}

type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

type IOConfig struct {
	ReadBufferSize  int // bytes
	WriteBufferSize int // bytes
}

// Load reads the configuration from the process environment
func Load() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  getEnvString("LTOOLS_LOG_LEVEL", "warn"),
			Format: getEnvString("LTOOLS_LOG_FORMAT", "text"),
		},
		IO: IOConfig{
			ReadBufferSize:  getEnvInt("LTOOLS_READ_BUFFER", 64*1024),
			WriteBufferSize: getEnvInt("LTOOLS_WRITE_BUFFER", 64*1024),
		},
	}
}

// LoadFile loads variables from a dotenv file into the environment and then
// calls Load. Variables already set in the environment take precedence.
// An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated and numeric settings
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}

	if c.IO.ReadBufferSize <= 0 || c.IO.WriteBufferSize <= 0 {
		return fmt.Errorf("buffer sizes must be positive")
	}
	return nil
}

func (c *Config) Print() {
	slog.Debug("Configuration loaded",
		"log_level", c.Logging.Level,
		"log_format", c.Logging.Format,
		"read_buffer", c.IO.ReadBufferSize,
		"write_buffer", c.IO.WriteBufferSize,
	)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
