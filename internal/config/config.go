package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the process level settings read from the environment
type Config struct {
	LogLevel  string
	LogFormat string

	// CompetitionsPath points at a JSON or YAML competitions file. Empty probes the default locations.
	CompetitionsPath string
}

// Load reads a .env file when present and then the environment
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		LogLevel:         envStr("LOG_LEVEL", "info"),
		LogFormat:        envStr("LOG_FORMAT", "json"),
		CompetitionsPath: envStr("COMPETITIONS_PATH", ""),
	}
}

// NewLogger builds the process logger. An unknown level falls back to info.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if c.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	// stdout carries the MCP stdio transport
	logger.SetOutput(os.Stderr)

	if err != nil {
		logger.WithField("log_level", c.LogLevel).Warn("Unknown log level, using info")
	}
	return logger
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
