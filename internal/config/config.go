package config

import (
	"os"
	"strconv"

	"datalens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Sample SampleConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UploadConfig holds limits for incoming files
type UploadConfig struct {
	MaxBytes int64
}

// SampleConfig holds settings for the synthetic sample dataset
type SampleConfig struct {
	Seed uint64
	Rows int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    envOrDefault("SERVER_PORT", "8080"),
			GinMode: envOrDefault("GIN_MODE", "release"),
		},
		Upload: UploadConfig{
			MaxBytes: 25 * 1024 * 1024,
		},
		Sample: SampleConfig{
			Seed: 42,
			Rows: 200,
		},
	}

	if raw := os.Getenv("UPLOAD_MAX_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid UPLOAD_MAX_BYTES %q", raw)
		}
		if n <= 0 {
			return nil, errors.New("CONFIG_ERROR", "UPLOAD_MAX_BYTES must be positive")
		}
		config.Upload.MaxBytes = n
	}
	if raw := os.Getenv("SAMPLE_SEED"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid SAMPLE_SEED %q", raw)
		}
		config.Sample.Seed = n
	}
	if raw := os.Getenv("SAMPLE_ROWS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid SAMPLE_ROWS %q", raw)
		}
		if n <= 0 {
			return nil, errors.New("CONFIG_ERROR", "SAMPLE_ROWS must be positive")
		}
		config.Sample.Rows = n
	}

	return config, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
