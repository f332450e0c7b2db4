package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"quasim/quantum"
)

// Config holds application configuration
type Config struct {
	LogLevel     string
	LogPretty    bool
	DefaultShots int
	// Seed applies only when Seeded is true; otherwise sampling is
	// seeded from entropy.
	Seed   uint64
	Seeded bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     getEnv("QUASIM_LOG_LEVEL", "info"),
		LogPretty:    getEnvAsBool("QUASIM_LOG_PRETTY", true),
		DefaultShots: getEnvAsInt("QUASIM_SHOTS", 1000),
	}
	if value := os.Getenv("QUASIM_SEED"); value != "" {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, err
		}
		cfg.Seed = seed
		cfg.Seeded = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.DefaultShots < 0 {
		return &quantum.ShotCountError{Shots: c.DefaultShots}
	}
	return nil
}

// Simulator builds a simulator honoring the configured seed.
func (c *Config) Simulator() *quantum.Simulator {
	if c.Seeded {
		return quantum.NewSimulatorSeeded(c.Seed)
	}
	return quantum.NewSimulator()
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
