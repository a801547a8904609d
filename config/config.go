/* Copyright 2021, Arkadiusz Zarychta */

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds the solver configuration
type Config struct {
	// Engine selects the solver engine
	Engine string `yaml:"engine" validate:"required,oneof=gophersat bnb"`

	// TimeLimit is the wall clock budget of a solve in seconds
	TimeLimit float64 `yaml:"max_time_in_seconds" validate:"gt=0"`

	// GapTolerance is the reported optimality gap tolerance in percent
	GapTolerance float64 `yaml:"gap_tolerance" validate:"gte=0,lte=20"`

	// Logging
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`
	Environment string `yaml:"environment" validate:"oneof=development production"`
}

var validate = validator.New()

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Engine:       "gophersat",
		TimeLimit:    10,
		GapTolerance: 0,
		LogLevel:     "info",
		Environment:  "development",
	}
}

// Load reads the optional yaml file at path, applies environment overrides
// and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	c.Engine = getEnv("TSPCUT_ENGINE", c.Engine)
	c.LogLevel = getEnv("TSPCUT_LOG_LEVEL", c.LogLevel)
	c.Environment = getEnv("TSPCUT_ENV", c.Environment)
	if c.TimeLimit, err = getEnvFloat("TSPCUT_TIME_LIMIT", c.TimeLimit); err != nil {
		return err
	}
	if c.GapTolerance, err = getEnvFloat("TSPCUT_GAP", c.GapTolerance); err != nil {
		return err
	}
	return nil
}

// Validate checks the configuration against its field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed on %s=%s (value %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NewLogger creates the logger for the configured environment and level.
func NewLogger(c *Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	if c.IsProduction() {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	return zc.Build()
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
