package config

import (
	"ctchen222/tictactoe/internal/validator"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultPath = "config.yml"

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`
	LogFile   string    `yaml:"log-file" env:"TICTACTOE_LOG_FILE"`
	Bot       Bot       `yaml:"bot" env-prefix:"TICTACTOE_BOT_"`
	Display   Display   `yaml:"display" env-prefix:"TICTACTOE_DISPLAY_"`
	Telemetry Telemetry `yaml:"telemetry" env-prefix:"TICTACTOE_TELEMETRY_"`
}

type Bot struct {
	Difficulty string        `yaml:"difficulty" env:"DIFFICULTY" env-default:"hard" validate:"oneof=easy medium hard"`
	Parallel   bool          `yaml:"parallel" env:"PARALLEL" env-default:"false"`
	Seed       uint64        `yaml:"seed" env:"SEED" env-default:"0"`
	ThinkDelay time.Duration `yaml:"think-delay" env:"THINK_DELAY" env-default:"0s" validate:"gte=0"`
}

type Display struct {
	// Color is auto, always or never. Auto enables color on terminals only.
	Color string `yaml:"color" env:"COLOR" env-default:"auto" validate:"oneof=auto always never"`
	// NoClear keeps earlier boards on screen instead of redrawing in place.
	NoClear bool `yaml:"no-clear" env:"NO_CLEAR" env-default:"false"`
}

type Telemetry struct {
	// Endpoint is the OTLP gRPC collector address, e.g. localhost:4317.
	Endpoint    string `yaml:"endpoint" env:"ENDPOINT" validate:"omitempty,hostname_port"`
	TraceFile   string `yaml:"trace-file" env:"TRACE_FILE"`
	ServiceName string `yaml:"service-name" env:"SERVICE_NAME" env-default:"tictactoe" validate:"required"`
}

// Load reads the yaml file at path when it exists and environment variables
// otherwise. Environment variables override values from the file.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		err = cleanenv.ReadConfig(path, config)
	case errors.Is(err, fs.ErrNotExist):
		err = cleanenv.ReadEnv(config)
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the config values. Callers that override fields from flags
// should validate again.
func (c *Config) Validate() error {
	if err := validator.GetValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
