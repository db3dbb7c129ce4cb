package engine

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the engine's tunable surface, read from ASCENT_* environment
// variables. Front ends may override individual fields from flags before
// handing it to New.
type Config struct {
	SavePath         string        `env:"ASCENT_SAVE_PATH" envDefault:"ascent-save.json"`
	SimulationHz     int           `env:"ASCENT_SIM_HZ" envDefault:"60"`
	MaxCatchUpSteps  int           `env:"ASCENT_MAX_CATCHUP_STEPS" envDefault:"5"`
	AutosaveInterval time.Duration `env:"ASCENT_AUTOSAVE_INTERVAL" envDefault:"30s"`
	WindowWidth      int           `env:"ASCENT_WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight     int           `env:"ASCENT_WINDOW_HEIGHT" envDefault:"720"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SavePath == "" {
		return fmt.Errorf("config: save path must not be empty")
	}
	if c.SimulationHz < 1 {
		return fmt.Errorf("config: simulation rate must be at least 1 Hz, got %d", c.SimulationHz)
	}
	if c.MaxCatchUpSteps < 1 {
		return fmt.Errorf("config: catch-up step cap must be at least 1, got %d", c.MaxCatchUpSteps)
	}
	if c.AutosaveInterval <= 0 {
		return fmt.Errorf("config: autosave interval must be positive, got %s", c.AutosaveInterval)
	}
	if c.WindowWidth < 320 || c.WindowHeight < 240 {
		return fmt.Errorf("config: window size %dx%d is too small", c.WindowWidth, c.WindowHeight)
	}
	return nil
}

// FixedStep returns the simulation step size for the configured rate.
func (c Config) FixedStep() time.Duration {
	return time.Second / time.Duration(c.SimulationHz)
}
