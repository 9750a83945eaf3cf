// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the runner's settings. Every field has a usable default so
// the simulation starts with no environment at all.
type Config struct {
	Seed        int64  `env:"WILDERMARK_SEED" envDefault:"42"`
	Turns       int    `env:"WILDERMARK_TURNS" envDefault:"0"`
	DBPath      string `env:"WILDERMARK_DB" envDefault:"data/wildermark.db"`
	WorldWidth  int    `env:"WILDERMARK_WIDTH" envDefault:"80"`
	WorldHeight int    `env:"WILDERMARK_HEIGHT" envDefault:"80"`
	Settlements int    `env:"WILDERMARK_SETTLEMENTS" envDefault:"12"`
	Countries   int    `env:"WILDERMARK_COUNTRIES" envDefault:"3"`
	SaveEvery   int    `env:"WILDERMARK_SAVE_EVERY" envDefault:"50"`
	LogLevel    string `env:"WILDERMARK_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WorldWidth < 10 || cfg.WorldHeight < 10 {
		return cfg, fmt.Errorf("world size %dx%d too small", cfg.WorldWidth, cfg.WorldHeight)
	}
	return cfg, nil
}
