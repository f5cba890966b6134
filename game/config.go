package game

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"

	"github.com/ivomac/coup/engine"
)

// Config is the environment-derived simulation configuration.
type Config struct {
	NumSeats     int    `env:"COUP_SEATS,default=6"`
	NumAlive     int    `env:"COUP_ALIVE,default=0"` // 0 = all seats
	CardsPerRole int    `env:"COUP_CARDS_PER_ROLE,default=3"`
	DeadDraw     bool   `env:"COUP_DEAD_DRAW,default=false"`
	Seed         uint64 `env:"COUP_SEED,default=0"` // 0 = derive from the clock
	Games        int    `env:"COUP_GAMES,default=1"`
	LogLevel     string `env:"COUP_LOG_LEVEL,default=info"`
}

// FromEnv decodes the configuration from the process environment.
func FromEnv() (Config, error) {
	var c Config
	if err := envdecode.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// Rules maps the configuration onto engine table rules.
func (c Config) Rules() engine.Rules {
	return engine.Rules{
		NumSeats:     uint8(c.NumSeats),
		NumAlive:     uint8(c.NumAlive),
		CardsPerRole: uint8(c.CardsPerRole),
		DeadDraw:     c.DeadDraw,
	}
}

// Level parses the configured log level, defaulting to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
