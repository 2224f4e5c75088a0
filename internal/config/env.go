package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds settings that can come from the environment. CLI flags that are
// explicitly set take precedence over these.
type Env struct {
	DBPath    string `env:"TETRIS_DB"        envDefault:"~/.tetris/scores.db"`
	TickRate  int    `env:"TETRIS_TICK_RATE" envDefault:"60"`
	LogFile   string `env:"TETRIS_LOG_FILE"`
	LogLevel  string `env:"TETRIS_LOG_LEVEL" envDefault:"info"`
	Telemetry bool   `env:"TETRIS_TELEMETRY" envDefault:"false"`
}

// LoadEnv reads an optional .env file from the working directory and then
// parses TETRIS_* variables.
func LoadEnv() (Env, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Env{}, fmt.Errorf("config: load .env: %w", err)
	}

	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}
