// Package config provides YAML-based game configuration loading and
// difficulty management for the tetris platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// TetrisConfig contains all tuning for the tetris engine.
type TetrisConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Timing      TimingConfig      `yaml:"timing"`
	Progression ProgressionConfig `yaml:"progression"`
	TugOfWar    TugOfWarConfig    `yaml:"tug_of_war"`
	CPU         CPUConfig         `yaml:"cpu"`
}

// BoardConfig defines the playfield.
type BoardConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	ClearTicks int `yaml:"clear_ticks"` // Ticks a completed row flashes before removal
}

// TimingConfig defines piece drop timing.
type TimingConfig struct {
	DefaultDropDelay time.Duration `yaml:"default_drop_delay"`
}

// ProgressionConfig defines how the human drop interval speeds up.
type ProgressionConfig struct {
	LinesPerLevel      int     `yaml:"lines_per_level"`
	LevelSpeedUpLimit  int     `yaml:"level_speed_up_limit"`
	SpeedIncreaseRatio float64 `yaml:"speed_increase_ratio"`
}

// TugOfWarConfig defines the health economy.
type TugOfWarConfig struct {
	Reward  int `yaml:"reward"`  // Per row, to the clearer
	Penalty int `yaml:"penalty"` // Per row, to the opponent
}

// CPUConfig defines the computer opponent.
type CPUConfig struct {
	DropDelays []time.Duration `yaml:"drop_delays"` // Indexed by difficulty tier
	Weights    CPUWeights      `yaml:"weights"`
}

// CPUWeights are the placement heuristic coefficients.
type CPUWeights struct {
	Height    float64 `yaml:"height"`
	Lines     float64 `yaml:"lines"`
	Holes     float64 `yaml:"holes"`
	Bumpiness float64 `yaml:"bumpiness"`
}

// Validate reports the first nonsensical value in the config.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Board.Width < 4 || c.Board.Height < 4 {
		errs = append(errs, fmt.Errorf("board must be at least 4x4, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if c.Board.ClearTicks < 1 {
		errs = append(errs, fmt.Errorf("board.clear_ticks must be positive, got %d", c.Board.ClearTicks))
	}
	if c.Timing.DefaultDropDelay <= 0 {
		errs = append(errs, fmt.Errorf("timing.default_drop_delay must be positive, got %v", c.Timing.DefaultDropDelay))
	}
	if c.Progression.LinesPerLevel < 1 {
		errs = append(errs, fmt.Errorf("progression.lines_per_level must be positive, got %d", c.Progression.LinesPerLevel))
	}
	if c.Progression.LevelSpeedUpLimit < 0 {
		errs = append(errs, fmt.Errorf("progression.level_speed_up_limit must not be negative, got %d", c.Progression.LevelSpeedUpLimit))
	}
	if ratio := c.Progression.SpeedIncreaseRatio * float64(c.Progression.LevelSpeedUpLimit); ratio >= 1 {
		errs = append(errs, fmt.Errorf("progression would reach a zero drop delay (ratio*limit = %.2f)", ratio))
	}
	if len(c.CPU.DropDelays) != DifficultyCount {
		errs = append(errs, fmt.Errorf("cpu.drop_delays must list %d tiers, got %d", DifficultyCount, len(c.CPU.DropDelays)))
	}
	for i, d := range c.CPU.DropDelays {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("cpu.drop_delays[%d] must be positive, got %v", i, d))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid tetris config: %w", err)
	}
	return nil
}
