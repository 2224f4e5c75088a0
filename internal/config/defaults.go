package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in tetris configuration.
// It mirrors defaults/tetris.yaml and is used if the embedded file fails to parse.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:      10,
			Height:     20,
			ClearTicks: 18,
		},
		Timing: TimingConfig{
			DefaultDropDelay: time.Second,
		},
		Progression: ProgressionConfig{
			LinesPerLevel:      10,
			LevelSpeedUpLimit:  15,
			SpeedIncreaseRatio: 0.05,
		},
		TugOfWar: TugOfWarConfig{
			Reward:  1,
			Penalty: -3,
		},
		CPU: CPUConfig{
			DropDelays: []time.Duration{
				750 * time.Millisecond,
				600 * time.Millisecond,
				333 * time.Millisecond,
				100 * time.Millisecond,
				75 * time.Millisecond,
			},
			Weights: CPUWeights{
				Height:    -0.51,
				Lines:     0.76,
				Holes:     -0.36,
				Bumpiness: -0.18,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris":
		return defaultTetrisYAML
	default:
		return nil
	}
}
