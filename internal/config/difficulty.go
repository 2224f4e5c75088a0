package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset names one of the five CPU tiers.
type DifficultyPreset string

const (
	DifficultyVeryEasy DifficultyPreset = "very_easy"
	DifficultyEasy     DifficultyPreset = "easy"
	DifficultyMedium   DifficultyPreset = "medium"
	DifficultyHard     DifficultyPreset = "hard"
	DifficultyVeryHard DifficultyPreset = "very_hard"
)

// DifficultyCount is the number of CPU tiers.
const DifficultyCount = 5

var difficultyOrder = []DifficultyPreset{
	DifficultyVeryEasy,
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
	DifficultyVeryHard,
}

// Difficulties returns the presets from easiest to hardest.
func Difficulties() []DifficultyPreset {
	out := make([]DifficultyPreset, len(difficultyOrder))
	copy(out, difficultyOrder)
	return out
}

// ParseDifficulty maps a preset name to its tier index (0 = very easy).
// An empty name selects medium. Hyphens and case are ignored.
func ParseDifficulty(name string) (int, error) {
	if name == "" {
		return 2, nil
	}
	norm := DifficultyPreset(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	for i, p := range difficultyOrder {
		if p == norm {
			return i, nil
		}
	}
	return 0, fmt.Errorf("config: unknown difficulty %q (want one of very_easy, easy, medium, hard, very_hard)", name)
}

// Title returns a display label for the preset.
func (p DifficultyPreset) Title() string {
	switch p {
	case DifficultyVeryEasy:
		return "Very Easy"
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	case DifficultyVeryHard:
		return "Very Hard"
	default:
		return string(p)
	}
}
