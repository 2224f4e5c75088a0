package match

import (
	"fmt"
	"time"
)

// Difficulty is a CPU tier. It fixes the computer's drop interval for the
// whole round.
type Difficulty int

const (
	DifficultyVeryEasy Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
	DifficultyVeryHard

	difficultyCount
)

// Built-in CPU drop intervals, used when tuning does not supply a table.
var defaultDropDelays = [difficultyCount]time.Duration{
	DifficultyVeryEasy: 750 * time.Millisecond,
	DifficultyEasy:     600 * time.Millisecond,
	DifficultyMedium:   333 * time.Millisecond,
	DifficultyHard:     100 * time.Millisecond,
	DifficultyVeryHard: 75 * time.Millisecond,
}

// Valid reports whether d is one of the five tiers.
func (d Difficulty) Valid() bool {
	return d >= DifficultyVeryEasy && d < difficultyCount
}

// String returns the tier name.
func (d Difficulty) String() string {
	switch d {
	case DifficultyVeryEasy:
		return "very_easy"
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	case DifficultyVeryHard:
		return "very_hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// DropDelay returns the tier's interval from table, or the built-in value
// when table is empty.
func (d Difficulty) DropDelay(table []time.Duration) (time.Duration, error) {
	if !d.Valid() {
		return 0, newConfigError(CodeUnknownDifficulty, "difficulty %d is outside 0..%d", int(d), int(difficultyCount)-1)
	}
	if len(table) == 0 {
		return defaultDropDelays[d], nil
	}
	if int(d) >= len(table) {
		return 0, newConfigError(CodeUnknownDifficulty, "difficulty %s has no drop delay (table has %d tiers)", d, len(table))
	}
	return table[d], nil
}
