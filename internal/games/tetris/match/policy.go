package match

import "github.com/vovakirdan/tui-tetris/internal/config"

// Policy holds the per-mode rules the Orchestrator consults each tick.
type Policy struct {
	Reward          int  // Health per cleared row, to the clearer
	Penalty         int  // Health per cleared row, to the opponent
	TracksHealth    bool // Whether cleared rows move health at all
	ResetOnGameOver bool // Whether a stacked-out session restarts in place
}

// Policies builds the mode table from tuning.
func Policies(t config.TugOfWarConfig) map[Mode]Policy {
	return map[Mode]Policy{
		ModeClassic:  {},
		ModeInfinite: {ResetOnGameOver: true},
		ModeTugOfWar: {Reward: t.Reward, Penalty: t.Penalty, TracksHealth: true},
	}
}
