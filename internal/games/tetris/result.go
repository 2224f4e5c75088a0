package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/match"

// Winner names the victor of a finished round.
type Winner string

const (
	WinnerNone     Winner = ""
	WinnerHuman    Winner = "human"
	WinnerComputer Winner = "cpu"
	WinnerDraw     Winner = "draw"
)

// RoundResult is what gets stored when a round ends.
type RoundResult struct {
	GameID      string
	Mode        string
	Difficulty  string // Empty for solo rounds
	HumanLines  int
	CPULines    int
	HumanHealth int
	CPUHealth   int
	Winner      Winner // WinnerNone for solo rounds
	Ticks       int
}

// RoundRecorder persists finished rounds. Storage implements it so the
// game does not depend on the storage package.
type RoundRecorder interface {
	SaveRound(result RoundResult) error
}

// Result summarises the current round.
func (g *Game) Result() RoundResult {
	r := RoundResult{
		GameID: g.variant.ID,
		Mode:   g.variant.Mode.String(),
		Winner: g.winner,
	}
	if g.orch == nil {
		return r
	}
	r.Ticks = g.orch.Ticks()
	if h := g.orch.Human(); h != nil {
		r.HumanLines = h.TotalLines()
		r.HumanHealth = h.Health()
	}
	if c := g.orch.Computer(); c != nil {
		r.Difficulty = g.orch.Difficulty().String()
		r.CPULines = c.TotalLines()
		r.CPUHealth = c.Health()
	}
	return r
}

// decideWinner picks the surviving session; when both or neither have
// stacked out, higher health wins under tug of war, then more lines
// across every board of the round.
func decideWinner(o *match.Orchestrator) Winner {
	h, c := o.Human(), o.Computer()
	if c == nil {
		return WinnerNone
	}
	switch {
	case h.HasGameOver() && !c.HasGameOver():
		return WinnerComputer
	case c.HasGameOver() && !h.HasGameOver():
		return WinnerHuman
	}
	if o.Policy().TracksHealth && h.Health() != c.Health() {
		if h.Health() > c.Health() {
			return WinnerHuman
		}
		return WinnerComputer
	}
	switch {
	case h.TotalLines() > c.TotalLines():
		return WinnerHuman
	case c.TotalLines() > h.TotalLines():
		return WinnerComputer
	default:
		return WinnerDraw
	}
}
