// Package tetris plugs the falling-block engine into the game registry.
// One Game wraps one match.Orchestrator; the registered IDs differ only in
// mode and in whether a computer opponent joins the round.
package tetris

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/board"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/cpu"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/match"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficulty is the CPU tier new games start with
var difficulty = match.DifficultyMedium

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficulty selects the CPU tier by preset name (very_easy .. very_hard).
func SetDifficulty(name string) error {
	tier, err := config.ParseDifficulty(name)
	if err != nil {
		return err
	}
	difficulty = match.Difficulty(tier)
	return nil
}

// CurrentDifficulty returns the CPU tier new rounds will use.
func CurrentDifficulty() match.Difficulty {
	return difficulty
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Variant describes one registered flavour of the game.
type Variant struct {
	ID    string
	Title string
	Mode  match.Mode
	VsCPU bool
}

// Variants lists every registered flavour, in menu order.
var Variants = []Variant{
	{ID: "tetris", Title: "Tetris", Mode: match.ModeClassic},
	{ID: "tetris_infinite", Title: "Tetris Infinite", Mode: match.ModeInfinite},
	{ID: "tetris_vs", Title: "Tetris vs CPU", Mode: match.ModeClassic, VsCPU: true},
	{ID: "tetris_infinite_vs", Title: "Tetris Infinite vs CPU", Mode: match.ModeInfinite, VsCPU: true},
	{ID: "tetris_tugofwar", Title: "Tetris Tug of War", Mode: match.ModeTugOfWar, VsCPU: true},
}

// Game implements registry.Game around a match.Orchestrator.
type Game struct {
	variant    Variant
	difficulty match.Difficulty

	runtime core.RuntimeConfig
	tuning  config.TetrisConfig
	orch    *match.Orchestrator
	boards  [2]*board.Board // human, computer

	tick     uint64
	paused   bool
	over     bool
	winner   Winner
	recorded bool
	setupErr error

	recorder RoundRecorder
	logger   *log.Logger
}

// New creates a game for a variant.
func New(v Variant) *Game {
	return &Game{variant: v, difficulty: difficulty, logger: logger.WithPrefix(v.ID)}
}

// SetDifficulty picks the CPU tier for rounds started after the next Reset.
func (g *Game) SetDifficulty(d match.Difficulty) {
	g.difficulty = d
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title
}

// SetRecorder attaches where finished rounds are stored.
func (g *Game) SetRecorder(r RoundRecorder) {
	g.recorder = r
}

// Reset loads tuning and starts a fresh round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	tuning, err := config.LoadTetris(configPath)
	if err != nil {
		g.logger.Warn("falling back to default tuning", "path", configPath, "error", err)
		tuning = config.DefaultTetrisConfig()
	}
	g.tuning = tuning

	g.tick = 0
	g.paused = false
	g.over = false
	g.winner = WinnerNone
	g.recorded = false
	g.setupErr = nil
	g.boards = [2]*board.Board{}

	sessions := 1
	if g.variant.VsCPU {
		sessions = 2
	}
	orch, err := match.New(match.Config{
		Mode:       g.variant.Mode,
		Sessions:   sessions,
		Difficulty: g.difficulty,
		Seed:       runtime.Seed,
		Tuning:     &g.tuning,
		Boards:     g.newBoard,
		Logger:     g.logger,
	})
	if err != nil {
		g.logger.Error("cannot start round", "error", err)
		g.setupErr = err
		g.orch = nil
		g.over = true
		return
	}
	g.orch = orch
}

func (g *Game) newBoard(role match.Role) (match.Board, match.Controller) {
	t := g.tuning
	b := board.New(t.Board.Width, t.Board.Height, t.Board.ClearTicks, g.runtime.Seed)
	if role == match.RoleComputer {
		g.boards[1] = b
		return b, cpu.New(b, t.CPU.Weights)
	}
	g.boards[0] = b
	return b, nil
}

// Step advances the round by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.over {
		next := g.runtime
		next.Seed++
		g.Reset(next)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.over {
		g.paused = !g.paused
	}
	if g.over || g.paused {
		return core.StepResult{State: g.State()}
	}

	g.orch.Update(match.Tick{Input: in, Elapsed: g.runtime.TickDuration()})

	if g.roundOver() {
		g.finish()
	}
	return core.StepResult{State: g.State()}
}

// roundOver reports whether a session has stacked out in a mode that does
// not restart boards.
func (g *Game) roundOver() bool {
	if g.orch.Policy().ResetOnGameOver {
		return false
	}
	for _, s := range g.orch.Sessions() {
		if s.HasGameOver() {
			return true
		}
	}
	return false
}

// End closes a round whose boards restart in place, recording it when the
// player leaves. Other rounds only end by stacking out, and a round that
// never ticked is not recorded.
func (g *Game) End() {
	if g.over || g.orch == nil || g.orch.Ticks() == 0 || !g.orch.Policy().ResetOnGameOver {
		return
	}
	g.finish()
}

func (g *Game) finish() {
	g.over = true
	g.winner = decideWinner(g.orch)
	result := g.Result()

	g.logger.Info("round over",
		"winner", result.Winner,
		"lines", result.HumanLines,
		"cpu_lines", result.CPULines,
		"stack_outs", g.orch.Human().StackOuts(),
		"ticks", result.Ticks,
	)

	if g.recorder == nil || g.recorded {
		return
	}
	g.recorded = true
	if err := g.recorder.SaveRound(result); err != nil {
		g.logger.Warn("cannot save round", "error", err)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.orch != nil {
		score = g.orch.Human().TotalLines()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.over,
		Paused:   g.paused,
	}
}

// Winner returns the decided winner once the round is over.
func (g *Game) Winner() Winner {
	return g.winner
}

// Orchestrator exposes the running round, nil when setup failed.
func (g *Game) Orchestrator() *match.Orchestrator {
	return g.orch
}

// Register the games with the registry
func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
