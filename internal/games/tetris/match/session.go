package match

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/board"
)

// Board is the playfield a session drives. *board.Board satisfies it.
type Board interface {
	Shift(dx int) bool
	Rotate() bool
	Fall() bool
	HardDrop() int
	Lock() bool

	// HasComplete reports rows that are still being cleared.
	HasComplete() bool
	// UpdateComplete advances the clear by one tick.
	UpdateComplete()
	// CompletedRowCount is the size of the most recent clear.
	CompletedRowCount() int
	// Lines is the cumulative number of cleared lines.
	Lines() int
	Blocked() bool
	Reset()
}

// Controller chooses moves for a computer session.
type Controller interface {
	Next() board.Command
}

// Tick is the input and simulated time for one update.
type Tick struct {
	Input   core.InputFrame
	Elapsed time.Duration
}

// Session is one player's board plus the state layered on top of it.
type Session struct {
	role       Role
	mode       Mode
	board      Board
	controller Controller

	dropTimer    *core.Timer
	initialDelay time.Duration
	progression  config.ProgressionConfig

	health     int
	terminated bool

	// Lines and stack-outs from boards already restarted in place.
	banked    int
	stackOuts int
}

// NewSession creates a session whose piece falls one row every dropDelay.
func NewSession(role Role, mode Mode, b Board, dropDelay time.Duration) *Session {
	return &Session{
		role:         role,
		mode:         mode,
		board:        b,
		dropTimer:    core.NewTimer(dropDelay),
		initialDelay: dropDelay,
		progression:  config.DefaultTetrisConfig().Progression,
	}
}

// SetController attaches the move source used by computer sessions.
func (s *Session) SetController(c Controller) {
	s.controller = c
}

// Role returns who controls the session.
func (s *Session) Role() Role { return s.role }

// IsHuman reports whether the session takes keyboard input.
func (s *Session) IsHuman() bool { return s.role == RoleHuman }

// Mode returns the round's mode.
func (s *Session) Mode() Mode { return s.mode }

// Board returns the session's playfield.
func (s *Session) Board() Board { return s.board }

// HasGameOver reports whether the board has stacked out.
func (s *Session) HasGameOver() bool { return s.terminated }

// LinesCleared returns the board's cumulative line count.
func (s *Session) LinesCleared() int { return s.board.Lines() }

// TotalLines adds the lines of boards restarted in place to LinesCleared.
func (s *Session) TotalLines() int { return s.banked + s.LinesCleared() }

// StackOuts counts the boards restarted in place since the last Reset.
func (s *Session) StackOuts() int { return s.stackOuts }

// Level returns the progression level derived from LinesCleared.
func (s *Session) Level() int {
	return levelFor(s.LinesCleared(), s.progression)
}

// Health returns the tug of war health. It has no bounds.
func (s *Session) Health() int { return s.health }

// UpdateHealth adds delta to health.
func (s *Session) UpdateHealth(delta int) {
	s.health += delta
}

// DropInterval returns the current gravity interval.
func (s *Session) DropInterval() time.Duration {
	return s.dropTimer.ResetInterval()
}

// SetDropTimerReset changes the gravity interval used from the next reset.
func (s *Session) SetDropTimerReset(d time.Duration) {
	s.dropTimer.SetReset(d)
}

// ResetDropTimer restarts the gravity countdown.
func (s *Session) ResetDropTimer() {
	s.dropTimer.Reset()
}

// UpdateBasic advances only the board's row clear. A board that cannot
// spawn once the rows are gone ends the session.
func (s *Session) UpdateBasic(_ Tick) {
	s.board.UpdateComplete()
	if s.board.Blocked() {
		s.terminated = true
	}
}

// Update runs one gameplay tick: input or CPU move, then gravity when the
// drop timer fires.
func (s *Session) Update(tick Tick) {
	if s.terminated || s.board.HasComplete() {
		return
	}

	if s.IsHuman() && s.applyInput(tick.Input) {
		return
	}

	s.dropTimer.Update(tick.Elapsed)
	if !s.dropTimer.HasTimePassed() {
		return
	}
	s.dropTimer.Rollover()

	if !s.IsHuman() && s.controller != nil {
		switch cmd := s.controller.Next(); cmd {
		case board.CommandNone, board.CommandSoftDrop:
			// Gravity below covers it.
		default:
			if s.apply(cmd) {
				return
			}
		}
	}
	s.gravity()
}

// applyInput maps the frame's actions to board commands. It returns true
// once a piece has locked, ending the session's tick.
func (s *Session) applyInput(in core.InputFrame) bool {
	if in.Has(core.ActionLeft) {
		s.apply(board.CommandLeft)
	}
	if in.Has(core.ActionRight) {
		s.apply(board.CommandRight)
	}
	if in.Has(core.ActionRotate) {
		s.apply(board.CommandRotate)
	}
	if in.Has(core.ActionDrop) {
		return s.apply(board.CommandHardDrop)
	}
	if in.Has(core.ActionDown) {
		return s.apply(board.CommandSoftDrop)
	}
	return false
}

// apply executes one command and reports whether it locked the piece.
func (s *Session) apply(cmd board.Command) bool {
	switch cmd {
	case board.CommandLeft:
		s.board.Shift(-1)
	case board.CommandRight:
		s.board.Shift(1)
	case board.CommandRotate:
		s.board.Rotate()
	case board.CommandSoftDrop:
		if !s.board.Fall() {
			s.lock()
			return true
		}
		s.dropTimer.Reset()
	case board.CommandHardDrop:
		s.board.HardDrop()
		s.lock()
		return true
	}
	return false
}

func (s *Session) gravity() {
	if !s.board.Fall() {
		s.lock()
	}
}

func (s *Session) lock() {
	if !s.board.Lock() {
		s.terminated = true
	}
}

// Restart resets a stacked-out session in place, keeping its line total.
func (s *Session) Restart() {
	banked, stackOuts := s.TotalLines(), s.stackOuts+1
	s.Reset()
	s.banked, s.stackOuts = banked, stackOuts
}

// Reset starts the session over: empty board, zero health, and the drop
// interval it was created with.
func (s *Session) Reset() {
	s.terminated = false
	s.banked = 0
	s.stackOuts = 0
	s.board.Reset()
	s.health = 0
	s.dropTimer.SetReset(s.initialDelay)
	s.dropTimer.Reset()
}

func levelFor(lines int, p config.ProgressionConfig) int {
	if p.LinesPerLevel <= 0 {
		return 0
	}
	return min(lines/p.LinesPerLevel, p.LevelSpeedUpLimit)
}

// humanDropDelay shortens base by ratio for every level.
func humanDropDelay(base time.Duration, level int, ratio float64) time.Duration {
	return time.Duration(float64(base) * (1 - ratio*float64(level)))
}
