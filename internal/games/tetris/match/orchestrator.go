package match

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/board"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/cpu"
	"github.com/vovakirdan/tui-tetris/internal/telemetry"
)

// MaxSessions is the most sessions a round can hold.
const MaxSessions = 2

// BoardFactory builds the board for a role. The controller is only used for
// computer sessions and may be nil.
type BoardFactory func(role Role) (Board, Controller)

// Config describes a round.
type Config struct {
	Mode       Mode
	Sessions   int        // 1 for solo, 2 for human vs computer
	Difficulty Difficulty // CPU tier
	Seed       int64

	// Tuning overrides the built-in tuning when set.
	Tuning *config.TetrisConfig
	// Boards overrides the default board construction, mainly for tests.
	Boards BoardFactory
	Logger *log.Logger
}

// Orchestrator advances the sessions of one round.
type Orchestrator struct {
	mode       Mode
	policy     Policy
	difficulty Difficulty

	sessions []*Session
	byRole   [roleCount]*Session
	levels   [roleCount]int

	defaultDelay time.Duration
	progression  config.ProgressionConfig

	ticks  int
	logger *log.Logger
	tracer trace.Tracer
}

// New validates cfg and builds its sessions. Setup problems are returned as
// *ConfigError.
func New(cfg Config) (*Orchestrator, error) {
	if !cfg.Mode.Valid() {
		return nil, newConfigError(CodeUnknownMode, "mode %d is not classic, infinite or tug of war", int(cfg.Mode))
	}
	if cfg.Sessions < 1 || cfg.Sessions > MaxSessions {
		return nil, newConfigError(CodeInvalidSessionCount, "need 1 or %d sessions, got %d", MaxSessions, cfg.Sessions)
	}
	if cfg.Mode == ModeTugOfWar && cfg.Sessions < 2 {
		return nil, newConfigError(CodeMissingOpponent, "%s needs a computer opponent", cfg.Mode)
	}

	tuning := config.DefaultTetrisConfig()
	if cfg.Tuning != nil {
		tuning = *cfg.Tuning
	}
	cpuDelay, err := cfg.Difficulty.DropDelay(tuning.CPU.DropDelays)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	boards := cfg.Boards
	if boards == nil {
		boards = defaultBoards(tuning, cfg.Seed)
	}

	o := &Orchestrator{
		mode:         cfg.Mode,
		policy:       Policies(tuning.TugOfWar)[cfg.Mode],
		difficulty:   cfg.Difficulty,
		defaultDelay: tuning.Timing.DefaultDropDelay,
		progression:  tuning.Progression,
		logger:       logger.WithPrefix("match"),
		tracer:       telemetry.Tracer("match"),
	}

	roles := []Role{RoleHuman, RoleComputer}[:cfg.Sessions]
	for _, role := range roles {
		delay := o.defaultDelay
		if role == RoleComputer {
			delay = cpuDelay
		}
		b, ctrl := boards(role)
		s := NewSession(role, cfg.Mode, b, delay)
		if ctrl != nil {
			s.SetController(ctrl)
		}
		if err := o.Add(s); err != nil {
			return nil, err
		}
	}

	o.logger.Debug("round created",
		"mode", cfg.Mode,
		"sessions", cfg.Sessions,
		"difficulty", cfg.Difficulty,
		"cpu_delay", cpuDelay,
	)
	return o, nil
}

func defaultBoards(t config.TetrisConfig, seed int64) BoardFactory {
	return func(role Role) (Board, Controller) {
		// Both players share a seed so they are dealt the same pieces.
		b := board.New(t.Board.Width, t.Board.Height, t.Board.ClearTicks, seed)
		if role == RoleComputer {
			return b, cpu.New(b, t.CPU.Weights)
		}
		return b, nil
	}
}

// Add appends a session. A round holds at most one session per role and at
// most MaxSessions in total.
func (o *Orchestrator) Add(s *Session) error {
	if len(o.sessions) >= MaxSessions {
		return newConfigError(CodeSessionLimit, "round already has %d sessions", len(o.sessions))
	}
	if !s.role.Valid() {
		return newConfigError(CodeInvalidSessionCount, "session has unknown %s", s.role)
	}
	if o.byRole[s.role] != nil {
		return newConfigError(CodeDuplicateRole, "round already has a %s session", s.role)
	}
	s.progression = o.progression
	o.sessions = append(o.sessions, s)
	o.byRole[s.role] = s
	o.levels[s.role] = s.Level()
	return nil
}

// Update advances every session by one tick, in the order they were added.
// Health moved by an earlier session is visible to later ones.
func (o *Orchestrator) Update(tick Tick) {
	for _, s := range o.sessions {
		switch {
		case s.HasGameOver():
			if o.policy.ResetOnGameOver {
				o.logger.Debug("board reset", "role", s.role, "lines", s.LinesCleared(), "total_lines", s.TotalLines())
				s.Restart()
				o.levels[s.role] = 0
			}

		case s.board.HasComplete():
			rows := s.board.CompletedRowCount()
			s.UpdateBasic(tick)
			if s.board.HasComplete() {
				continue
			}
			o.resolve(s, rows)

		default:
			s.Update(tick)
		}
	}
	o.ticks++
}

// resolve applies the effects of a finished clear exactly once.
func (o *Orchestrator) resolve(s *Session, rows int) {
	_, span := o.tracer.Start(context.Background(), "match.resolve")
	defer span.End()

	level := s.Level()
	if s.IsHuman() {
		delay := humanDropDelay(o.defaultDelay, level, o.progression.SpeedIncreaseRatio)
		s.SetDropTimerReset(delay)
		s.ResetDropTimer()
		if level != o.levels[s.role] {
			o.logger.Debug("level up", "role", s.role, "level", level, "drop_delay", delay)
		}
	}
	o.levels[s.role] = level

	if o.policy.TracksHealth {
		s.UpdateHealth(rows * o.policy.Reward)
		// New refuses tug of war rounds without both roles.
		opp := o.Opponent(s)
		opp.UpdateHealth(rows * o.policy.Penalty)
		o.logger.Debug("health transfer",
			"from", opp.role,
			"to", s.role,
			"rows", rows,
			"health", s.health,
			"opponent_health", opp.health,
		)
	}

	span.SetAttributes(
		attribute.String("role", s.role.String()),
		attribute.Int("rows", rows),
		attribute.Int("level", level),
		attribute.Int("health", s.health),
	)
}

// Reset starts every session over in place.
func (o *Orchestrator) Reset() {
	for _, s := range o.sessions {
		s.Reset()
		o.levels[s.role] = 0
	}
	o.ticks = 0
}

// Sessions returns the sessions in insertion order.
func (o *Orchestrator) Sessions() []*Session {
	out := make([]*Session, len(o.sessions))
	copy(out, o.sessions)
	return out
}

// Human returns the human session, or nil.
func (o *Orchestrator) Human() *Session { return o.byRole[RoleHuman] }

// Computer returns the computer session, or nil.
func (o *Orchestrator) Computer() *Session { return o.byRole[RoleComputer] }

// Opponent returns the other session in the round, or nil when playing solo.
func (o *Orchestrator) Opponent(s *Session) *Session {
	if s == nil || !s.role.Valid() {
		return nil
	}
	return o.byRole[s.role.other()]
}

// Mode returns the round's mode.
func (o *Orchestrator) Mode() Mode { return o.mode }

// Policy returns the rules in effect.
func (o *Orchestrator) Policy() Policy { return o.policy }

// Difficulty returns the CPU tier.
func (o *Orchestrator) Difficulty() Difficulty { return o.difficulty }

// Ticks returns the number of updates since creation or the last Reset.
func (o *Orchestrator) Ticks() int { return o.ticks }
