package match

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

const frame = time.Second / 60

func idle() Tick {
	return Tick{Input: core.NewInputFrame(), Elapsed: frame}
}

func newRound(t *testing.T, mode Mode, sessions int, fb *fakeBoards) *Orchestrator {
	t.Helper()
	o, err := New(Config{
		Mode:       mode,
		Sessions:   sessions,
		Difficulty: DifficultyMedium,
		Boards:     fb.factory,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return o
}

func closeTo(a, b time.Duration) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= time.Microsecond
}

func TestLevelFor(t *testing.T) {
	p := config.DefaultTetrisConfig().Progression
	tests := []struct {
		lines int
		want  int
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{55, 5},
		{149, 14},
		{150, 15},
		{400, 15},
	}
	for _, tt := range tests {
		if got := levelFor(tt.lines, p); got != tt.want {
			t.Errorf("levelFor(%d) = %d, want %d", tt.lines, got, tt.want)
		}
	}
}

func TestClearEffectsAppliedOnceAfterAnimation(t *testing.T) {
	fb := newFakeBoards()
	o := newRound(t, ModeTugOfWar, 2, fb)
	fb.human.startClear(2, 3)

	for i := 1; i <= 2; i++ {
		o.Update(idle())
		if h := o.Human().Health(); h != 0 {
			t.Fatalf("tick %d: human health = %d before the clear resolved", i, h)
		}
	}
	if fb.human.falls != 0 {
		t.Fatal("gameplay must not run while rows are clearing")
	}

	o.Update(idle())
	if h := o.Human().Health(); h != 2 {
		t.Errorf("human health = %d, want 2", h)
	}
	if h := o.Computer().Health(); h != -6 {
		t.Errorf("computer health = %d, want -6", h)
	}

	for i := 0; i < 5; i++ {
		o.Update(idle())
	}
	if o.Human().Health() != 2 || o.Computer().Health() != -6 {
		t.Errorf("effects applied more than once: human %d, computer %d",
			o.Human().Health(), o.Computer().Health())
	}
	if fb.human.updateCompletes != 3 {
		t.Errorf("UpdateComplete calls = %d, want 3", fb.human.updateCompletes)
	}
}

func TestHumanDropIntervalFollowsLevel(t *testing.T) {
	tests := []struct {
		name      string
		linesFrom int
		rows      int
		wantLevel int
		want      time.Duration
	}{
		{"below first level", 0, 4, 0, time.Second},
		{"level five", 46, 4, 5, 750 * time.Millisecond},
		{"level cap", 148, 2, 15, 250 * time.Millisecond},
		{"beyond the cap", 398, 2, 15, 250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBoards()
			o := newRound(t, ModeClassic, 1, fb)
			fb.human.lines = tt.linesFrom
			fb.human.startClear(tt.rows, 1)

			o.Update(idle())

			h := o.Human()
			if h.Level() != tt.wantLevel {
				t.Errorf("Level() = %d, want %d", h.Level(), tt.wantLevel)
			}
			if !closeTo(h.DropInterval(), tt.want) {
				t.Errorf("DropInterval() = %v, want %v", h.DropInterval(), tt.want)
			}
		})
	}
}

func TestComputerIntervalNeverReleveled(t *testing.T) {
	fb := newFakeBoards()
	o := newRound(t, ModeClassic, 2, fb)
	fb.cpu.lines = 99
	fb.cpu.startClear(4, 1)

	o.Update(idle())

	c := o.Computer()
	if c.Level() != 10 {
		t.Fatalf("computer level = %d, want 10", c.Level())
	}
	if got := c.DropInterval(); got != 333*time.Millisecond {
		t.Errorf("computer DropInterval() = %v, want 333ms", got)
	}
}

func TestGameOverPolicy(t *testing.T) {
	tests := []struct {
		mode      Mode
		sessions  int
		wantReset bool
	}{
		{ModeClassic, 1, false},
		{ModeInfinite, 1, true},
		{ModeTugOfWar, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			fb := newFakeBoards()
			o := newRound(t, tt.mode, tt.sessions, fb)
			fb.human.lines = 30
			o.Human().terminated = true
			falls := fb.human.falls

			o.Update(Tick{Input: core.NewInputFrame(), Elapsed: 5 * time.Second})

			h := o.Human()
			if tt.wantReset {
				if h.HasGameOver() || fb.human.resets != 1 || h.LinesCleared() != 0 {
					t.Errorf("expected an in-place reset: gameOver=%v resets=%d lines=%d",
						h.HasGameOver(), fb.human.resets, h.LinesCleared())
				}
				if h.TotalLines() != 30 || h.StackOuts() != 1 {
					t.Errorf("restart lost the line total: TotalLines()=%d StackOuts()=%d, want 30 and 1",
						h.TotalLines(), h.StackOuts())
				}
				return
			}
			for i := 0; i < 50; i++ {
				o.Update(Tick{Input: core.NewInputFrame(), Elapsed: 5 * time.Second})
				if !h.HasGameOver() || fb.human.resets != 0 {
					t.Fatalf("tick %d: expected the session to stay over: gameOver=%v resets=%d",
						i, h.HasGameOver(), fb.human.resets)
				}
			}
			if fb.human.falls != falls {
				t.Error("a finished session must not keep playing")
			}
			if h.TotalLines() != 30 {
				t.Errorf("TotalLines() = %d, want 30", h.TotalLines())
			}
		})
	}
}

func TestInfiniteBanksLinesUntilRoundReset(t *testing.T) {
	fb := newFakeBoards()
	o := newRound(t, ModeInfinite, 2, fb)

	for _, lines := range []int{12, 7} {
		fb.human.lines = lines
		o.Human().terminated = true
		o.Update(idle())
	}
	fb.human.lines = 3

	h := o.Human()
	if h.TotalLines() != 22 || h.StackOuts() != 2 {
		t.Errorf("TotalLines()=%d StackOuts()=%d, want 22 and 2", h.TotalLines(), h.StackOuts())
	}
	if h.Level() != 0 {
		t.Errorf("level follows the current board only, got %d", h.Level())
	}
	if c := o.Computer(); c.StackOuts() != 0 {
		t.Errorf("computer StackOuts() = %d, want 0", c.StackOuts())
	}

	o.Reset()
	if h.TotalLines() != 0 || h.StackOuts() != 0 {
		t.Errorf("after Reset: TotalLines()=%d StackOuts()=%d, want 0", h.TotalLines(), h.StackOuts())
	}
}

func TestStackOutEndsSession(t *testing.T) {
	fb := newFakeBoards()
	o := newRound(t, ModeClassic, 1, fb)
	fb.human.canFall = false
	fb.human.lockFails = true

	o.Update(Tick{Input: core.NewInputFrame(), Elapsed: time.Second})

	if !o.Human().HasGameOver() {
		t.Error("a failed lock should end the session")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		target error
	}{
		{"sixth tier", Config{Mode: ModeClassic, Sessions: 2, Difficulty: 5}, ErrUnknownDifficulty},
		{"negative tier", Config{Mode: ModeClassic, Sessions: 2, Difficulty: -1}, ErrUnknownDifficulty},
		{"unknown mode", Config{Mode: 3, Sessions: 1}, ErrUnknownMode},
		{"no sessions", Config{Mode: ModeClassic}, ErrInvalidSessionCount},
		{"three sessions", Config{Mode: ModeClassic, Sessions: 3}, ErrInvalidSessionCount},
		{"tug of war alone", Config{Mode: ModeTugOfWar, Sessions: 1}, ErrMissingOpponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Boards = newFakeBoards().factory
			_, err := New(tt.cfg)
			if !errors.Is(err, tt.target) {
				t.Fatalf("New() error = %v, want %v", err, tt.target)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Reason == "" {
				t.Errorf("expected a *ConfigError with a reason, got %#v", err)
			}
		})
	}
}

func TestAddRejectsThirdAndDuplicateSessions(t *testing.T) {
	fb := newFakeBoards()
	o := newRound(t, ModeClassic, 1, fb)

	err := o.Add(NewSession(RoleHuman, ModeClassic, &fakeBoard{}, time.Second))
	if !errors.Is(err, ErrDuplicateRole) {
		t.Errorf("duplicate human: error = %v, want %v", err, ErrDuplicateRole)
	}

	if err := o.Add(NewSession(RoleComputer, ModeClassic, &fakeBoard{}, time.Second)); err != nil {
		t.Fatalf("adding the computer: %v", err)
	}
	err = o.Add(NewSession(RoleComputer, ModeClassic, &fakeBoard{}, time.Second))
	if !errors.Is(err, ErrSessionLimit) {
		t.Errorf("third session: error = %v, want %v", err, ErrSessionLimit)
	}
	if len(o.Sessions()) != 2 {
		t.Errorf("Sessions() = %d, want 2", len(o.Sessions()))
	}
}

func TestHealthAppliedSequentiallyWithinTick(t *testing.T) {
	fb := newFakeBoards()
	o := newRound(t, ModeTugOfWar, 2, fb)
	fb.human.startClear(1, 1)
	fb.cpu.startClear(2, 1)

	o.Update(idle())

	// Human: +1 then -6. Computer: -3 then +2.
	if h := o.Human().Health(); h != -5 {
		t.Errorf("human health = %d, want -5", h)
	}
	if c := o.Computer().Health(); c != -1 {
		t.Errorf("computer health = %d, want -1", c)
	}
}

func TestClassicIgnoresHealth(t *testing.T) {
	fb := newFakeBoards()
	o := newRound(t, ModeClassic, 2, fb)
	fb.human.startClear(4, 1)

	o.Update(idle())

	if o.Human().Health() != 0 || o.Computer().Health() != 0 {
		t.Error("classic rounds must not move health")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	fb := newFakeBoards()
	o := newRound(t, ModeTugOfWar, 2, fb)
	fb.human.lines = 58
	fb.human.startClear(2, 1)
	o.Update(idle())
	if closeTo(o.Human().DropInterval(), time.Second) {
		t.Fatal("precondition: human should have sped up")
	}

	o.Reset()

	for _, s := range o.Sessions() {
		if s.Health() != 0 || s.HasGameOver() || s.LinesCleared() != 0 {
			t.Errorf("%s: not reset: health=%d over=%v lines=%d",
				s.Role(), s.Health(), s.HasGameOver(), s.LinesCleared())
		}
	}
	if got := o.Human().DropInterval(); got != time.Second {
		t.Errorf("human DropInterval() = %v, want 1s", got)
	}
	if got := o.Computer().DropInterval(); got != 333*time.Millisecond {
		t.Errorf("computer DropInterval() = %v, want 333ms", got)
	}
	if o.Ticks() != 0 {
		t.Errorf("Ticks() = %d, want 0", o.Ticks())
	}
}

func TestOpponentLookup(t *testing.T) {
	o := newRound(t, ModeClassic, 2, newFakeBoards())
	if o.Opponent(o.Human()) != o.Computer() {
		t.Error("human's opponent should be the computer")
	}
	if o.Opponent(o.Computer()) != o.Human() {
		t.Error("computer's opponent should be the human")
	}

	solo := newRound(t, ModeClassic, 1, newFakeBoards())
	if solo.Opponent(solo.Human()) != nil {
		t.Error("solo round has no opponent")
	}
	if solo.Computer() != nil {
		t.Error("solo round has no computer")
	}
}

func TestSessionsKeepInsertionOrder(t *testing.T) {
	o := newRound(t, ModeInfinite, 2, newFakeBoards())
	got := o.Sessions()
	if len(got) != 2 || got[0].Role() != RoleHuman || got[1].Role() != RoleComputer {
		t.Errorf("Sessions() roles = %v, want [human cpu]", []Role{got[0].Role(), got[1].Role()})
	}
}

func TestTuningOverridesDefaults(t *testing.T) {
	tuning := config.DefaultTetrisConfig()
	tuning.Timing.DefaultDropDelay = 2 * time.Second
	tuning.TugOfWar.Reward = 3
	tuning.TugOfWar.Penalty = -1
	fb := newFakeBoards()

	o, err := New(Config{Mode: ModeTugOfWar, Sessions: 2, Tuning: &tuning, Boards: fb.factory})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if o.Human().DropInterval() != 2*time.Second {
		t.Errorf("human interval = %v, want 2s", o.Human().DropInterval())
	}
	if o.Computer().DropInterval() != 750*time.Millisecond {
		t.Errorf("very easy interval = %v, want 750ms", o.Computer().DropInterval())
	}

	fb.human.startClear(2, 1)
	o.Update(idle())
	if o.Human().Health() != 6 || o.Computer().Health() != -2 {
		t.Errorf("health = %d / %d, want 6 / -2", o.Human().Health(), o.Computer().Health())
	}
}

func TestRealBoardsClassicRoundEnds(t *testing.T) {
	o, err := New(Config{Mode: ModeClassic, Sessions: 2, Difficulty: DifficultyVeryHard, Seed: 9})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tick := Tick{Input: core.NewInputFrame(), Elapsed: time.Second}
	for i := 0; i < 20000 && !o.Human().HasGameOver(); i++ {
		o.Update(tick)
	}
	if !o.Human().HasGameOver() {
		t.Fatal("an idle human should eventually stack out")
	}

	before := o.Ticks()
	o.Update(tick)
	if !o.Human().HasGameOver() {
		t.Error("classic round must not restart the human")
	}
	if o.Ticks() != before+1 {
		t.Error("Ticks() should count every update")
	}
}

func TestRealBoardsInfiniteRestarts(t *testing.T) {
	o, err := New(Config{Mode: ModeInfinite, Sessions: 1, Seed: 4})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tick := Tick{Input: core.NewInputFrame(), Elapsed: time.Second}
	for i := 0; i < 20000 && !o.Human().HasGameOver(); i++ {
		o.Update(tick)
	}
	if !o.Human().HasGameOver() {
		t.Fatal("an idle human should eventually stack out")
	}

	o.Update(tick)
	if o.Human().HasGameOver() {
		t.Error("infinite round should restart the board on the next tick")
	}
}
