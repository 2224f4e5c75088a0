package match

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/board"
)

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestHumanInputMapsToBoard(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		check   func(*testing.T, *fakeBoard)
	}{
		{
			name:    "shift both ways",
			actions: []core.Action{core.ActionLeft, core.ActionRight},
			check: func(t *testing.T, b *fakeBoard) {
				if b.shifts != 2 {
					t.Errorf("shifts = %d, want 2", b.shifts)
				}
			},
		},
		{
			name:    "rotate",
			actions: []core.Action{core.ActionRotate},
			check: func(t *testing.T, b *fakeBoard) {
				if b.rotates != 1 {
					t.Errorf("rotates = %d, want 1", b.rotates)
				}
			},
		},
		{
			name:    "hard drop locks",
			actions: []core.Action{core.ActionDrop},
			check: func(t *testing.T, b *fakeBoard) {
				if b.hardDrops != 1 || b.locks != 1 {
					t.Errorf("hardDrops = %d locks = %d, want 1 and 1", b.hardDrops, b.locks)
				}
			},
		},
		{
			name:    "soft drop falls",
			actions: []core.Action{core.ActionDown},
			check: func(t *testing.T, b *fakeBoard) {
				if b.falls != 1 || b.locks != 0 {
					t.Errorf("falls = %d locks = %d, want 1 and 0", b.falls, b.locks)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBoard{canFall: true}
			s := NewSession(RoleHuman, ModeClassic, b, time.Second)

			s.Update(Tick{Input: input(tt.actions...), Elapsed: frame})

			tt.check(t, b)
		})
	}
}

func TestSoftDropOnFloorLocks(t *testing.T) {
	b := &fakeBoard{}
	s := NewSession(RoleHuman, ModeClassic, b, time.Second)

	s.Update(Tick{Input: input(core.ActionDown), Elapsed: frame})

	if b.locks != 1 {
		t.Errorf("locks = %d, want 1", b.locks)
	}
}

func TestGravityWaitsForDropTimer(t *testing.T) {
	b := &fakeBoard{canFall: true}
	s := NewSession(RoleHuman, ModeClassic, b, 100*time.Millisecond)

	for i := 0; i < 4; i++ {
		s.Update(Tick{Input: core.NewInputFrame(), Elapsed: 25 * time.Millisecond})
	}
	if b.falls != 1 {
		t.Fatalf("falls after 100ms = %d, want 1", b.falls)
	}
	s.Update(Tick{Input: core.NewInputFrame(), Elapsed: 25 * time.Millisecond})
	if b.falls != 1 {
		t.Errorf("timer did not restart after firing")
	}
}

func TestDropTimerCarriesOvershoot(t *testing.T) {
	b := &fakeBoard{canFall: true}
	s := NewSession(RoleComputer, ModeClassic, b, 75*time.Millisecond)

	// 20ms frames overshoot a 75ms interval by 5ms; carried over, the
	// fourth fall lands after 300ms instead of 320ms.
	for i := 0; i < 15; i++ {
		s.Update(Tick{Input: core.NewInputFrame(), Elapsed: 20 * time.Millisecond})
	}
	if b.falls != 4 {
		t.Errorf("falls after 300ms = %d, want 4", b.falls)
	}
}

func TestComputerIgnoresKeyboard(t *testing.T) {
	b := &fakeBoard{canFall: true}
	s := NewSession(RoleComputer, ModeClassic, b, time.Second)

	s.Update(Tick{Input: input(core.ActionDrop, core.ActionLeft), Elapsed: frame})

	if b.hardDrops != 0 || b.shifts != 0 {
		t.Error("computer sessions must not read the keyboard")
	}
}

func TestComputerMovesOnTimer(t *testing.T) {
	b := &fakeBoard{canFall: true}
	ctrl := &fakeController{cmds: []board.Command{board.CommandRotate, board.CommandSoftDrop, board.CommandHardDrop}}
	s := NewSession(RoleComputer, ModeClassic, b, 75*time.Millisecond)
	s.SetController(ctrl)

	s.Update(Tick{Input: core.NewInputFrame(), Elapsed: 50 * time.Millisecond})
	if ctrl.calls != 0 {
		t.Fatal("controller consulted before the timer fired")
	}

	s.Update(Tick{Input: core.NewInputFrame(), Elapsed: 50 * time.Millisecond})
	if b.rotates != 1 || b.falls != 1 {
		t.Fatalf("after rotate: rotates=%d falls=%d, want 1 and 1", b.rotates, b.falls)
	}

	s.Update(Tick{Input: core.NewInputFrame(), Elapsed: 75 * time.Millisecond})
	if b.falls != 2 {
		t.Fatalf("soft drop should fall exactly once per interval, falls=%d", b.falls)
	}

	s.Update(Tick{Input: core.NewInputFrame(), Elapsed: 75 * time.Millisecond})
	if b.hardDrops != 1 || b.locks != 1 || b.falls != 2 {
		t.Errorf("hard drop: hardDrops=%d locks=%d falls=%d", b.hardDrops, b.locks, b.falls)
	}
}

func TestUpdateBasicOnlyAdvancesClear(t *testing.T) {
	b := &fakeBoard{canFall: true}
	b.startClear(1, 3)
	s := NewSession(RoleHuman, ModeClassic, b, time.Second)

	s.UpdateBasic(idle())
	s.Update(Tick{Input: input(core.ActionDrop), Elapsed: time.Second})

	if b.updateCompletes != 1 {
		t.Errorf("updateCompletes = %d, want 1", b.updateCompletes)
	}
	if b.falls != 0 || b.hardDrops != 0 {
		t.Error("Update must not move pieces while a clear is pending")
	}
}

func TestUpdateBasicEndsSessionWhenSpawnBlocked(t *testing.T) {
	b := &fakeBoard{}
	b.startClear(1, 1)
	s := NewSession(RoleHuman, ModeClassic, b, time.Second)
	b.blocked = true

	s.UpdateBasic(idle())

	if !s.HasGameOver() {
		t.Error("a board that cannot spawn after a clear should end the session")
	}
}

func TestUpdateHealthIsUnbounded(t *testing.T) {
	s := NewSession(RoleHuman, ModeTugOfWar, &fakeBoard{}, time.Second)
	for i := 0; i < 50; i++ {
		s.UpdateHealth(-3)
	}
	if s.Health() != -150 {
		t.Errorf("Health() = %d, want -150", s.Health())
	}
}

func TestResetDropTimerKeepsInterval(t *testing.T) {
	s := NewSession(RoleHuman, ModeClassic, &fakeBoard{}, time.Second)
	s.SetDropTimerReset(400 * time.Millisecond)
	s.ResetDropTimer()
	s.ResetDropTimer()

	if s.DropInterval() != 400*time.Millisecond {
		t.Errorf("DropInterval() = %v, want 400ms", s.DropInterval())
	}
}

func TestDifficultyDropDelay(t *testing.T) {
	want := map[Difficulty]time.Duration{
		DifficultyVeryEasy: 750 * time.Millisecond,
		DifficultyEasy:     600 * time.Millisecond,
		DifficultyMedium:   333 * time.Millisecond,
		DifficultyHard:     100 * time.Millisecond,
		DifficultyVeryHard: 75 * time.Millisecond,
	}
	for d, w := range want {
		got, err := d.DropDelay(nil)
		if err != nil || got != w {
			t.Errorf("%s.DropDelay(nil) = %v, %v; want %v", d, got, err, w)
		}
	}
	if _, err := DifficultyHard.DropDelay([]time.Duration{time.Second}); err == nil {
		t.Error("a short table should reject tiers it does not cover")
	}
}
