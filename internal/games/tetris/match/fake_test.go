package match

import (
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/board"
)

// fakeBoard counts calls and lets tests script clears and stack-outs.
type fakeBoard struct {
	lines   int
	rows    int // size of the current or last clear
	pending int // UpdateComplete calls left before the clear resolves

	canFall   bool
	lockFails bool
	blocked   bool

	shifts, rotates, falls, hardDrops, locks int
	updateCompletes, resets                  int
}

func (f *fakeBoard) startClear(rows, ticks int) {
	f.rows = rows
	f.pending = ticks
}

func (f *fakeBoard) Shift(int) bool { f.shifts++; return true }
func (f *fakeBoard) Rotate() bool   { f.rotates++; return true }
func (f *fakeBoard) Fall() bool     { f.falls++; return f.canFall }
func (f *fakeBoard) HardDrop() int  { f.hardDrops++; return 0 }

func (f *fakeBoard) Lock() bool {
	f.locks++
	if f.lockFails {
		f.blocked = true
		return false
	}
	return true
}

func (f *fakeBoard) HasComplete() bool      { return f.pending > 0 }
func (f *fakeBoard) CompletedRowCount() int { return f.rows }
func (f *fakeBoard) Lines() int             { return f.lines }
func (f *fakeBoard) Blocked() bool          { return f.blocked }

func (f *fakeBoard) UpdateComplete() {
	if f.pending == 0 {
		return
	}
	f.updateCompletes++
	f.pending--
	if f.pending == 0 {
		f.lines += f.rows
	}
}

func (f *fakeBoard) Reset() {
	f.resets++
	f.lines = 0
	f.rows = 0
	f.pending = 0
	f.blocked = false
}

type fakeController struct {
	cmds  []board.Command
	calls int
}

func (c *fakeController) Next() board.Command {
	c.calls++
	if len(c.cmds) == 0 {
		return board.CommandNone
	}
	cmd := c.cmds[0]
	c.cmds = c.cmds[1:]
	return cmd
}

// fakeBoards hands out one fake board per role.
type fakeBoards struct {
	human, cpu *fakeBoard
	ctrl       *fakeController
}

func newFakeBoards() *fakeBoards {
	return &fakeBoards{
		human: &fakeBoard{canFall: true},
		cpu:   &fakeBoard{canFall: true},
	}
}

func (f *fakeBoards) factory(role Role) (Board, Controller) {
	if role == RoleComputer {
		if f.ctrl != nil {
			return f.cpu, f.ctrl
		}
		return f.cpu, nil
	}
	return f.human, nil
}
