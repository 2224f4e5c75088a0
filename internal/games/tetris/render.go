package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/board"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/match"
)

// Visual characters for rendering
const (
	BlockChar = '█'
	GhostChar = '░'
	FlashChar = '▓'
)

const (
	panelWidth   = 14
	boardGap     = 2
	flashPeriod  = 3 // Ticks per flash phase while rows clear
	healthBarLen = 11
)

const controlsHint = "←→ move  ↑ rotate  ↓ soft  SPACE drop  P pause  B menu"

type layout struct {
	cellW  int
	boardW int
	boardH int
	x0, y0 int
}

func (g *Game) layout(w, h int) (layout, bool) {
	n := 1
	if g.boards[1] != nil {
		n = 2
	}
	bw, bh := g.tuning.Board.Width, g.tuning.Board.Height
	for _, cellW := range []int{2, 1} {
		l := layout{cellW: cellW, boardW: bw*cellW + 2, boardH: bh + 2}
		total := n*(l.boardW+1+panelWidth) + (n-1)*boardGap
		if total <= w && l.boardH+2 <= h {
			l.x0 = (w - total) / 2
			l.y0 = 1
			return l, true
		}
	}
	return layout{}, false
}

// Render draws both boards side by side with their status panels.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.setupErr != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start round")
		dst.DrawTextCentered(dst.Height()/2, g.setupErr.Error())
		return
	}
	if g.orch == nil {
		return
	}

	l, ok := g.layout(dst.Width(), dst.Height())
	if !ok {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2, "Resize to continue")
		return
	}

	dst.DrawTextCentered(0, g.heading())

	x := l.x0
	for i, s := range g.orch.Sessions() {
		b := g.boards[i]
		if b == nil {
			continue
		}
		g.renderBoard(dst, b, l, x)
		g.renderPanel(dst, s, b, l, x+l.boardW+1)
		x += l.boardW + 1 + panelWidth + boardGap
	}

	dst.DrawTextColored(max((dst.Width()-len([]rune(controlsHint)))/2, 0), l.y0+l.boardH, controlsHint, core.ColorGray)

	switch {
	case g.over:
		g.renderOverlay(dst, g.outcomeText(), "R restart · B menu")
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "P resume · B menu")
	}
}

func (g *Game) heading() string {
	if !g.variant.VsCPU {
		return g.variant.Title
	}
	tier := config.Difficulties()[difficultyIndex(g.orch.Difficulty())]
	return fmt.Sprintf("%s · %s", g.variant.Title, tier.Title())
}

func difficultyIndex(d match.Difficulty) int {
	return core.Clamp(int(d), 0, config.DifficultyCount-1)
}

func (g *Game) renderBoard(dst *core.Screen, b *board.Board, l layout, x int) {
	y := l.y0
	dst.DrawBox(core.NewRect(x, y, l.boardW, l.boardH), core.ColorGray)

	flashing := make(map[int]bool)
	if elapsed, _ := b.ClearProgress(); (elapsed/flashPeriod)%2 == 0 {
		for _, row := range b.CompletedRows() {
			flashing[row] = true
		}
	}

	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			switch shape := b.At(col, row); {
			case flashing[row]:
				g.drawCell(dst, l, x, y, col, row, FlashChar, core.ColorBrightWhite)
			case shape != board.ShapeNone:
				g.drawCell(dst, l, x, y, col, row, BlockChar, shape.Color())
			}
		}
	}

	if ghost, ok := b.Ghost(); ok {
		for _, c := range ghost.Cells() {
			g.drawCell(dst, l, x, y, c.X, c.Y, GhostChar, core.ColorGray)
		}
	}
	if p, ok := b.Piece(); ok {
		for _, c := range p.Cells() {
			g.drawCell(dst, l, x, y, c.X, c.Y, BlockChar, p.Shape.Color())
		}
	}
}

func (g *Game) drawCell(dst *core.Screen, l layout, bx, by, col, row int, r rune, c core.Color) {
	if row < 0 {
		return
	}
	sx := bx + 1 + col*l.cellW
	sy := by + 1 + row
	for i := 0; i < l.cellW; i++ {
		dst.SetColored(sx+i, sy, r, c)
	}
}

func (g *Game) renderPanel(dst *core.Screen, s *match.Session, b *board.Board, l layout, x int) {
	y := l.y0

	label := "YOU"
	if !s.IsHuman() {
		label = "CPU"
	}
	dst.DrawTextColored(x, y, label, core.ColorBrightWhite)

	dst.DrawText(x, y+2, "NEXT")
	next := b.Next()
	minY := 4
	for _, c := range board.Cells(next, 0) {
		minY = min(minY, c.Y)
	}
	for _, c := range board.Cells(next, 0) {
		for i := 0; i < l.cellW; i++ {
			dst.SetColored(x+c.X*l.cellW+i, y+3+c.Y-minY, BlockChar, next.Color())
		}
	}

	dst.DrawText(x, y+6, fmt.Sprintf("Lines %d", s.TotalLines()))
	dst.DrawText(x, y+7, fmt.Sprintf("Level %d", s.Level()))
	if g.orch.Policy().ResetOnGameOver && s.StackOuts() > 0 {
		dst.DrawText(x, y+8, fmt.Sprintf("Topped %d", s.StackOuts()))
	}

	if g.orch.Policy().TracksHealth {
		dst.DrawText(x, y+9, fmt.Sprintf("HP %+d", s.Health()))
		drawHealthBar(dst, x, y+10, s.Health())
	}

	if s.HasGameOver() {
		dst.DrawTextColored(x, y+12, "TOPPED OUT", core.ColorRed)
	}
}

// drawHealthBar draws health as a bar growing right (green) or left (red)
// from a centre mark.
func drawHealthBar(dst *core.Screen, x, y, health int) {
	mid := healthBarLen / 2
	for i := 0; i < healthBarLen; i++ {
		dst.SetColored(x+i, y, '─', core.ColorGray)
	}
	dst.SetColored(x+mid, y, '│', core.ColorWhite)
	switch {
	case health > 0:
		for i := 1; i <= min(health, mid); i++ {
			dst.SetColored(x+mid+i, y, BlockChar, core.ColorGreen)
		}
	case health < 0:
		for i := 1; i <= min(-health, mid); i++ {
			dst.SetColored(x+mid-i, y, BlockChar, core.ColorRed)
		}
	}
}

func (g *Game) outcomeText() string {
	switch g.winner {
	case WinnerHuman:
		return "YOU WIN"
	case WinnerComputer:
		return "CPU WINS"
	case WinnerDraw:
		return "DRAW"
	default:
		return fmt.Sprintf("GAME OVER · %d lines", g.State().Score)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, title, hint string) {
	w := max(len([]rune(title)), len([]rune(hint))) + 4
	h := 4
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	dst.FillRect(core.NewRect(x, y, w, h), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(x, y, w, h), core.ColorBrightWhite)
	dst.DrawTextColored(x+(w-len([]rune(title)))/2, y+1, title, core.ColorBrightYellow)
	dst.DrawTextColored(x+(w-len([]rune(hint)))/2, y+2, hint, core.ColorGray)
}
