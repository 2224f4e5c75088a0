// Package cpu drives a computer-controlled board.
//
// For every new piece the controller simulates each reachable rotation and
// column on a copy of the grid, scores the result and then walks the piece
// towards the best placement one command per call.
package cpu

import (
	"math"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/board"
)

// Controller picks commands for a single board.
type Controller struct {
	board   *board.Board
	weights config.CPUWeights

	seq     uint64
	target  board.Piece
	planned bool

	last     board.Command
	lastSeen board.Piece
}

// New creates a controller for b.
func New(b *board.Board, weights config.CPUWeights) *Controller {
	return &Controller{board: b, weights: weights}
}

// Target returns the placement the controller is steering towards.
func (c *Controller) Target() (board.Piece, bool) {
	return c.target, c.planned
}

// Next returns the next command for the active piece. Once the piece is
// lined up the controller lets gravity finish the job.
func (c *Controller) Next() board.Command {
	p, ok := c.board.Piece()
	if !ok {
		return board.CommandNone
	}

	if seq := c.board.PieceSeq(); seq != c.seq {
		c.seq = seq
		c.target, c.planned = bestPlacement(c.board.Grid(), p, c.weights)
		c.last = board.CommandNone
	} else {
		c.giveUpIfStuck(p)
	}
	c.lastSeen = p

	if !c.planned {
		c.last = board.CommandSoftDrop
		return c.last
	}
	switch {
	case p.Rotation != c.target.Rotation:
		c.last = board.CommandRotate
	case p.X < c.target.X:
		c.last = board.CommandRight
	case p.X > c.target.X:
		c.last = board.CommandLeft
	default:
		c.last = board.CommandSoftDrop
	}
	return c.last
}

// giveUpIfStuck settles for the current rotation or column when the previous
// command had no effect, so a blocked path does not stall the piece.
func (c *Controller) giveUpIfStuck(p board.Piece) {
	switch c.last {
	case board.CommandRotate:
		if p.Rotation == c.lastSeen.Rotation {
			c.target.Rotation = p.Rotation
		}
	case board.CommandLeft, board.CommandRight:
		if p.X == c.lastSeen.X {
			c.target.X = p.X
		}
	}
}

func bestPlacement(grid [][]board.Shape, cur board.Piece, w config.CPUWeights) (board.Piece, bool) {
	if len(grid) == 0 {
		return board.Piece{}, false
	}
	width := len(grid[0])
	best := math.Inf(-1)
	var target board.Piece
	found := false

	for rot := 0; rot < cur.Shape.DistinctRotations(); rot++ {
		for x := -3; x < width; x++ {
			p := board.Piece{Shape: cur.Shape, Rotation: rot, X: x, Y: cur.Y}
			if !fits(grid, p) {
				continue
			}
			for {
				q := p
				q.Y++
				if !fits(grid, q) {
					break
				}
				p = q
			}
			score, ok := evaluate(grid, p, w)
			if ok && score > best {
				best = score
				target = p
				found = true
			}
		}
	}
	return target, found
}

func fits(grid [][]board.Shape, p board.Piece) bool {
	height, width := len(grid), len(grid[0])
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= width || c.Y >= height {
			return false
		}
		if c.Y >= 0 && grid[c.Y][c.X] != board.ShapeNone {
			return false
		}
	}
	return true
}

// evaluate scores a grid after placing p. Placements that leave cells above
// the top edge are rejected.
func evaluate(grid [][]board.Shape, p board.Piece, w config.CPUWeights) (float64, bool) {
	placed := make([][]board.Shape, len(grid))
	for y := range grid {
		placed[y] = append([]board.Shape(nil), grid[y]...)
	}
	for _, c := range p.Cells() {
		if c.Y < 0 {
			return 0, false
		}
		placed[c.Y][c.X] = p.Shape
	}

	f := measure(placed)
	return w.Height*float64(f.aggregateHeight) +
		w.Lines*float64(f.lines) +
		w.Holes*float64(f.holes) +
		w.Bumpiness*float64(f.bumpiness), true
}

type features struct {
	aggregateHeight int
	lines           int
	holes           int
	bumpiness       int
}

// measure counts full rows, then computes column features on the grid as it
// would look once those rows are gone.
func measure(grid [][]board.Shape) features {
	var f features
	height := len(grid)
	if height == 0 {
		return f
	}
	width := len(grid[0])

	rows := make([][]board.Shape, 0, height)
	for _, row := range grid {
		full := true
		for _, s := range row {
			if s == board.ShapeNone {
				full = false
				break
			}
		}
		if full {
			f.lines++
			continue
		}
		rows = append(rows, row)
	}
	// Cleared rows come back as empty rows on top.
	offset := height - len(rows)

	heights := make([]int, width)
	for x := 0; x < width; x++ {
		top := -1
		for y, row := range rows {
			if row[x] == board.ShapeNone {
				if top >= 0 {
					f.holes++
				}
				continue
			}
			if top < 0 {
				top = y
			}
		}
		if top >= 0 {
			heights[x] = height - (top + offset)
		}
		f.aggregateHeight += heights[x]
	}
	for x := 1; x < width; x++ {
		d := heights[x] - heights[x-1]
		if d < 0 {
			d = -d
		}
		f.bumpiness += d
	}
	return f
}
