// Package board implements the falling-block playfield: the grid, the active
// piece, the 7-bag randomiser and the row clearing animation.
//
// The board knows nothing about levels, health or opponents. It only reports
// how many rows a lock completed and how many lines it has cleared in total.
package board

import (
	"math/rand"
	"strings"
)

// Default playfield dimensions.
const (
	DefaultWidth      = 10
	DefaultHeight     = 20
	DefaultClearTicks = 18
)

// Piece is the active tetromino. X and Y locate the top-left corner of the
// shape's bounding box on the grid.
type Piece struct {
	Shape    Shape
	Rotation int
	X, Y     int
}

// Cells returns the absolute grid positions covered by the piece.
func (p Piece) Cells() [4]Point {
	offsets := Cells(p.Shape, p.Rotation)
	var out [4]Point
	for i, o := range offsets {
		out[i] = Point{X: p.X + o.X, Y: p.Y + o.Y}
	}
	return out
}

// Board is a single playfield.
type Board struct {
	width      int
	height     int
	clearTicks int

	grid [][]Shape // [y][x]

	piece    Piece
	hasPiece bool
	pieceSeq uint64
	next     Shape
	bag      []Shape
	rng      *rand.Rand

	lines     int
	completed []int // rows awaiting removal, top to bottom
	lastCount int
	clearTick int
	blocked   bool
}

// New creates a board and spawns its first piece. Non-positive sizes fall
// back to the defaults.
func New(width, height, clearTicks int, seed int64) *Board {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if clearTicks <= 0 {
		clearTicks = DefaultClearTicks
	}
	b := &Board{
		width:      width,
		height:     height,
		clearTicks: clearTicks,
		rng:        rand.New(rand.NewSource(seed)),
	}
	b.grid = make([][]Shape, height)
	for y := range b.grid {
		b.grid[y] = make([]Shape, width)
	}
	b.Reset()
	return b
}

// Reset empties the grid, zeroes the line count and spawns a fresh piece.
// The randomiser keeps its state so consecutive rounds differ.
func (b *Board) Reset() {
	for y := range b.grid {
		for x := range b.grid[y] {
			b.grid[y][x] = ShapeNone
		}
	}
	b.lines = 0
	b.completed = nil
	b.lastCount = 0
	b.clearTick = 0
	b.blocked = false
	b.hasPiece = false
	b.bag = b.bag[:0]
	b.next = b.draw()
	b.spawn()
}

func (b *Board) draw() Shape {
	if len(b.bag) == 0 {
		for _, i := range b.rng.Perm(ShapeCount) {
			b.bag = append(b.bag, Shape(i+1))
		}
	}
	s := b.bag[0]
	b.bag = b.bag[1:]
	return s
}

func (b *Board) spawn() bool {
	shape := b.next
	b.next = b.draw()
	p := Piece{Shape: shape, X: (b.width - shape.Size()) / 2}
	minY := 4
	for _, c := range Cells(shape, 0) {
		minY = min(minY, c.Y)
	}
	p.Y = -minY
	b.pieceSeq++
	if !b.Fits(p) {
		b.blocked = true
		b.hasPiece = false
		return false
	}
	b.piece = p
	b.hasPiece = true
	return true
}

// Fits reports whether a piece can occupy its position. Cells above the top
// edge are allowed so pieces can rotate right after spawning.
func (b *Board) Fits(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= b.width || c.Y >= b.height {
			return false
		}
		if c.Y >= 0 && b.grid[c.Y][c.X] != ShapeNone {
			return false
		}
	}
	return true
}

func (b *Board) canMove() bool {
	return b.hasPiece && !b.blocked && len(b.completed) == 0
}

// Shift moves the active piece horizontally by dx columns.
func (b *Board) Shift(dx int) bool {
	if !b.canMove() {
		return false
	}
	p := b.piece
	p.X += dx
	if !b.Fits(p) {
		return false
	}
	b.piece = p
	return true
}

var kicks = [...]Point{{0, 0}, {-1, 0}, {1, 0}, {-2, 0}, {2, 0}, {0, -1}}

// Rotate turns the active piece clockwise, trying small horizontal kicks
// and one upward kick when the plain rotation collides.
func (b *Board) Rotate() bool {
	if !b.canMove() {
		return false
	}
	for _, k := range kicks {
		p := b.piece
		p.Rotation = (p.Rotation + 1) % 4
		p.X += k.X
		p.Y += k.Y
		if b.Fits(p) {
			b.piece = p
			return true
		}
	}
	return false
}

// Fall moves the active piece down one row. It returns false when the piece
// has landed.
func (b *Board) Fall() bool {
	if !b.canMove() {
		return false
	}
	p := b.piece
	p.Y++
	if !b.Fits(p) {
		return false
	}
	b.piece = p
	return true
}

// HardDrop moves the active piece to its landing row and returns the number
// of rows travelled. The piece is not locked.
func (b *Board) HardDrop() int {
	n := 0
	for b.Fall() {
		n++
	}
	return n
}

// Lock writes the active piece into the grid. Full rows start the clear
// animation; otherwise the next piece spawns. Lock returns false when the
// board has stacked out, either because the piece locked above the top edge
// or because the next piece has no room.
func (b *Board) Lock() bool {
	if !b.canMove() {
		return !b.blocked
	}
	b.hasPiece = false
	for _, c := range b.piece.Cells() {
		if c.Y < 0 {
			b.blocked = true
			return false
		}
		b.grid[c.Y][c.X] = b.piece.Shape
	}

	b.completed = b.completed[:0]
	for y := 0; y < b.height; y++ {
		if b.rowFull(y) {
			b.completed = append(b.completed, y)
		}
	}
	if len(b.completed) > 0 {
		b.lastCount = len(b.completed)
		b.clearTick = 0
		return true
	}
	return b.spawn()
}

func (b *Board) rowFull(y int) bool {
	for _, s := range b.grid[y] {
		if s == ShapeNone {
			return false
		}
	}
	return true
}

// HasComplete reports whether completed rows are still being animated.
func (b *Board) HasComplete() bool {
	return len(b.completed) > 0
}

// CompletedRowCount returns how many rows the most recent lock completed. It
// stays readable after the rows have been removed.
func (b *Board) CompletedRowCount() int {
	return b.lastCount
}

// CompletedRows returns the rows currently flashing, top to bottom.
func (b *Board) CompletedRows() []int {
	out := make([]int, len(b.completed))
	copy(out, b.completed)
	return out
}

// ClearProgress returns how many animation ticks have elapsed out of the
// total.
func (b *Board) ClearProgress() (elapsed, total int) {
	return b.clearTick, b.clearTicks
}

// UpdateComplete advances the clear animation by one tick. On the last tick
// the rows are removed, the line count grows and the next piece spawns.
func (b *Board) UpdateComplete() {
	if len(b.completed) == 0 {
		return
	}
	b.clearTick++
	if b.clearTick < b.clearTicks {
		return
	}
	b.removeRows(b.completed)
	b.lines += len(b.completed)
	b.completed = b.completed[:0]
	b.clearTick = 0
	b.spawn()
}

func (b *Board) removeRows(rows []int) {
	full := make(map[int]bool, len(rows))
	for _, y := range rows {
		full[y] = true
	}
	dst := b.height - 1
	for src := b.height - 1; src >= 0; src-- {
		if full[src] {
			continue
		}
		if dst != src {
			copy(b.grid[dst], b.grid[src])
		}
		dst--
	}
	for ; dst >= 0; dst-- {
		for x := range b.grid[dst] {
			b.grid[dst][x] = ShapeNone
		}
	}
}

// Lines returns the total number of lines cleared since the last Reset.
func (b *Board) Lines() int {
	return b.lines
}

// Blocked reports whether the board has stacked out.
func (b *Board) Blocked() bool {
	return b.blocked
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// At returns the locked shape at a grid position, or ShapeNone when empty or
// out of range.
func (b *Board) At(x, y int) Shape {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return ShapeNone
	}
	return b.grid[y][x]
}

// Grid returns a copy of the locked cells.
func (b *Board) Grid() [][]Shape {
	out := make([][]Shape, b.height)
	for y := range b.grid {
		out[y] = make([]Shape, b.width)
		copy(out[y], b.grid[y])
	}
	return out
}

// Piece returns the active piece and whether one is in play.
func (b *Board) Piece() (Piece, bool) {
	return b.piece, b.hasPiece
}

// PieceSeq increments every time a new piece spawns.
func (b *Board) PieceSeq() uint64 {
	return b.pieceSeq
}

// Next returns the upcoming shape.
func (b *Board) Next() Shape {
	return b.next
}

// Ghost returns where the active piece would land.
func (b *Board) Ghost() (Piece, bool) {
	if !b.hasPiece {
		return Piece{}, false
	}
	p := b.piece
	for {
		q := p
		q.Y++
		if !b.Fits(q) {
			return p, true
		}
		p = q
	}
}

// Snapshot renders the grid and active piece as text, one row per line.
// Locked cells use the shape letter, the active piece uses '#', and empty
// cells '.'.
func (b *Board) Snapshot() string {
	active := make(map[Point]bool, 4)
	if b.hasPiece {
		for _, c := range b.piece.Cells() {
			active[c] = true
		}
	}
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			switch {
			case active[Point{X: x, Y: y}]:
				sb.WriteByte('#')
			default:
				sb.WriteString(b.grid[y][x].String())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
