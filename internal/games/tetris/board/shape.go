package board

import "github.com/vovakirdan/tui-tetris/internal/core"

// Shape identifies a tetromino. ShapeNone marks an empty grid cell.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeI
	ShapeJ
	ShapeL
	ShapeO
	ShapeS
	ShapeZ
	ShapeT
)

// ShapeCount is the number of real tetrominoes.
const ShapeCount = 7

// Point is a grid coordinate. Y grows downwards; row 0 is the top.
type Point struct {
	X, Y int
}

type shapeDef struct {
	size  int // bounding box edge
	cells [4]Point
	color core.Color
	name  string
}

var shapeDefs = [...]shapeDef{
	ShapeI: {4, [4]Point{{0, 1}, {1, 1}, {2, 1}, {3, 1}}, core.ColorCyan, "I"},
	ShapeJ: {3, [4]Point{{0, 0}, {0, 1}, {1, 1}, {2, 1}}, core.ColorBlue, "J"},
	ShapeL: {3, [4]Point{{2, 0}, {0, 1}, {1, 1}, {2, 1}}, core.ColorOrange, "L"},
	ShapeO: {2, [4]Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, core.ColorYellow, "O"},
	ShapeS: {3, [4]Point{{1, 0}, {2, 0}, {0, 1}, {1, 1}}, core.ColorGreen, "S"},
	ShapeZ: {3, [4]Point{{0, 0}, {1, 0}, {1, 1}, {2, 1}}, core.ColorRed, "Z"},
	ShapeT: {3, [4]Point{{1, 0}, {0, 1}, {1, 1}, {2, 1}}, core.ColorMagenta, "T"},
}

// rotations[shape][rot] holds the cell offsets for each clockwise rotation.
var rotations [ShapeCount + 1][4][4]Point

func init() {
	for s := ShapeI; s <= ShapeT; s++ {
		def := shapeDefs[s]
		cur := def.cells
		for r := 0; r < 4; r++ {
			rotations[s][r] = cur
			var next [4]Point
			for i, p := range cur {
				next[i] = Point{X: def.size - 1 - p.Y, Y: p.X}
			}
			cur = next
		}
	}
}

// Cells returns the offsets of a shape at a rotation (0-3) relative to the
// piece origin.
func Cells(s Shape, rot int) [4]Point {
	if s <= ShapeNone || s > ShapeT {
		return [4]Point{}
	}
	return rotations[s][((rot%4)+4)%4]
}

// Color returns the display colour of the shape.
func (s Shape) Color() core.Color {
	if s <= ShapeNone || s > ShapeT {
		return core.ColorDefault
	}
	return shapeDefs[s].color
}

// String returns the conventional one-letter name.
func (s Shape) String() string {
	if s <= ShapeNone || s > ShapeT {
		return "."
	}
	return shapeDefs[s].name
}

// Size returns the edge of the shape's bounding box.
func (s Shape) Size() int {
	if s <= ShapeNone || s > ShapeT {
		return 0
	}
	return shapeDefs[s].size
}

// DistinctRotations is how many rotations produce different footprints.
func (s Shape) DistinctRotations() int {
	switch s {
	case ShapeO:
		return 1
	case ShapeI, ShapeS, ShapeZ:
		return 2
	default:
		return 4
	}
}
