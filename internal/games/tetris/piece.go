package tetris

import (
	"math/rand"

	"github.com/vovakirdan/handheld/internal/core"
)

// Shape is a square or rectangular occupancy matrix; non-zero cells are solid.
type Shape [][]uint8

// Rotate returns the shape turned 90 degrees clockwise.
func (s Shape) Rotate() Shape {
	rows := len(s)
	if rows == 0 {
		return s
	}
	cols := len(s[0])

	out := make(Shape, cols)
	for y := range out {
		out[y] = make([]uint8, rows)
		for x := range out[y] {
			out[y][x] = s[rows-1-x][y]
		}
	}
	return out
}

// Cells returns the grid positions covered by a shape placed at (px, py).
func (s Shape) Cells(px, py int) []core.Point {
	var cells []core.Point
	for y, row := range s {
		for x, v := range row {
			if v != 0 {
				cells = append(cells, core.Point{X: px + x, Y: py + y})
			}
		}
	}
	return cells
}

// Piece is a tetromino on the board.
type Piece struct {
	Shape Shape
	Color uint8 // 1-7
	X, Y  int
}

// Cells returns the grid positions the piece covers.
func (p Piece) Cells() []core.Point {
	return p.Shape.Cells(p.X, p.Y)
}

// Moved returns a copy shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Tetromino indices into Tetrominoes.
const (
	PieceI = iota
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// Tetrominoes holds the seven spawn shapes with their color ids.
var Tetrominoes = [7]struct {
	Shape Shape
	Color uint8
}{
	PieceI: {Shape{{0, 0, 0, 0}, {1, 1, 1, 1}, {0, 0, 0, 0}, {0, 0, 0, 0}}, 1},
	PieceJ: {Shape{{1, 0, 0}, {1, 1, 1}, {0, 0, 0}}, 2},
	PieceL: {Shape{{0, 0, 1}, {1, 1, 1}, {0, 0, 0}}, 3},
	PieceO: {Shape{{1, 1}, {1, 1}}, 4},
	PieceS: {Shape{{0, 1, 1}, {1, 1, 0}, {0, 0, 0}}, 5},
	PieceT: {Shape{{0, 1, 0}, {1, 1, 1}, {0, 0, 0}}, 6},
	PieceZ: {Shape{{1, 1, 0}, {0, 1, 1}, {0, 0, 0}}, 7},
}

// NewPiece returns tetromino kind centered horizontally in row 0 of a board
// cols wide. The shape is copied so rotations never alias the table.
func NewPiece(kind, cols int) Piece {
	t := Tetrominoes[kind]
	shape := make(Shape, len(t.Shape))
	for i, row := range t.Shape {
		shape[i] = append([]uint8(nil), row...)
	}
	return Piece{
		Shape: shape,
		Color: t.Color,
		X:     cols/2 - len(shape[0])/2,
		Y:     0,
	}
}

// RandomPiece picks one of the seven tetrominoes uniformly.
func RandomPiece(rng *rand.Rand, cols int) Piece {
	return NewPiece(rng.Intn(len(Tetrominoes)), cols)
}

// blockColors maps color ids to shades. Index 0 is the empty cell.
var blockColors = [8]core.Color{
	core.RGB(15, 56, 15),
	core.RGB(60, 105, 60),
	core.RGB(90, 142, 90),
	core.RGB(120, 160, 120),
	core.RGB(80, 130, 80),
	core.RGB(100, 150, 100),
	core.RGB(70, 120, 70),
	core.RGB(90, 135, 90),
}

// BlockColor returns the shade for a color id.
func BlockColor(id uint8) core.Color {
	if int(id) >= len(blockColors) {
		return blockColors[0]
	}
	return blockColors[id]
}
