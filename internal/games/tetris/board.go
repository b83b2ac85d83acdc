package tetris

// Board is the playfield: Board[y][x] is 0 when empty or the color id of a
// locked block.
type Board [][]uint8

// NewBoard returns an empty board.
func NewBoard(cols, rows int) Board {
	b := make(Board, rows)
	for y := range b {
		b[y] = make([]uint8, cols)
	}
	return b
}

// Cols returns the board width.
func (b Board) Cols() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Rows returns the board height.
func (b Board) Rows() int { return len(b) }

// Collides reports whether p overlaps a wall, the floor or a locked block.
// Cells above the board never collide with content.
func (b Board) Collides(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= b.Cols() || c.Y >= b.Rows() {
			return true
		}
		if c.Y >= 0 && b[c.Y][c.X] != 0 {
			return true
		}
	}
	return false
}

// Merge locks p into the board. Cells above the top row are dropped.
func (b Board) Merge(p Piece) {
	for _, c := range p.Cells() {
		if c.Y >= 0 && c.Y < b.Rows() && c.X >= 0 && c.X < b.Cols() {
			b[c.Y][c.X] = p.Color
		}
	}
}

// ClearLines removes every full row, shifting the rows above down, and
// returns how many were removed.
func (b Board) ClearLines() int {
	cleared := 0
	for y := b.Rows() - 1; y >= 0; y-- {
		if !b.full(y) {
			continue
		}
		for yy := y; yy > 0; yy-- {
			copy(b[yy], b[yy-1])
		}
		for x := range b[0] {
			b[0][x] = 0
		}
		cleared++
		y++ // The row above moved into y; check it again
	}
	return cleared
}

func (b Board) full(y int) bool {
	for _, v := range b[y] {
		if v == 0 {
			return false
		}
	}
	return true
}
