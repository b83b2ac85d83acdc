package tetris

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/vovakirdan/handheld/internal/config"
	"github.com/vovakirdan/handheld/internal/core"
)

func newGame(t *testing.T) (*Game, *State) {
	t.Helper()

	g, err := New(config.DefaultTetrisConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	st, err := g.Init(frameAt(0, 0).Env())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return g, st.(*State)
}

// frameAt builds a frame at nowMs since the surface was created.
func frameAt(nowMs, elapsedMs int) core.Frame {
	return core.Frame{
		Width:   core.ScreenWidth,
		Height:  core.ScreenHeight,
		Elapsed: time.Duration(elapsedMs) * time.Millisecond,
		Now:     time.Duration(nowMs) * time.Millisecond,
		Rand:    rand.New(rand.NewSource(int64(nowMs) + 1)),
	}
}

func playingGame(t *testing.T, current Piece) (*Game, *State) {
	g, s := newGame(t)
	s.phase = core.PhasePlaying
	s.Current = current
	s.Next = NewPiece(PieceO, 10)
	return g, s
}

func sortedCells(p Piece) []core.Point {
	cells := p.Cells()
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

func TestInit(t *testing.T) {
	_, s := newGame(t)

	if s.Board.Cols() != 10 || s.Board.Rows() != 18 {
		t.Errorf("board = %dx%d, expected 10x18", s.Board.Cols(), s.Board.Rows())
	}
	if s.Phase() != core.PhaseStart {
		t.Errorf("phase = %q, expected start", s.Phase())
	}
	if s.Score() != 0 || s.Level != 1 || s.Lines != 0 {
		t.Errorf("counters = %d/%d/%d, expected 0/1/0", s.Score(), s.Level, s.Lines)
	}
	if s.DropInterval != 500 {
		t.Errorf("drop interval = %f, expected 500", s.DropInterval)
	}
}

func TestSpawnPositionsDoNotCollide(t *testing.T) {
	board := NewBoard(10, 18)
	for kind := range Tetrominoes {
		p := NewPiece(kind, 10)
		if board.Collides(p) {
			t.Errorf("piece %d collides at spawn (%d, %d)", kind, p.X, p.Y)
		}
		if p.Y != 0 {
			t.Errorf("piece %d spawns at row %d, expected 0", kind, p.Y)
		}
	}

	if x := NewPiece(PieceI, 10).X; x != 3 {
		t.Errorf("I piece spawns at x=%d, expected 3", x)
	}
	if x := NewPiece(PieceO, 10).X; x != 4 {
		t.Errorf("O piece spawns at x=%d, expected 4", x)
	}
}

func TestRotateOIsStable(t *testing.T) {
	p := NewPiece(PieceO, 10)
	before := sortedCells(p)

	g, s := playingGame(t, p)
	for i := 0; i < 4; i++ {
		g.rotate(s)
		if got := sortedCells(s.Current); !reflect.DeepEqual(got, before) {
			t.Fatalf("rotation %d changed O cells: %v -> %v", i+1, before, got)
		}
	}
}

func TestRotateShape(t *testing.T) {
	got := Tetrominoes[PieceT].Shape.Rotate()
	want := Shape{{0, 1, 0}, {0, 1, 1}, {0, 1, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("T rotated = %v, expected %v", got, want)
	}

	// Four turns come back to the start
	s := Tetrominoes[PieceI].Shape
	r := s.Rotate().Rotate().Rotate().Rotate()
	if !reflect.DeepEqual(r, s) {
		t.Errorf("four rotations changed I: %v", r)
	}
}

func TestRotateDoesNotAliasTable(t *testing.T) {
	g, s := playingGame(t, NewPiece(PieceT, 10))
	g.rotate(s)
	if !reflect.DeepEqual(Tetrominoes[PieceT].Shape, Shape{{0, 1, 0}, {1, 1, 1}, {0, 0, 0}}) {
		t.Error("rotating a piece modified the tetromino table")
	}
}

func TestRotateWallKick(t *testing.T) {
	tests := []struct {
		name  string
		x     int
		wantX int
	}{
		// Vertical I: the solid column is shape column 2, so x=-1 puts it in
		// board column 1 and x=7 in column 9.
		{"kick right", -1, 0},
		{"kick left", 7, 6},
		{"in place", 3, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPiece(PieceI, 10)
			p.Shape = p.Shape.Rotate() // vertical, solid column at index 2
			p.X, p.Y = tc.x, 5

			g, s := playingGame(t, p)
			if s.Board.Collides(s.Current) {
				t.Fatal("test piece collides before rotating")
			}
			g.rotate(s)

			if s.Current.X != tc.wantX {
				t.Errorf("x = %d, expected %d", s.Current.X, tc.wantX)
			}
			if s.Board.Collides(s.Current) {
				t.Error("rotation produced a colliding piece")
			}
		})
	}
}

func TestRotateBlockedIsDiscarded(t *testing.T) {
	p := NewPiece(PieceI, 10)
	p.Y = 5
	g, s := playingGame(t, p)
	// Wall the horizontal I in from above and below
	for x := 0; x < 10; x++ {
		s.Board[5][x] = 1
		s.Board[7][x] = 1
		s.Board[8][x] = 1
	}
	before := s.Current

	g.rotate(s)
	if !reflect.DeepEqual(s.Current, before) {
		t.Errorf("blocked rotation should leave the piece unchanged")
	}
}

func TestCollision(t *testing.T) {
	b := NewBoard(10, 18)
	b[17][4] = 3

	tests := []struct {
		name string
		p    Piece
		want bool
	}{
		{"above board", Piece{Shape: Shape{{1, 1}}, X: 2, Y: -1}, false},
		{"above board off the side", Piece{Shape: Shape{{1, 1}}, X: 9, Y: -1}, true},
		{"left wall", Piece{Shape: Shape{{1}}, X: -1, Y: 3}, true},
		{"right wall", Piece{Shape: Shape{{1}}, X: 10, Y: 3}, true},
		{"floor", Piece{Shape: Shape{{1}}, X: 0, Y: 18}, true},
		{"locked block", Piece{Shape: Shape{{1}}, X: 4, Y: 17}, true},
		{"empty cell over shape gap", Piece{Shape: Shape{{1, 0, 1}}, X: 3, Y: 17}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Collides(tc.p); got != tc.want {
				t.Errorf("Collides() = %v, expected %v", got, tc.want)
			}
		})
	}
}

// fillRows fills the given rows except the listed columns.
func fillRows(b Board, rows []int, holes ...int) {
	for _, y := range rows {
		for x := range b[y] {
			b[y][x] = 1
		}
		for _, x := range holes {
			b[y][x] = 0
		}
	}
}

func TestClearTwoLinesScore(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		lines     int
		wantScore int
	}{
		{"level 1", 1, 0, 100},
		{"level 3", 3, 20, 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPiece(PieceO, 10)
			p.X, p.Y = 0, 16
			g, s := playingGame(t, p)
			s.Level, s.Lines = tc.level, tc.lines
			fillRows(s.Board, []int{16, 17}, 0, 1)

			g.dropStep(s, frameAt(0, 0))

			if s.Score() != tc.wantScore {
				t.Errorf("score = %d, expected %d", s.Score(), tc.wantScore)
			}
			if s.Lines != tc.lines+2 {
				t.Errorf("lines = %d, expected %d", s.Lines, tc.lines+2)
			}
			for y := 16; y < 18; y++ {
				for x, v := range s.Board[y] {
					if v != 0 {
						t.Fatalf("cell (%d, %d) = %d, expected cleared", x, y, v)
					}
				}
			}
		})
	}
}

func TestLineScoreTable(t *testing.T) {
	g, s := newGame(t)
	for n, want := range map[int]int{1: 40, 2: 100, 3: 300, 4: 1200} {
		s.score, s.Level, s.Lines = 0, 1, 0
		g.award(s, n)
		if s.Score() != want {
			t.Errorf("%d lines scored %d, expected %d", n, s.Score(), want)
		}
	}
}

func TestClearLinesRechecksRow(t *testing.T) {
	b := NewBoard(10, 18)
	fillRows(b, []int{16, 17})
	b[15][3] = 5

	if n := b.ClearLines(); n != 2 {
		t.Fatalf("cleared %d lines, expected 2", n)
	}
	if b[17][3] != 5 {
		t.Error("partial row should fall to the bottom")
	}
	for y := 0; y < 17; y++ {
		for _, v := range b[y] {
			if v != 0 {
				t.Fatalf("row %d should be empty", y)
			}
		}
	}
}

func TestClearLinesNonAdjacent(t *testing.T) {
	b := NewBoard(10, 18)
	fillRows(b, []int{15, 17})
	b[16][0] = 2

	if n := b.ClearLines(); n != 2 {
		t.Fatalf("cleared %d lines, expected 2", n)
	}
	if b[17][0] != 2 {
		t.Errorf("row between clears should land at the bottom, got %v", b[17])
	}
}

func TestLevelSpeedsUpGravity(t *testing.T) {
	tests := []struct {
		lines        int
		wantLevel    int
		wantInterval float64
	}{
		{9, 1, 500},
		{10, 2, 450},
		{30, 4, 350},
		{80, 9, 100},
		{200, 21, 100},
	}

	for _, tc := range tests {
		g, s := newGame(t)
		s.Lines = tc.lines - 1
		g.award(s, 1)
		if s.Level != tc.wantLevel || s.DropInterval != tc.wantInterval {
			t.Errorf("%d lines: level %d interval %f, expected %d / %f",
				tc.lines, s.Level, s.DropInterval, tc.wantLevel, tc.wantInterval)
		}
	}
}

func TestGravityUsesStrictInterval(t *testing.T) {
	g, s := playingGame(t, NewPiece(PieceT, 10))

	g.Step(s, core.ButtonState{}, frameAt(500, 500))
	if s.Current.Y != 0 {
		t.Fatalf("piece fell after exactly one interval, y = %d", s.Current.Y)
	}
	g.Step(s, core.ButtonState{}, frameAt(501, 1))
	if s.Current.Y != 1 {
		t.Errorf("piece y = %d, expected 1 after the interval passed", s.Current.Y)
	}
	if s.dropAcc != 0 {
		t.Errorf("accumulator = %f, expected reset", s.dropAcc)
	}
}

func TestMoveDelay(t *testing.T) {
	g, s := playingGame(t, NewPiece(PieceT, 10))
	left := core.ButtonState{Left: true}

	g.Step(s, left, frameAt(0, 0))
	if s.Current.X != 3 {
		t.Fatalf("x = %d, expected first move to 3", s.Current.X)
	}
	g.Step(s, left, frameAt(100, 0))
	g.Step(s, left, frameAt(200, 0))
	if s.Current.X != 3 {
		t.Errorf("x = %d, repeat must wait for the move delay", s.Current.X)
	}
	g.Step(s, left, frameAt(201, 0))
	if s.Current.X != 2 {
		t.Errorf("x = %d, expected second move after 200ms", s.Current.X)
	}
}

func TestShiftStopsAtWall(t *testing.T) {
	g, s := playingGame(t, NewPiece(PieceO, 10))
	for i := 0; i < 10; i++ {
		g.Step(s, core.ButtonState{Right: true}, frameAt(i*250, 0))
	}
	if s.Current.X != 8 {
		t.Errorf("x = %d, expected O pinned at the right wall", s.Current.X)
	}
}

func TestRotateOncePerPress(t *testing.T) {
	g, s := playingGame(t, NewPiece(PieceT, 10))
	s.Current.Y = 5
	spawn := s.Current.Shape

	g.Step(s, core.ButtonState{A: true}, frameAt(0, 0))
	once := s.Current.Shape
	if reflect.DeepEqual(once, spawn) {
		t.Fatal("A press should rotate")
	}
	for i := 1; i < 5; i++ {
		g.Step(s, core.ButtonState{A: true}, frameAt(i*16, 0))
	}
	if !reflect.DeepEqual(s.Current.Shape, once) {
		t.Error("holding A must not keep rotating")
	}

	g.Step(s, core.ButtonState{}, frameAt(100, 0))
	g.Step(s, core.ButtonState{A: true}, frameAt(116, 0))
	if reflect.DeepEqual(s.Current.Shape, once) {
		t.Error("a new press should rotate again")
	}
}

func TestHardDrop(t *testing.T) {
	g, s := playingGame(t, NewPiece(PieceO, 10))

	g.Step(s, core.ButtonState{B: true}, frameAt(0, 0))

	// O covers rows 0-1 and falls 16 rows
	if s.Score() != 16 {
		t.Errorf("score = %d, expected 16", s.Score())
	}
	if s.Board[17][4] != 4 || s.Board[16][5] != 4 {
		t.Error("O should be locked at the bottom")
	}
	if s.Current.Y != 0 {
		t.Error("next piece should spawn at the top")
	}

	// Held B does not drop again
	g.Step(s, core.ButtonState{B: true}, frameAt(16, 0))
	if s.Score() != 16 {
		t.Errorf("score = %d, holding B must not drop again", s.Score())
	}
}

func TestSoftDropLocks(t *testing.T) {
	p := NewPiece(PieceO, 10)
	p.Y = 16
	g, s := playingGame(t, p)

	g.Step(s, core.ButtonState{Down: true}, frameAt(0, 0))
	if s.Board[17][4] == 0 {
		t.Error("down on the floor should lock the piece")
	}
}

func TestPauseToggle(t *testing.T) {
	g, s := playingGame(t, NewPiece(PieceT, 10))

	_, d := g.Step(s, core.ButtonState{Start: true}, frameAt(0, 0))
	if s.Phase() != core.PhasePaused {
		t.Fatalf("phase = %q, expected paused", s.Phase())
	}
	if !d.HasText("PAUSED") {
		t.Errorf("texts = %v", d.Texts())
	}

	// Still held, and a long time passes: frozen
	g.Step(s, core.ButtonState{Start: true}, frameAt(5000, 5000))
	if s.Phase() != core.PhasePaused || s.Current.Y != 0 {
		t.Fatal("paused game must not resume on a held button or fall")
	}

	g.Step(s, core.ButtonState{}, frameAt(5016, 16))
	g.Step(s, core.ButtonState{Start: true}, frameAt(5032, 16))
	if s.Phase() != core.PhasePlaying {
		t.Errorf("phase = %q, expected playing after a new press", s.Phase())
	}
}

func TestStartDoesNotImmediatelyPause(t *testing.T) {
	g, s := newGame(t)
	start := core.ButtonState{Start: true}

	g.Step(s, start, frameAt(0, 0))
	if s.Phase() != core.PhasePlaying {
		t.Fatalf("phase = %q, expected playing", s.Phase())
	}
	for i := 1; i < 10; i++ {
		g.Step(s, start, frameAt(i*16, 16))
	}
	if s.Phase() != core.PhasePlaying {
		t.Errorf("phase = %q, held start must not pause", s.Phase())
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	p := NewPiece(PieceO, 10)
	p.X, p.Y = 0, 16
	g, s := playingGame(t, p)
	s.Next = NewPiece(PieceT, 10)
	fillRows(s.Board, []int{0, 1, 2, 3}, 9)

	g.dropStep(s, frameAt(0, 0))
	if s.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %q, expected gameOver", s.Phase())
	}

	_, d := g.Step(s, core.ButtonState{}, frameAt(16, 16))
	for _, want := range []string{"GAME OVER", "SCORE: 0", "PRESS START"} {
		if !d.HasText(want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g, s := playingGame(t, NewPiece(PieceT, 10))
	s.phase = core.PhaseGameOver
	s.score = 900
	start := core.ButtonState{Start: true}

	next, _ := g.Step(s, start, frameAt(0, 0))
	ns := next.(*State)
	if ns == s {
		t.Fatal("restart should build a new state")
	}
	if ns.Phase() != core.PhasePlaying || ns.Score() != 0 {
		t.Fatalf("restart gave phase %q score %d", ns.Phase(), ns.Score())
	}

	// The press that restarted must not pause the new game
	g.Step(ns, start, frameAt(16, 16))
	if ns.Phase() != core.PhasePlaying {
		t.Errorf("phase = %q, expected playing", ns.Phase())
	}
}

func TestMergeSkipsRowsAboveBoard(t *testing.T) {
	b := NewBoard(10, 18)
	p := Piece{Shape: Shape{{1}, {1}}, Color: 6, X: 2, Y: -1}
	b.Merge(p)

	if b[0][2] != 6 {
		t.Error("visible cell should be merged")
	}
}

func TestHUD(t *testing.T) {
	g, s := playingGame(t, NewPiece(PieceT, 10))
	s.score, s.Level, s.Lines = 1300, 2, 12

	_, d := g.Step(s, core.ButtonState{}, frameAt(0, 0))
	for _, want := range []string{"SCORE: 1300", "LEVEL: 2", "LINES: 12", "NEXT:"} {
		if !d.HasText(want) {
			t.Errorf("HUD missing %q, got %v", want, d.Texts())
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.LineScores = []int{1, 2}
	if _, err := New(cfg); err == nil {
		t.Error("expected error for short line score table")
	}
}
