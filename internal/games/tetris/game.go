// Package tetris implements falling-block Tetris with gravity that speeds up
// every ten cleared lines.
package tetris

import (
	"fmt"
	"math"

	"github.com/vovakirdan/handheld/internal/config"
	"github.com/vovakirdan/handheld/internal/core"
	"github.com/vovakirdan/handheld/internal/registry"
)

// State is the state of one Tetris game.
type State struct {
	Board   Board
	Current Piece
	Next    Piece

	score int
	Level int
	Lines int
	phase core.Phase

	// Timing, all in milliseconds.
	DropInterval float64
	dropAcc      float64
	lastMove     float64

	start, rotate, drop core.Latch
}

// Phase returns start, playing, paused or gameOver.
func (s *State) Phase() core.Phase { return s.phase }

// Score returns the points collected this game.
func (s *State) Score() int { return s.score }

// Game implements the Tetris rules.
type Game struct {
	cfg config.TetrisConfig
}

// New creates a Tetris game from cfg.
func New(cfg config.TetrisConfig) (*Game, error) {
	if cfg.Cols < 4 || cfg.Rows < 4 {
		return nil, fmt.Errorf("tetris: board %dx%d too small", cfg.Cols, cfg.Rows)
	}
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("tetris: cell size must be positive, got %d", cfg.CellSize)
	}
	if len(cfg.LineScores) != 4 {
		return nil, fmt.Errorf("tetris: need 4 line scores, got %d", len(cfg.LineScores))
	}
	return &Game{cfg: cfg}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tetris"
}

// Init returns an empty board with the first two pieces drawn.
func (g *Game) Init(env core.Env) (core.State, error) {
	if env.Width < g.cfg.Cols*g.cfg.CellSize {
		return nil, fmt.Errorf("tetris: surface %dpx too narrow for %d columns", env.Width, g.cfg.Cols)
	}

	rng := env.Random()
	s := &State{
		Board:        NewBoard(g.cfg.Cols, g.cfg.Rows),
		Current:      RandomPiece(rng, g.cfg.Cols),
		Next:         RandomPiece(rng, g.cfg.Cols),
		Level:        1,
		phase:        core.PhaseStart,
		DropInterval: float64(g.cfg.DropMs),
		lastMove:     math.Inf(-1),
	}
	if s.Board.Collides(s.Current) {
		s.phase = core.PhaseGameOver
	}
	return s, nil
}

// Step advances the game by one frame.
func (g *Game) Step(st core.State, in core.ButtonState, f core.Frame) (core.State, *core.DrawList) {
	s := st.(*State)

	switch s.phase {
	case core.PhaseStart:
		if s.start.Rising(in.Start) {
			s.phase = core.PhasePlaying
		}

	case core.PhasePlaying:
		s.dropAcc += f.ElapsedMs()
		if s.dropAcc > s.DropInterval {
			g.dropStep(s, f)
			s.dropAcc = 0
		}
		if s.phase == core.PhasePlaying {
			g.handleControls(s, in, f)
		}

	case core.PhasePaused:
		if s.start.Rising(in.Start) {
			s.phase = core.PhasePlaying
		}

	case core.PhaseGameOver:
		if s.start.Rising(in.Start) {
			next, err := g.Init(f.Env())
			if err == nil {
				s = next.(*State)
				s.phase = core.PhasePlaying
				s.start.Hold()
			}
		}
	}

	return s, g.draw(s, f)
}

// handleControls applies one frame of player input while playing.
func (g *Game) handleControls(s *State, in core.ButtonState, f core.Frame) {
	if s.start.Rising(in.Start) {
		s.phase = core.PhasePaused
		return
	}

	// Held directions repeat at most once per move delay
	now := f.NowMs()
	if now-s.lastMove > float64(g.cfg.MoveDelayMs) {
		if in.Left {
			g.shift(s, -1)
			s.lastMove = now
		} else if in.Right {
			g.shift(s, 1)
			s.lastMove = now
		}
		if in.Down && s.phase == core.PhasePlaying {
			g.dropStep(s, f)
			s.lastMove = now
		}
	}

	if s.rotate.Rising(in.A) && s.phase == core.PhasePlaying {
		g.rotate(s)
	}
	if s.drop.Rising(in.B) && s.phase == core.PhasePlaying {
		g.hardDrop(s, f)
	}
}

// shift moves the current piece sideways if it fits.
func (g *Game) shift(s *State, dx int) bool {
	moved := s.Current.Moved(dx, 0)
	if s.Board.Collides(moved) {
		return false
	}
	s.Current = moved
	return true
}

// dropStep moves the current piece down one row, locking it if it cannot.
func (g *Game) dropStep(s *State, f core.Frame) {
	moved := s.Current.Moved(0, 1)
	if !s.Board.Collides(moved) {
		s.Current = moved
		return
	}
	g.lock(s, f)
}

// hardDrop drops the piece to the floor, one point per row, and locks it.
func (g *Game) hardDrop(s *State, f core.Frame) {
	for {
		moved := s.Current.Moved(0, 1)
		if s.Board.Collides(moved) {
			break
		}
		s.Current = moved
		s.score++
	}
	g.lock(s, f)
}

// rotate turns the current piece clockwise, kicking one cell left or one
// cell right off walls and blocks. The rotation is dropped if nothing fits.
func (g *Game) rotate(s *State) {
	rotated := s.Current
	rotated.Shape = s.Current.Shape.Rotate()

	for _, dx := range []int{0, -1, 2} {
		rotated.X += dx
		if !s.Board.Collides(rotated) {
			s.Current = rotated
			return
		}
	}
}

// lock merges the piece, clears lines and brings in the next piece.
func (g *Game) lock(s *State, f core.Frame) {
	s.Board.Merge(s.Current)
	g.award(s, s.Board.ClearLines())

	s.Current = s.Next
	s.Next = RandomPiece(f.Random(), g.cfg.Cols)
	if s.Board.Collides(s.Current) {
		s.phase = core.PhaseGameOver
	}
}

// award scores n simultaneously cleared lines and updates level and speed.
func (g *Game) award(s *State, n int) {
	if n <= 0 {
		return
	}
	if n > len(g.cfg.LineScores) {
		n = len(g.cfg.LineScores)
	}
	s.score += g.cfg.LineScores[n-1] * s.Level
	s.Lines += n
	s.Level = s.Lines/10 + 1

	interval := g.cfg.DropMs - (s.Level-1)*g.cfg.DropStepMs
	s.DropInterval = float64(max(g.cfg.DropFloorMs, interval))
}

// Register the game with the registry
func init() {
	registry.Register("tetris", "Tetris", func(cfg config.Config) (registry.Simulation, error) {
		return New(cfg.Tetris)
	})
}
