// Package snake implements the classic Snake game on a grid of square cells.
// The snake moves at a fixed number of steps per second regardless of the
// frame rate it is rendered at.
package snake

import (
	"fmt"

	"github.com/vovakirdan/handheld/internal/config"
	"github.com/vovakirdan/handheld/internal/core"
	"github.com/vovakirdan/handheld/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// delta returns the grid offset of one step in direction d.
func (d Direction) delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// maxCatchUp bounds how many moves one frame may perform after a stall.
const maxCatchUp = 4

// State is the state of one Snake round.
type State struct {
	Cols, Rows int
	Snake      []core.Point // Head at index 0
	Food       core.Point   // (-1, -1) when the grid is full
	Dir        Direction
	NextDir    Direction // Buffered direction for next move

	score   int
	phase   core.Phase
	sinceMs float64 // Time accumulated towards the next move
}

// Phase returns start, playing or gameOver.
func (s *State) Phase() core.Phase { return s.phase }

// Score returns the points collected this round.
func (s *State) Score() int { return s.score }

// Head returns the head cell.
func (s *State) Head() core.Point { return s.Snake[0] }

// Game implements the Snake rules.
type Game struct {
	cfg    config.SnakeConfig
	stepMs float64
}

// New creates a Snake game from cfg.
func New(cfg config.SnakeConfig) (*Game, error) {
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("snake: cell size must be positive, got %d", cfg.CellSize)
	}
	if cfg.StepsPerSec <= 0 {
		return nil, fmt.Errorf("snake: steps per second must be positive, got %g", cfg.StepsPerSec)
	}
	return &Game{cfg: cfg, stepMs: 1000 / cfg.StepsPerSec}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Snake"
}

// Init places a one-cell snake at the center of the grid, heading right.
func (g *Game) Init(env core.Env) (core.State, error) {
	cols, rows := env.Width/g.cfg.CellSize, env.Height/g.cfg.CellSize
	if cols < 2 || rows < 1 {
		return nil, fmt.Errorf("snake: surface %dx%d too small for %dpx cells", env.Width, env.Height, g.cfg.CellSize)
	}

	s := &State{
		Cols:    cols,
		Rows:    rows,
		Snake:   []core.Point{{X: cols / 2, Y: rows / 2}},
		Dir:     DirRight,
		NextDir: DirRight,
		phase:   core.PhaseStart,
	}
	s.Food = g.spawnFood(s, env)
	return s, nil
}

// Step advances the round by one frame. Movement happens on its own clock:
// elapsed time accumulates until a full step interval has passed.
func (g *Game) Step(st core.State, in core.ButtonState, f core.Frame) (core.State, *core.DrawList) {
	s := st.(*State)

	switch s.phase {
	case core.PhaseStart:
		if in.Start {
			s.phase = core.PhasePlaying
		}

	case core.PhasePlaying:
		g.steer(s, in)

		s.sinceMs += f.ElapsedMs()
		for moves := 0; s.sinceMs >= g.stepMs && s.phase == core.PhasePlaying; moves++ {
			if moves == maxCatchUp {
				s.sinceMs = 0
				break
			}
			s.sinceMs -= g.stepMs
			g.move(s, f.Env())
		}

	case core.PhaseGameOver:
		if in.Start {
			next, err := g.Init(f.Env())
			if err == nil {
				s = next.(*State)
				s.phase = core.PhasePlaying
			}
		}
	}

	return s, g.draw(s, f)
}

// steer buffers a direction change from the held buttons. Up wins over down,
// down over left, left over right. A turn back onto the body is ignored.
func (g *Game) steer(s *State, in core.ButtonState) {
	switch {
	case in.Up && s.Dir != DirDown:
		s.NextDir = DirUp
	case in.Down && s.Dir != DirUp:
		s.NextDir = DirDown
	case in.Left && s.Dir != DirRight:
		s.NextDir = DirLeft
	case in.Right && s.Dir != DirLeft:
		s.NextDir = DirRight
	}
}

// move advances the snake one cell, eating and growing if the head lands on
// food, then ends the round on a wall or self collision.
func (g *Game) move(s *State, env core.Env) {
	s.Dir = s.NextDir
	dx, dy := s.Dir.delta()
	head := s.Head().Add(dx, dy)

	ate := head == s.Food
	if ate {
		s.Snake = append([]core.Point{head}, s.Snake...)
		s.score += g.cfg.PointsPerFood
		s.Food = g.spawnFood(s, env)
	} else {
		copy(s.Snake[1:], s.Snake[:len(s.Snake)-1])
		s.Snake[0] = head
	}

	grid := core.NewRect(0, 0, s.Cols, s.Rows)
	if !grid.ContainsPoint(head) {
		s.phase = core.PhaseGameOver
		return
	}
	for _, p := range s.Snake[1:] {
		if p == head {
			s.phase = core.PhaseGameOver
			return
		}
	}
}

// spawnFood picks a uniformly random cell not covered by the snake.
func (g *Game) spawnFood(s *State, env core.Env) core.Point {
	occupied := make(map[core.Point]bool, len(s.Snake))
	for _, p := range s.Snake {
		occupied[p] = true
	}

	// Collect all empty cells
	empty := make([]core.Point, 0, s.Cols*s.Rows-len(s.Snake))
	for y := 0; y < s.Rows; y++ {
		for x := 0; x < s.Cols; x++ {
			p := core.Point{X: x, Y: y}
			if !occupied[p] {
				empty = append(empty, p)
			}
		}
	}

	if len(empty) == 0 {
		return core.Point{X: -1, Y: -1}
	}
	return empty[env.Random().Intn(len(empty))]
}

// Register the game with the registry
func init() {
	registry.Register("snake", "Snake", func(cfg config.Config) (registry.Simulation, error) {
		return New(cfg.Snake)
	})
}
