// Package pong implements a classic Pong game with CPU opponent.
// Player 1 controls the left paddle, CPU controls the right paddle.
package pong

import (
	"fmt"

	"github.com/vovakirdan/handheld/internal/config"
	"github.com/vovakirdan/handheld/internal/core"
	"github.com/vovakirdan/handheld/internal/registry"
)

// Ball is the pong ball. X and Y are its center.
type Ball struct {
	X, Y   float64
	Size   float64
	SpeedX float64
	SpeedY float64
}

// Paddle is a vertical paddle. Y is its center.
type Paddle struct {
	X, Y          float64
	Width, Height float64
	Speed         float64
}

// State is the state of one Pong match.
type State struct {
	Ball        Ball
	Player      Paddle // Left paddle
	CPU         Paddle // Right paddle
	PlayerScore int
	CPUScore    int

	phase core.Phase
}

// Phase returns start, playing or gameOver.
func (s *State) Phase() core.Phase { return s.phase }

// Score reports the player's points.
func (s *State) Score() int { return s.PlayerScore }

// Game implements the Pong rules. It holds only tuning and is shared by
// every running match.
type Game struct {
	cfg config.PongConfig
}

// New creates a Pong game from cfg.
func New(cfg config.PongConfig) (*Game, error) {
	if cfg.Paddles.Height <= 0 || cfg.Paddles.Width <= 0 {
		return nil, fmt.Errorf("pong: invalid paddle size %gx%g", cfg.Paddles.Width, cfg.Paddles.Height)
	}
	if cfg.Ball.Size <= 0 || cfg.Ball.Speed <= 0 {
		return nil, fmt.Errorf("pong: invalid ball size %g or speed %g", cfg.Ball.Size, cfg.Ball.Speed)
	}
	if cfg.Gameplay.WinScore <= 0 {
		return nil, fmt.Errorf("pong: win score must be positive, got %d", cfg.Gameplay.WinScore)
	}
	return &Game{cfg: cfg}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Init centers the ball and both paddles and waits for start.
func (g *Game) Init(env core.Env) (core.State, error) {
	if env.Width <= 0 || env.Height <= 0 {
		return nil, fmt.Errorf("pong: invalid surface %dx%d", env.Width, env.Height)
	}

	w, h := float64(env.Width), float64(env.Height)
	p := g.cfg.Paddles

	return &State{
		Ball: Ball{
			X:      w / 2,
			Y:      h / 2,
			Size:   g.cfg.Ball.Size,
			SpeedX: g.cfg.Ball.Speed,
			SpeedY: g.cfg.Ball.Speed,
		},
		Player: Paddle{X: p.Offset, Y: h / 2, Width: p.Width, Height: p.Height, Speed: p.Speed},
		CPU:    Paddle{X: w - p.Offset - p.Width, Y: h / 2, Width: p.Width, Height: p.Height, Speed: p.Speed},
		phase:  core.PhaseStart,
	}, nil
}

// Step advances the match by one frame.
func (g *Game) Step(st core.State, in core.ButtonState, f core.Frame) (core.State, *core.DrawList) {
	s := st.(*State)

	switch s.phase {
	case core.PhaseStart:
		if in.Start {
			s.phase = core.PhasePlaying
		}

	case core.PhasePlaying:
		g.update(s, in, f)

	case core.PhaseGameOver:
		if in.Start {
			s.PlayerScore, s.CPUScore = 0, 0
			g.resetBall(s, f)
			s.phase = core.PhasePlaying
		}
	}

	return s, g.draw(s, f)
}

// Winner returns the game-over headline.
func (s *State) Winner(winScore int) string {
	if s.PlayerScore >= winScore {
		return "YOU WIN!"
	}
	return "CPU WINS!"
}

// Register the game with the registry
func init() {
	registry.Register("pong", "Pong", func(cfg config.Config) (registry.Simulation, error) {
		return New(cfg.Pong)
	})
}
