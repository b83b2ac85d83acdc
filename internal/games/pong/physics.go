package pong

import (
	"math"

	"github.com/vovakirdan/handheld/internal/core"
)

// update runs one frame of play: ball, paddles, collisions, scoring.
func (g *Game) update(s *State, in core.ButtonState, f core.Frame) {
	h := float64(f.Height)
	w := float64(f.Width)
	b := &s.Ball

	b.X += b.SpeedX
	b.Y += b.SpeedY

	// Player paddle
	if in.Up {
		s.Player.Y -= s.Player.Speed
	}
	if in.Down {
		s.Player.Y += s.Player.Speed
	}
	s.Player.Y = clampPaddle(s.Player, h)

	g.updateCPU(s, h)

	// Bounce off top/bottom walls
	r := b.Size / 2
	if b.Y-r <= 0 {
		b.Y = r
		b.SpeedY = math.Abs(b.SpeedY)
	} else if b.Y+r >= h {
		b.Y = h - r
		b.SpeedY = -math.Abs(b.SpeedY)
	}

	// Ball hits left paddle (Player 1)
	if b.SpeedX < 0 && b.X-r <= s.Player.X+s.Player.Width && withinPaddle(b.Y, s.Player) {
		g.deflect(b, s.Player)
	}

	// Ball hits right paddle (CPU)
	if b.SpeedX > 0 && b.X+r >= s.CPU.X && withinPaddle(b.Y, s.CPU) {
		g.deflect(b, s.CPU)
	}

	// Scoring
	if b.X-r <= 0 {
		s.CPUScore++
		g.resetBall(s, f)
	} else if b.X+r >= w {
		s.PlayerScore++
		g.resetBall(s, f)
	}

	if s.PlayerScore >= g.cfg.Gameplay.WinScore || s.CPUScore >= g.cfg.Gameplay.WinScore {
		s.phase = core.PhaseGameOver
	}
}

// updateCPU chases the ball's height at a fraction of the paddle speed,
// ignoring small offsets so the CPU does not jitter.
func (g *Game) updateCPU(s *State, h float64) {
	cpu := &s.CPU
	speed := cpu.Speed * g.cfg.CPU.SpeedFactor
	target := s.Ball.Y
	dz := g.cfg.CPU.DeadZone

	if cpu.Y < target-dz {
		cpu.Y += speed
	} else if cpu.Y > target+dz {
		cpu.Y -= speed
	}
	cpu.Y = clampPaddle(*cpu, h)
}

// deflect sends the ball back and adds spin based on where it hit the paddle.
func (g *Game) deflect(b *Ball, p Paddle) {
	b.SpeedX = -b.SpeedX
	b.SpeedY += (b.Y - p.Y) * g.cfg.Ball.Spin
	if b.SpeedY == 0 {
		b.SpeedY = g.cfg.Ball.Spin
	}
}

// resetBall serves from the center at a random angle within 45 degrees of
// horizontal, towards either side.
func (g *Game) resetBall(s *State, f core.Frame) {
	rng := f.Random()

	s.Ball.X = float64(f.Width) / 2
	s.Ball.Y = float64(f.Height) / 2

	angle := (rng.Float64()*2 - 1) * math.Pi / 4
	if rng.Float64() < 0.5 {
		angle += math.Pi
	}
	speed := g.cfg.Ball.Speed
	s.Ball.SpeedX = math.Cos(angle) * speed
	s.Ball.SpeedY = math.Sin(angle) * speed
	if s.Ball.SpeedY == 0 {
		s.Ball.SpeedY = g.cfg.Ball.Spin
	}
}

func withinPaddle(y float64, p Paddle) bool {
	return y >= p.Y-p.Height/2 && y <= p.Y+p.Height/2
}

func clampPaddle(p Paddle, screenH float64) float64 {
	return core.ClampF(p.Y, p.Height/2, screenH-p.Height/2)
}
