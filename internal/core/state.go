package core

import (
	"math/rand"
	"time"
)

// Logical resolution of the handheld screen.
const (
	ScreenWidth  = 160
	ScreenHeight = 144
)

// Phase is a simulation's internal state-machine stage.
type Phase string

const (
	PhaseStart    Phase = "start"
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "gameOver"
)

// State is the per-game simulation state. It is opaque to the host; each game
// defines its own concrete type and threads it through Step.
type State interface {
	Phase() Phase
}

// Scored is implemented by states that carry a player score.
type Scored interface {
	Score() int
}

// Env is handed to a simulation's Init.
type Env struct {
	Width  int        // Surface width in logical pixels
	Height int        // Surface height in logical pixels
	Rand   *rand.Rand // Uniform random source for this instance
}

// Frame is the per-frame context passed to a simulation's Step.
type Frame struct {
	Width   int
	Height  int
	Elapsed time.Duration // Time since the previous frame (0 on the first frame)
	Now     time.Duration // Time since the surface was created
	Rand    *rand.Rand
}

// ElapsedMs returns Elapsed in fractional milliseconds.
func (f Frame) ElapsedMs() float64 {
	return float64(f.Elapsed) / float64(time.Millisecond)
}

// NowMs returns Now in fractional milliseconds.
func (f Frame) NowMs() float64 {
	return float64(f.Now) / float64(time.Millisecond)
}

// Random returns the frame's random source, falling back to a shared one
// when the host did not provide any.
func (f Frame) Random() *rand.Rand {
	if f.Rand != nil {
		return f.Rand
	}
	return fallbackRand
}

// Random returns the env's random source, falling back to a shared one.
func (e Env) Random() *rand.Rand {
	if e.Rand != nil {
		return e.Rand
	}
	return fallbackRand
}

var fallbackRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// Env returns the Env matching this frame, used by games that re-init
// themselves from inside Step (restart after game over).
func (f Frame) Env() Env {
	return Env{Width: f.Width, Height: f.Height, Rand: f.Rand}
}
