package config

import (
	_ "embed"
)

//go:embed defaults/handheld.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultGame: "pong",
		FrameRate:   60,
		TUI: TUIConfig{
			KeyHoldMs: 120,
		},
		Pong:   DefaultPongConfig(),
		Snake:  DefaultSnakeConfig(),
		Tetris: DefaultTetrisConfig(),
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Ball: PongBall{
			Size:  4,
			Speed: 1.5,
			Spin:  0.1,
		},
		Paddles: PongPaddles{
			Width:  4,
			Height: 20,
			Speed:  2,
			Offset: 10,
		},
		CPU: PongCPU{
			SpeedFactor: 0.8,
			DeadZone:    5,
		},
		Gameplay: PongGameplay{
			WinScore: 5,
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		CellSize:     8,
		StepsPerSec:  8,
		PointsPerFood: 1,
	}
}

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Cols:        10,
		Rows:        18,
		CellSize:    8,
		TopOffset:   0,
		DropMs:      500,
		DropStepMs:  50,
		DropFloorMs: 100,
		MoveDelayMs: 200,
		LineScores:  []int{40, 100, 300, 1200},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
