// Package config provides YAML-based configuration loading for the handheld
// shell and the tuning parameters of each built-in game.
package config

// Config is the top-level handheld configuration.
type Config struct {
	DefaultGame string       `yaml:"default_game"`
	FrameRate   int          `yaml:"frame_rate"`
	TUI         TUIConfig    `yaml:"tui"`
	Pong        PongConfig   `yaml:"pong"`
	Snake       SnakeConfig  `yaml:"snake"`
	Tetris      TetrisConfig `yaml:"tetris"`
}

// TUIConfig holds terminal frontend settings.
type TUIConfig struct {
	// KeyHoldMs is how long a key press keeps its button down. Terminals
	// report no key release, so auto-repeat refreshes the hold.
	KeyHoldMs int `yaml:"key_hold_ms"`
}

// PongConfig contains all configuration for Pong.
type PongConfig struct {
	Ball     PongBall     `yaml:"ball"`
	Paddles  PongPaddles  `yaml:"paddles"`
	CPU      PongCPU      `yaml:"cpu"`
	Gameplay PongGameplay `yaml:"gameplay"`
}

// PongBall defines ball parameters for Pong.
type PongBall struct {
	Size  float64 `yaml:"size"`
	Speed float64 `yaml:"speed"`
	Spin  float64 `yaml:"spin"` // speedY gained per pixel of offset from paddle center
}

// PongPaddles defines paddle parameters for Pong.
type PongPaddles struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	Offset float64 `yaml:"offset"` // Distance of the player paddle from the left edge
}

// PongCPU defines the computer opponent.
type PongCPU struct {
	SpeedFactor float64 `yaml:"speed_factor"`
	DeadZone    float64 `yaml:"dead_zone"`
}

// PongGameplay defines match rules for Pong.
type PongGameplay struct {
	WinScore int `yaml:"win_score"`
}

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	CellSize     int     `yaml:"cell_size"`
	StepsPerSec  float64 `yaml:"steps_per_second"`
	PointsPerFood int     `yaml:"points_per_food"`
}

// TetrisConfig contains all configuration for Tetris.
type TetrisConfig struct {
	Cols        int   `yaml:"cols"`
	Rows        int   `yaml:"rows"`
	CellSize    int   `yaml:"cell_size"`
	TopOffset   int   `yaml:"top_offset"`
	DropMs      int   `yaml:"drop_ms"`
	DropStepMs  int   `yaml:"drop_step_ms"`
	DropFloorMs int   `yaml:"drop_floor_ms"`
	MoveDelayMs int   `yaml:"move_delay_ms"`
	LineScores  []int `yaml:"line_scores"`
}
