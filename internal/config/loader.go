package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "handheld.yaml"

// Load loads the handheld configuration.
// Search order: customPath -> ~/.handheld/config.yaml -> ./configs/handheld.yaml -> embedded default
//
// Only an explicit customPath can fail; every other source is skipped when it
// is missing or malformed. Fields absent from the file keep their defaults.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML into a normalized Config.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize back-fills zero or invalid values from Default.
func (c *Config) Normalize() {
	def := Default()

	if c.DefaultGame == "" {
		c.DefaultGame = def.DefaultGame
	}
	if c.FrameRate <= 0 {
		c.FrameRate = def.FrameRate
	}
	if c.TUI.KeyHoldMs <= 0 {
		c.TUI.KeyHoldMs = def.TUI.KeyHoldMs
	}

	p, dp := &c.Pong, def.Pong
	fillF(&p.Ball.Size, dp.Ball.Size)
	fillF(&p.Ball.Speed, dp.Ball.Speed)
	fillF(&p.Ball.Spin, dp.Ball.Spin)
	fillF(&p.Paddles.Width, dp.Paddles.Width)
	fillF(&p.Paddles.Height, dp.Paddles.Height)
	fillF(&p.Paddles.Speed, dp.Paddles.Speed)
	fillF(&p.Paddles.Offset, dp.Paddles.Offset)
	fillF(&p.CPU.SpeedFactor, dp.CPU.SpeedFactor)
	fillF(&p.CPU.DeadZone, dp.CPU.DeadZone)
	fillI(&p.Gameplay.WinScore, dp.Gameplay.WinScore)

	s, ds := &c.Snake, def.Snake
	fillI(&s.CellSize, ds.CellSize)
	fillF(&s.StepsPerSec, ds.StepsPerSec)
	fillI(&s.PointsPerFood, ds.PointsPerFood)

	t, dt := &c.Tetris, def.Tetris
	fillI(&t.Cols, dt.Cols)
	fillI(&t.Rows, dt.Rows)
	fillI(&t.CellSize, dt.CellSize)
	if t.TopOffset < 0 {
		t.TopOffset = 0
	}
	fillI(&t.DropMs, dt.DropMs)
	fillI(&t.DropStepMs, dt.DropStepMs)
	fillI(&t.DropFloorMs, dt.DropFloorMs)
	fillI(&t.MoveDelayMs, dt.MoveDelayMs)
	if len(t.LineScores) != len(dt.LineScores) {
		t.LineScores = dt.LineScores
	}
}

func fillF(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}

func fillI(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".handheld", "config.yaml")
}
