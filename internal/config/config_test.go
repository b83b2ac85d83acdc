package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults differ from Default():\n got %+v\nwant %+v", cfg, Default())
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	data := []byte("default_game: tetris\npong:\n  gameplay:\n    win_score: 3\n")
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.DefaultGame != "tetris" {
		t.Errorf("DefaultGame = %q, expected tetris", cfg.DefaultGame)
	}
	if cfg.Pong.Gameplay.WinScore != 3 {
		t.Errorf("WinScore = %d, expected 3", cfg.Pong.Gameplay.WinScore)
	}
	if cfg.Pong.Ball.Speed != 1.5 {
		t.Errorf("Ball.Speed = %f, expected default 1.5", cfg.Pong.Ball.Speed)
	}
	if cfg.FrameRate != 60 {
		t.Errorf("FrameRate = %d, expected default 60", cfg.FrameRate)
	}
	if len(cfg.Tetris.LineScores) != 4 {
		t.Errorf("LineScores = %v, expected defaults", cfg.Tetris.LineScores)
	}
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	cfg := Config{
		FrameRate: -1,
		Tetris:    TetrisConfig{TopOffset: -4, LineScores: []int{1}},
	}
	cfg.Normalize()

	if cfg.FrameRate != 60 {
		t.Errorf("FrameRate = %d, expected 60", cfg.FrameRate)
	}
	if cfg.Tetris.TopOffset != 0 {
		t.Errorf("TopOffset = %d, expected 0", cfg.Tetris.TopOffset)
	}
	if !reflect.DeepEqual(cfg.Tetris.LineScores, []int{40, 100, 300, 1200}) {
		t.Errorf("LineScores = %v", cfg.Tetris.LineScores)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("snake:\n  steps_per_second: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Snake.StepsPerSec != 12 {
		t.Errorf("StepsPerSec = %f, expected 12", cfg.Snake.StepsPerSec)
	}
	if cfg.Snake.CellSize != 8 {
		t.Errorf("CellSize = %d, expected default 8", cfg.Snake.CellSize)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("pong: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed custom config")
	}
}
