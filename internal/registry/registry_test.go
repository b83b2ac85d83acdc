package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/handheld/internal/config"
	"github.com/vovakirdan/handheld/internal/core"
)

type stubSim struct{ id string }

func (s stubSim) ID() string { return s.id }
func (s stubSim) Title() string { return strings.ToUpper(s.id) }
func (s stubSim) Init(core.Env) (core.State, error) { return nil, nil }
func (s stubSim) Step(st core.State, _ core.ButtonState, _ core.Frame) (core.State, *core.DrawList) {
	return st, core.NewDrawList()
}

func stubFactory(id string) Factory {
	return func(config.Config) (Simulation, error) { return stubSim{id: id}, nil }
}

func TestRegisterAndList(t *testing.T) {
	r := New()
	r.Register("tetris", "Tetris", stubFactory("tetris"))
	r.Register("pong", "Pong", stubFactory("pong"))
	r.Register("snake", "Snake", stubFactory("snake"))

	list := r.List()
	want := []string{"pong", "snake", "tetris"}
	if len(list) != len(want) {
		t.Fatalf("List() returned %d games, expected %d", len(list), len(want))
	}
	for i, info := range list {
		if info.ID != want[i] {
			t.Errorf("List()[%d] = %q, expected %q", i, info.ID, want[i])
		}
	}
	if list[0].Title != "Pong" {
		t.Errorf("title = %q, expected Pong", list[0].Title)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	r.Register("pong", "Pong", stubFactory("pong"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	r.Register("pong", "Pong", stubFactory("pong"))
}

func TestCreate(t *testing.T) {
	r := New()
	r.Register("pong", "Pong", stubFactory("pong"))

	sim, err := r.Create("pong", config.Default())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sim.ID() != "pong" {
		t.Errorf("ID() = %q, expected pong", sim.ID())
	}

	if _, err := r.Create("galaga", config.Default()); err == nil {
		t.Error("expected error for unknown game")
	}
	if !r.Exists("pong") || r.Exists("galaga") {
		t.Error("Exists mismatch")
	}
}

func TestCreateWrapsFactoryError(t *testing.T) {
	boom := errors.New("boom")
	r := New()
	r.Register("broken", "Broken", func(config.Config) (Simulation, error) { return nil, boom })

	_, err := r.Create("broken", config.Default())
	if !errors.Is(err, boom) {
		t.Errorf("Create error = %v, expected to wrap %v", err, boom)
	}
}
