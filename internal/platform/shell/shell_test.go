package shell

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handheld/internal/core"
	"github.com/vovakirdan/handheld/internal/host"
	"github.com/vovakirdan/handheld/internal/registry"
)

type pressState struct {
	seen core.ButtonState
}

func (s *pressState) Phase() core.Phase { return core.PhaseStart }

type pressSim struct {
	id   string
	last *pressState
}

func (s *pressSim) ID() string    { return s.id }
func (s *pressSim) Title() string { return s.id }

func (s *pressSim) Init(core.Env) (core.State, error) {
	s.last = &pressState{}
	return s.last, nil
}

func (s *pressSim) Step(st core.State, in core.ButtonState, _ core.Frame) (core.State, *core.DrawList) {
	st.(*pressState).seen = in
	return st, core.NewDrawList()
}

type resolver map[string]*pressSim

func (r resolver) Resolve(_ context.Context, name string) registry.Simulation {
	return r[name]
}

var games = []registry.GameInfo{
	{ID: "pong", Title: "Pong"},
	{ID: "snake", Title: "Snake"},
	{ID: "tetris", Title: "Tetris"},
}

func newController(t *testing.T) (*Controller, resolver) {
	t.Helper()
	r := resolver{"pong": {id: "pong"}, "snake": {id: "snake"}, "tetris": {id: "tetris"}}
	h := host.New(r, host.WithLogger(log.New(io.Discard)))
	t.Cleanup(h.Close)
	return New(h, games), r
}

func await(t *testing.T, h *host.Host) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.Await(ctx); err != nil {
		t.Fatalf("Await: %v", err)
	}
}

func TestTogglePower(t *testing.T) {
	c, _ := newController(t)

	if c.Status() != OffLabel {
		t.Errorf("status = %q, expected %q", c.Status(), OffLabel)
	}

	c.TogglePower()
	if !c.Host().Powered() {
		t.Fatal("toggle should power on")
	}
	await(t, c.Host())
	c.Host().Frame(time.Now())
	if got := c.Status(); got != "Pong · start" {
		t.Errorf("status = %q", got)
	}

	c.TogglePower()
	if c.Host().Powered() {
		t.Error("second toggle should power off")
	}
}

func TestNextGameWraps(t *testing.T) {
	c, _ := newController(t)

	want := []string{"snake", "tetris", "pong", "snake"}
	for _, w := range want {
		c.NextGame()
		if got := c.Host().ActiveGame(); got != w {
			t.Fatalf("NextGame() -> %q, expected %q", got, w)
		}
	}
}

func TestSelectSlot(t *testing.T) {
	c, _ := newController(t)

	c.SelectSlot(2)
	if c.Host().ActiveGame() != "tetris" {
		t.Errorf("slot 2 = %q", c.Host().ActiveGame())
	}
	if c.Title() != "Tetris" {
		t.Errorf("title = %q", c.Title())
	}

	c.SelectSlot(7)
	c.SelectSlot(-1)
	if c.Host().ActiveGame() != "tetris" {
		t.Error("out-of-range slots must be ignored")
	}
}

func TestSetButtonsReleases(t *testing.T) {
	c, r := newController(t)
	c.TogglePower()
	await(t, c.Host())

	c.SetButtons(core.ButtonState{A: true, Left: true})
	c.Host().Frame(time.Now())
	if seen := r["pong"].last.seen; !seen.A || !seen.Left {
		t.Fatalf("seen = %+v", seen)
	}

	c.SetButtons(core.ButtonState{Left: true})
	c.Host().Frame(time.Now())
	if seen := r["pong"].last.seen; seen.A || !seen.Left {
		t.Errorf("A should be released, seen = %+v", seen)
	}
}
