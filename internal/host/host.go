// Package host drives one simulation at a time on a fixed-size surface.
//
// A Host moves between three states. It is Off until powered, Switching while
// the target game is being resolved, and Running once the resolved simulation
// has been initialized on a fresh surface. Resolution runs in the background;
// each request carries a generation token and a completion is applied only if
// its token is still current, so switching faster than games resolve never
// initializes a stale target.
package host

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/handheld/internal/core"
	"github.com/vovakirdan/handheld/internal/loader"
	"github.com/vovakirdan/handheld/internal/registry"
)

// Status is the host's lifecycle state.
type Status int

const (
	StatusOff Status = iota
	StatusSwitching
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusOff:
		return "off"
	case StatusSwitching:
		return "switching"
	case StatusRunning:
		return "running"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Resolver maps a game name to a simulation. It must not fail; failures are
// expressed as placeholder simulations. *loader.Loader implements it.
type Resolver interface {
	Resolve(ctx context.Context, name string) registry.Simulation
}

// GameOverFunc is called when a scored game enters its game-over phase.
type GameOverFunc func(game string, score int)

type result struct {
	token uint64
	name  string
	sim   registry.Simulation
}

// Host is not safe for concurrent use. All methods must be called from the
// goroutine that drives frames.
type Host struct {
	resolver   Resolver
	logger     *log.Logger
	id         string
	rng        *rand.Rand
	onGameOver GameOverFunc
	width      int
	height     int

	input   core.Input
	status  Status
	powered bool
	closed  bool
	game    string

	// Resolution bookkeeping.
	token    uint64
	cancel   context.CancelFunc
	inflight int
	results  chan result
	done     chan struct{}

	// Mounted instance.
	sim     registry.Simulation
	state   core.State
	surface *core.Surface
	phase   core.Phase
	drawn   *core.DrawList
	started time.Time
	last    time.Time

	idle *core.Surface
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger. The host adds its instance id to every entry.
func WithLogger(l *log.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithSeed makes every random choice of the hosted games reproducible.
func WithSeed(seed int64) Option {
	return func(h *Host) {
		h.rng = rand.New(rand.NewSource(seed))
	}
}

// WithGame sets the game selected at power-on.
func WithGame(name string) Option {
	return func(h *Host) {
		h.game = name
	}
}

// WithGameOverHook registers fn to receive final scores.
func WithGameOverHook(fn GameOverFunc) Option {
	return func(h *Host) {
		h.onGameOver = fn
	}
}

// New creates a powered-off host.
func New(resolver Resolver, opts ...Option) *Host {
	h := &Host{
		resolver: resolver,
		logger:   log.Default(),
		id:       uuid.NewString(),
		width:    core.ScreenWidth,
		height:   core.ScreenHeight,
		game:     loader.DefaultGame,
		results:  make(chan result),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	h.logger = h.logger.With("host", h.id[:8])
	return h
}

// ID returns the host's instance id.
func (h *Host) ID() string { return h.id }

// Status returns the current lifecycle state.
func (h *Host) Status() Status { return h.status }

// Powered reports whether the power switch is on.
func (h *Host) Powered() bool { return h.powered }

// ActiveGame returns the selected game name.
func (h *Host) ActiveGame() string { return h.game }

// Simulation returns the mounted simulation, or nil when nothing is running.
func (h *Host) Simulation() registry.Simulation {
	if h.status != StatusRunning {
		return nil
	}
	return h.sim
}

// Phase returns the phase of the running game, or "" when nothing is running.
func (h *Host) Phase() core.Phase {
	if h.status != StatusRunning || h.state == nil {
		return ""
	}
	return h.state.Phase()
}

// SetButton records a press or release.
func (h *Host) SetButton(b core.Button, down bool) {
	h.input.SetButton(b, down)
}

// SetButtonName records a press or release of a button given by name.
func (h *Host) SetButtonName(name string, down bool) error {
	b, err := core.ParseButton(name)
	if err != nil {
		return err
	}
	h.input.SetButton(b, down)
	return nil
}

// ReleaseAll releases every button.
func (h *Host) ReleaseAll() {
	h.input.Reset()
}

// SetPower turns the handheld on or off.
//
// Power-off stops stepping and detaches the surface but keeps the game state
// in memory. Power-on always starts the selected game from scratch.
func (h *Host) SetPower(on bool) {
	if h.closed || on == h.powered {
		return
	}
	h.powered = on

	if on {
		h.logger.Info("power on", "game", h.game)
		h.request()
		return
	}

	h.logger.Info("power off", "game", h.game)
	h.abort()
	h.status = StatusOff
	if h.surface != nil {
		h.surface.Release()
		h.surface = nil
	}
}

// SetActiveGame selects the game to run. While powered, a change tears down
// the current game and starts resolving the new one.
func (h *Host) SetActiveGame(name string) {
	if h.closed {
		return
	}
	if name == h.game && h.status != StatusOff {
		return
	}
	h.game = name
	if h.powered {
		h.logger.Info("switching game", "game", name)
		h.request()
	}
}

// request tears down the current instance and starts resolving h.game under
// a new token.
func (h *Host) request() {
	h.abort()
	h.teardown()

	h.token++
	tok, name := h.token, h.game
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.status = StatusSwitching
	h.inflight++

	go func() {
		sim := h.resolve(ctx, name)
		select {
		case h.results <- result{token: tok, name: name, sim: sim}:
		case <-h.done:
		}
	}()
}

// resolve runs on the resolution goroutine.
func (h *Host) resolve(ctx context.Context, name string) (sim registry.Simulation) {
	defer func() {
		if r := recover(); r != nil {
			sim = loader.NewPlaceholder(name, fmt.Errorf("resolve panicked: %v", r))
		}
	}()
	sim = h.resolver.Resolve(ctx, name)
	if sim == nil {
		sim = loader.NewPlaceholder(name, fmt.Errorf("no simulation for %q", name))
	}
	return sim
}

// abort cancels the pending resolution, if any.
func (h *Host) abort() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// Await applies resolutions until none are in flight or ctx is done.
func (h *Host) Await(ctx context.Context) error {
	for h.inflight > 0 {
		select {
		case r := <-h.results:
			h.apply(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// drain applies every resolution that has already completed.
func (h *Host) drain() {
	for h.inflight > 0 {
		select {
		case r := <-h.results:
			h.apply(r)
		default:
			return
		}
	}
}

func (h *Host) apply(r result) {
	h.inflight--

	if r.token != h.token || h.closed || !h.powered {
		h.logger.Debug("discarding stale resolution", "game", r.name)
		return
	}
	h.cancel = nil
	h.mount(r.name, r.sim)
}

// mount creates a fresh surface and initializes sim on it.
func (h *Host) mount(name string, sim registry.Simulation) {
	h.surface = core.NewSurface(h.width, h.height)

	env := core.Env{Width: h.width, Height: h.height, Rand: h.rng}
	state, err := initSim(sim, env)
	if err != nil {
		h.logger.Error("could not start game", "game", name, "error", err)
		sim = loader.NewPlaceholder(name, err)
		state, _ = sim.Init(env)
	}

	h.sim, h.state = sim, state
	h.phase = state.Phase()
	h.drawn = nil
	h.started, h.last = time.Time{}, time.Time{}
	h.status = StatusRunning
	h.logger.Debug("game started", "game", name, "sim", sim.ID())
}

// teardown unloads the mounted instance. The surface and state are released
// even when the unload hook fails.
func (h *Host) teardown() {
	sim, state, surface := h.sim, h.state, h.surface
	h.sim, h.state, h.surface, h.drawn = nil, nil, nil, nil

	if surface != nil {
		defer surface.Release()
	}
	if sim == nil {
		return
	}
	if err := unloadSim(sim, state); err != nil {
		h.logger.Warn("teardown failed", "game", sim.ID(), "error", err)
	}
}

// Frame advances the running game by one frame and returns the surface to
// display. While off or switching the game is not stepped and the returned
// surface is filled with the idle color.
func (h *Host) Frame(now time.Time) *core.Surface {
	h.drain()

	if h.status != StatusRunning || h.surface == nil {
		return h.idleSurface()
	}

	if h.last.IsZero() {
		h.started, h.last = now, now
	}
	elapsed := now.Sub(h.last)
	if elapsed < 0 {
		elapsed = 0
	}
	h.last = now

	f := core.Frame{
		Width:   h.width,
		Height:  h.height,
		Elapsed: elapsed,
		Now:     now.Sub(h.started),
		Rand:    h.rng,
	}

	next, d, err := stepSim(h.sim, h.state, h.input.Read(), f)
	if err != nil {
		h.logger.Error("game crashed", "game", h.sim.ID(), "error", err)
		h.teardown()
		h.mount(h.game, loader.NewPlaceholder(h.game, err))
		next, d, _ = stepSim(h.sim, h.state, h.input.Read(), f)
	}

	h.state = next
	h.drawn = d
	h.surface.Render(d)
	h.observe(next)

	return h.surface
}

// observe reports transitions into game over.
func (h *Host) observe(state core.State) {
	phase := state.Phase()
	prev := h.phase
	h.phase = phase

	if phase != core.PhaseGameOver || prev == core.PhaseGameOver {
		return
	}
	scored, ok := state.(core.Scored)
	if !ok {
		return
	}
	h.logger.Info("game over", "game", h.sim.ID(), "score", scored.Score())
	if h.onGameOver != nil {
		h.onGameOver(h.sim.ID(), scored.Score())
	}
}

func (h *Host) idleSurface() *core.Surface {
	if h.idle == nil {
		h.idle = core.NewSurface(h.width, h.height)
		h.idle.Clear(core.ColorIdle)
	}
	return h.idle
}

// Close tears down the running game and cancels pending resolutions. The
// host cannot be used afterwards.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.powered = false
	h.status = StatusOff

	h.abort()
	h.teardown()
	close(h.done)
	h.inflight = 0

	if h.idle != nil {
		h.idle.Release()
		h.idle = nil
	}
	h.logger.Debug("host closed")
}

func initSim(sim registry.Simulation, env core.Env) (state core.State, err error) {
	defer func() {
		if r := recover(); r != nil {
			state, err = nil, fmt.Errorf("init panicked: %v", r)
		}
	}()
	state, err = sim.Init(env)
	if err == nil && state == nil {
		err = fmt.Errorf("init returned no state")
	}
	return state, err
}

func stepSim(sim registry.Simulation, s core.State, in core.ButtonState, f core.Frame) (next core.State, d *core.DrawList, err error) {
	defer func() {
		if r := recover(); r != nil {
			next, d, err = nil, nil, fmt.Errorf("step panicked: %v", r)
		}
	}()
	next, d = sim.Step(s, in, f)
	if next == nil {
		return nil, nil, fmt.Errorf("step returned no state")
	}
	return next, d, nil
}

func unloadSim(sim registry.Simulation, s core.State) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unload panicked: %v", r)
		}
	}()
	if u, ok := sim.(registry.Unloadable); ok {
		return u.OnUnload(s)
	}
	return nil
}
