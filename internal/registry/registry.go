// Package registry provides a registry of simulation factories.
// Games register themselves in init() functions, allowing the loader
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/handheld/internal/config"
	"github.com/vovakirdan/handheld/internal/core"
)

// Simulation is the interface every handheld game implements.
// Simulations contain pure logic with no external dependencies (especially no
// Bubble Tea or Ebitengine). They are stateless descriptors: all mutable data
// lives in the State returned by Init, so one Simulation may drive any number
// of hosts at once.
type Simulation interface {
	// ID returns the unique identifier used to select the game (e.g., "pong").
	ID() string

	// Title returns a human-readable name for display (e.g., "Pong").
	Title() string

	// Init builds a fresh state for a newly created surface.
	Init(env core.Env) (core.State, error)

	// Step advances the simulation by one frame and returns the next state
	// together with the draw commands for this frame.
	Step(s core.State, in core.ButtonState, f core.Frame) (core.State, *core.DrawList)
}

// Loadable is implemented by simulations that need a one-time setup the first
// time they are resolved.
type Loadable interface {
	OnLoad()
}

// Unloadable is implemented by simulations that release per-instance
// resources when torn down.
type Unloadable interface {
	OnUnload(s core.State) error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a simulation configured from cfg.
type Factory func(cfg config.Config) (Simulation, error)

type entry struct {
	title   string
	factory Factory
}

// Registry maps game IDs to factories. The zero value is not usable; use New.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a factory to the registry.
// Panics if a game with the same ID is already registered.
func (r *Registry) Register(id, title string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	r.entries[id] = entry{title: title, factory: f}
}

// List returns information about all registered games, sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.entries))
	for id, e := range r.entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a simulation by its ID.
// Returns an error if the ID is not registered or the factory fails.
func (r *Registry) Create(id string, cfg config.Config) (Simulation, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	sim, err := e.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return sim, nil
}

// Exists checks if a game with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[id]
	return ok
}

var global = New()

// Default returns the process-wide registry the built-in games register into.
func Default() *Registry {
	return global
}

// Register adds a factory to the default registry.
// Typically called from a game's init() function.
func Register(id, title string, f Factory) {
	global.Register(id, title, f)
}

// List returns the games in the default registry, sorted by ID.
func List() []GameInfo {
	return global.List()
}

// Create instantiates a simulation from the default registry.
func Create(id string, cfg config.Config) (Simulation, error) {
	return global.Create(id, cfg)
}

// Exists checks the default registry.
func Exists(id string) bool {
	return global.Exists(id)
}
