// Package loader resolves game names to simulations. Resolutions are cached
// for the lifetime of the process and failures are replaced by a Placeholder,
// so callers never see an error.
package loader

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/vovakirdan/handheld/internal/config"
	"github.com/vovakirdan/handheld/internal/registry"
)

// DefaultGame is what unknown names resolve to.
const DefaultGame = "pong"

// Loader is safe for concurrent use. One Loader is shared by every host in
// the process.
type Loader struct {
	cfg    config.Config
	reg    *registry.Registry
	logger *log.Logger

	mu    sync.Mutex
	cache map[string]registry.Simulation
	group singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for resolution failures.
func WithLogger(l *log.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithRegistry resolves from r instead of the default registry.
func WithRegistry(r *registry.Registry) Option {
	return func(ld *Loader) {
		if r != nil {
			ld.reg = r
		}
	}
}

// New creates a Loader that builds simulations from cfg.
func New(cfg config.Config, opts ...Option) *Loader {
	l := &Loader{
		cfg:    cfg,
		reg:    registry.Default(),
		logger: log.Default(),
		cache:  make(map[string]registry.Simulation),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the registered name that name resolves to.
func (l *Loader) Name(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if !l.reg.Exists(name) {
		return DefaultGame
	}
	return name
}

// Resolve returns the simulation for name. Unknown names resolve to the
// default game. A failed construction yields a Placeholder, which is not
// cached, so a later call retries.
func (l *Loader) Resolve(ctx context.Context, name string) registry.Simulation {
	key := l.Name(name)

	if sim, ok := l.cached(key); ok {
		return sim
	}

	if err := ctx.Err(); err != nil {
		return NewPlaceholder(key, err)
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		if sim, ok := l.cached(key); ok {
			return sim, nil
		}

		sim, err := l.create(key)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.cache[key] = sim
		l.mu.Unlock()

		l.logger.Debug("game loaded", "game", key)
		return sim, nil
	})
	if err != nil {
		l.logger.Error("could not load game", "game", key, "error", err)
		return NewPlaceholder(key, err)
	}
	return v.(registry.Simulation)
}

// Cached reports whether name has been resolved successfully.
func (l *Loader) Cached(name string) bool {
	_, ok := l.cached(l.Name(name))
	return ok
}

func (l *Loader) cached(key string) (registry.Simulation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sim, ok := l.cache[key]
	return sim, ok
}

// create builds the simulation and runs its load hook. Panics in either are
// turned into errors.
func (l *Loader) create(key string) (sim registry.Simulation, err error) {
	defer func() {
		if r := recover(); r != nil {
			sim, err = nil, fmt.Errorf("loader: %s panicked: %v", key, r)
		}
	}()

	sim, err = l.reg.Create(key, l.cfg)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, fmt.Errorf("loader: %s: factory returned no simulation", key)
	}

	if hook, ok := sim.(registry.Loadable); ok {
		hook.OnLoad()
	}
	return sim, nil
}
