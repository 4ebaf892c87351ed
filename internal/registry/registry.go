// Package registry provides the game directory: a name-keyed lookup of the
// games the runner can bind, holding either instances owned by the caller or
// factories whose product the directory creates once and keeps.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Game is the lifecycle contract between the runner and a pluggable game.
// The runner calls every method from one goroutine; games need no locking.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "snake", "pong").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// OnBind attaches the drawing target. It may be called again on rebind.
	OnBind(s core.Surface)

	// OnResize gives the game its usable rectangle in surface coordinates.
	// Called after every bind and whenever the surface size changes; the game
	// recomputes its layout and redraws fully on the next Step.
	OnResize(area core.Rect)

	// Reset reinitializes all mutable game state. It keeps the binding.
	Reset()

	// Step advances the simulation by dt seconds and draws the result.
	Step(dt float64)

	// OnInput applies one event. Paused or finished games ignore everything
	// except their always-live controls (restart, pause toggle).
	OnInput(ev core.InputEvent)

	Pause()
	Resume()
	IsPaused() bool
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
	Lazy  bool // Built by a factory on first Resolve
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	// ErrUnknownGame is returned by Resolve for keys nobody registered.
	ErrUnknownGame = errors.New("registry: unknown game")
	// ErrDuplicate is returned when a key is registered twice.
	ErrDuplicate = errors.New("registry: game already registered")
)

// Directory maps keys to games. Keys are immutable once registered and a key
// always resolves to the same instance.
type Directory struct {
	mu        sync.RWMutex
	instances map[string]Game
	factories map[string]Factory
	titles    map[string]string
	owned     map[string]Game // Factory products, built on first Resolve
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		instances: make(map[string]Game),
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
		owned:     make(map[string]Game),
	}
}

func (d *Directory) taken(key string) bool {
	_, inst := d.instances[key]
	_, fact := d.factories[key]
	return inst || fact
}

// RegisterInstance stores a game the caller owns. The directory never
// replaces or discards it.
func (d *Directory) RegisterInstance(key string, g Game) error {
	if key == "" || g == nil {
		return fmt.Errorf("registry: register %q: empty key or nil game", key)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.taken(key) {
		return fmt.Errorf("%w: %q", ErrDuplicate, key)
	}
	d.instances[key] = g
	d.titles[key] = g.Title()
	return nil
}

// RegisterFactory stores a constructor. It runs at most once, on the first
// Resolve of key; title is reported by List without building the game.
func (d *Directory) RegisterFactory(key, title string, f Factory) error {
	if key == "" || f == nil {
		return fmt.Errorf("registry: register %q: empty key or nil factory", key)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.taken(key) {
		return fmt.Errorf("%w: %q", ErrDuplicate, key)
	}
	d.factories[key] = f
	d.titles[key] = title
	return nil
}

// Resolve returns the game registered under key, building and caching it if
// it came from a factory.
func (d *Directory) Resolve(key string) (Game, error) {
	d.mu.RLock()
	if g, ok := d.instances[key]; ok {
		d.mu.RUnlock()
		return g, nil
	}
	if g, ok := d.owned[key]; ok {
		d.mu.RUnlock()
		return g, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	// Another caller may have built it between the locks.
	if g, ok := d.owned[key]; ok {
		return g, nil
	}
	f, ok := d.factories[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, key)
	}
	g := f()
	if g == nil {
		return nil, fmt.Errorf("registry: factory for %q returned nil", key)
	}
	d.owned[key] = g
	return g, nil
}

// Has checks if a game with the given key is registered.
func (d *Directory) Has(key string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.taken(key)
}

// List returns information about all registered games, sorted by ID.
// Factories are not invoked.
func (d *Directory) List() []GameInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]GameInfo, 0, len(d.titles))
	for id, title := range d.titles {
		_, lazy := d.factories[id]
		result = append(result, GameInfo{ID: id, Title: title, Lazy: lazy})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Keys returns the registered keys in sorted order.
func (d *Directory) Keys() []string {
	infos := d.List()
	keys := make([]string, len(infos))
	for i, info := range infos {
		keys[i] = info.ID
	}
	return keys
}

// Next returns the key after current in sorted order, wrapping around. An
// unknown current yields the first key.
func (d *Directory) Next(current string) string {
	keys := d.Keys()
	if len(keys) == 0 {
		return ""
	}
	for i, k := range keys {
		if k == current {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}
