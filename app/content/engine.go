package content

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"sync"
	"time"
)

// Adapter describes one content source: where it lives, how to parse it and
// how to render a single item.
type Adapter[T any] interface {
	Name() string
	Locator() string
	Parse(data []byte) ([]T, error)
	RenderCard(item T, index int) (template.HTML, error)
	// DisplayCap limits the rendered items; zero means no limit.
	DisplayCap() int
}

// Manager is the type-erased view of an Engine used by tasks and handlers.
type Manager interface {
	Name() string
	Load(ctx context.Context)
	Refresh(ctx context.Context)
	Loaded() bool
	Status() Status
}

type Status struct {
	Name        string     `json:"name"`
	Loaded      bool       `json:"loaded"`
	InFlight    bool       `json:"in_flight"`
	CachedItems int        `json:"cached_items"`
	Fetches     int        `json:"fetches"`
	LastError   string     `json:"last_error,omitempty"`
	LastLoadAt  *time.Time `json:"last_load_at,omitempty"`
}

var _ Manager = (*Engine[BlogPost])(nil)

// Engine runs the fetch-parse-render cycle for one adapter. It fetches at most
// once until it succeeds, and never runs two cycles at the same time.
type Engine[T any] struct {
	adapter    Adapter[T]
	fetcher    Fetcher
	target     RenderTarget
	cacheItems bool

	mu         sync.Mutex
	loaded     bool
	inFlight   bool
	cache      []T
	fetches    int
	lastErr    error
	lastLoadAt *time.Time
	shown      []template.HTML
	shownTotal int
}

type EngineOptions struct {
	// CacheItems keeps the last parsed items to re-render when a later fetch fails.
	CacheItems bool
}

func NewEngine[T any](adapter Adapter[T], fetcher Fetcher, target RenderTarget, opts EngineOptions) *Engine[T] {
	return &Engine[T]{
		adapter:    adapter,
		fetcher:    fetcher,
		target:     target,
		cacheItems: opts.CacheItems,
	}
}

func (e *Engine[T]) Name() string {
	return e.adapter.Name()
}

// Load is a no-op without a target, after a successful load, or while another
// load is in flight.
func (e *Engine[T]) Load(ctx context.Context) {
	if e.target == nil {
		return
	}

	e.mu.Lock()
	if e.loaded || e.inFlight {
		e.mu.Unlock()
		return
	}
	e.inFlight = true
	e.mu.Unlock()

	e.run(ctx)
}

// Refresh forces a new fetch. On failure the cached items, or else the cards
// already shown, are rendered again.
func (e *Engine[T]) Refresh(ctx context.Context) {
	if e.target == nil {
		return
	}

	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return
	}
	e.loaded = false
	e.inFlight = true
	e.mu.Unlock()

	e.run(ctx)
}

func (e *Engine[T]) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

func (e *Engine[T]) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := Status{
		Name:        e.adapter.Name(),
		Loaded:      e.loaded,
		InFlight:    e.inFlight,
		CachedItems: len(e.cache),
		Fetches:     e.fetches,
		LastLoadAt:  e.lastLoadAt,
	}
	if e.lastErr != nil {
		status.LastError = e.lastErr.Error()
	}
	return status
}

func (e *Engine[T]) run(ctx context.Context) {
	start := time.Now()
	e.target.ShowLoading()

	var cards []template.HTML
	items, err := e.fetchItems(ctx)
	if err == nil {
		cards, err = e.render(items)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false

	if err != nil {
		e.lastErr = err
		if e.recoverFromCache(err) || e.keepShown(err) {
			return
		}
		slog.Error("Content load failed",
			"section", e.adapter.Name(),
			"cause", classify(err),
			"duration", time.Since(start),
			"error", err)
		e.target.ShowError()
		return
	}

	now := time.Now()
	e.loaded = true
	e.lastErr = nil
	e.lastLoadAt = &now
	e.shown = cards
	e.shownTotal = len(items)
	if e.cacheItems {
		e.cache = items
	}

	slog.Info("Content loaded",
		"section", e.adapter.Name(),
		"items", len(items),
		"duration", time.Since(start))
}

// recoverFromCache must be called with e.mu held.
func (e *Engine[T]) recoverFromCache(cause error) bool {
	if len(e.cache) == 0 {
		return false
	}

	cards, err := e.render(e.cache)
	if err != nil {
		slog.Error("Cached content could not be rendered", "section", e.adapter.Name(), "error", err)
		return false
	}
	e.shown = cards
	e.shownTotal = len(e.cache)

	slog.Warn("Content load failed, serving cached items",
		"section", e.adapter.Name(),
		"cause", classify(cause),
		"cached", len(e.cache),
		"error", cause)
	e.loaded = true
	return true
}

// keepShown puts back the cards of the last successful load after a failed
// refresh. It must be called with e.mu held.
func (e *Engine[T]) keepShown(cause error) bool {
	if len(e.shown) == 0 {
		return false
	}

	e.target.Replace(e.shown, e.shownTotal)
	slog.Warn("Content refresh failed, keeping rendered items",
		"section", e.adapter.Name(),
		"cause", classify(cause),
		"shown", len(e.shown),
		"error", cause)
	e.loaded = true
	return true
}

func (e *Engine[T]) fetchItems(ctx context.Context) ([]T, error) {
	e.mu.Lock()
	e.fetches++
	e.mu.Unlock()

	data, err := e.fetcher.Fetch(ctx, e.adapter.Locator())
	if err != nil {
		return nil, err
	}

	items, err := e.adapter.Parse(data)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no %s found", ErrEmpty, e.adapter.Name())
	}

	return items, nil
}

func (e *Engine[T]) render(items []T) ([]template.HTML, error) {
	visible := items
	if limit := e.adapter.DisplayCap(); limit > 0 && len(visible) > limit {
		visible = visible[:limit]
	}

	cards := make([]template.HTML, 0, len(visible))
	for i, item := range visible {
		card, err := e.adapter.RenderCard(item, i)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s card %d: %w", e.adapter.Name(), i, err)
		}
		cards = append(cards, card)
	}

	e.target.Replace(cards, len(items))
	return cards, nil
}
