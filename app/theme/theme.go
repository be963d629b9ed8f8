package theme

import (
	"context"
	"log/slog"
	"sync"
)

const (
	Light = "light"
	Dark  = "dark"

	// StorageKey is the preference key the theme is persisted under.
	StorageKey = "portfolio-theme"

	maxFallbackEntries = 10000
)

// Store persists one value per visitor and key.
type Store interface {
	Get(ctx context.Context, visitorID, key string) (string, bool, error)
	Set(ctx context.Context, visitorID, key, value string) error
}

// Service resolves and toggles visitor themes. Themes the Store could not take
// are kept in a bounded in-memory map, so a failing Store only loses
// persistence.
type Service struct {
	store Store

	mu          sync.RWMutex
	fallback    map[string]string
	maxFallback int
}

func NewService(store Store) *Service {
	return &Service{
		store:       store,
		fallback:    make(map[string]string),
		maxFallback: maxFallbackEntries,
	}
}

// Current returns the saved theme, or the system preference when nothing was
// saved explicitly.
func (s *Service) Current(ctx context.Context, visitorID string, systemPrefersDark bool) string {
	if saved, ok := s.saved(ctx, visitorID); ok {
		return saved
	}
	if systemPrefersDark {
		return Dark
	}
	return Light
}

// Toggle flips current and persists the result.
func (s *Service) Toggle(ctx context.Context, visitorID, current string) string {
	next := Dark
	if Normalize(current) == Dark {
		next = Light
	}
	s.Set(ctx, visitorID, next)
	return next
}

func (s *Service) Set(ctx context.Context, visitorID, theme string) {
	theme = Normalize(theme)

	if s.store != nil && visitorID != "" {
		err := s.store.Set(ctx, visitorID, StorageKey, theme)
		if err == nil {
			s.mu.Lock()
			delete(s.fallback, visitorID)
			s.mu.Unlock()
			return
		}
		slog.Warn("Failed to persist theme", "visitor", visitorID, "theme", theme, "error", err)
	}

	s.remember(visitorID, theme)
}

// remember keeps theme in memory, evicting an arbitrary visitor when the map
// is full.
func (s *Service) remember(visitorID, theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fallback[visitorID]; !ok && len(s.fallback) >= s.maxFallback {
		for id := range s.fallback {
			delete(s.fallback, id)
			break
		}
	}
	s.fallback[visitorID] = theme
}

func (s *Service) saved(ctx context.Context, visitorID string) (string, bool) {
	s.mu.RLock()
	value, ok := s.fallback[visitorID]
	s.mu.RUnlock()
	if ok {
		return value, true
	}

	if s.store == nil || visitorID == "" {
		return "", false
	}

	value, ok, err := s.store.Get(ctx, visitorID, StorageKey)
	if err != nil {
		slog.Warn("Failed to read theme", "visitor", visitorID, "error", err)
		return "", false
	}
	if !ok || !Valid(value) {
		return "", false
	}
	return value, true
}

func Valid(theme string) bool {
	return theme == Light || theme == Dark
}

// Normalize maps anything other than "dark" to light.
func Normalize(theme string) string {
	if theme == Dark {
		return Dark
	}
	return Light
}
