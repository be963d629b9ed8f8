package theme

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vvilaysack/portfolio/app/database"
)

type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memoryStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[visitorID+"/"+key]
	return value, ok, nil
}

func (m *memoryStore) Set(ctx context.Context, visitorID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[visitorID+"/"+key] = value
	return nil
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func (failingStore) Set(ctx context.Context, visitorID, key, value string) error {
	return errors.New("storage unavailable")
}

func TestCurrentFollowsSystemPreferenceWithoutSavedTheme(t *testing.T) {
	service := NewService(&memoryStore{})
	ctx := context.Background()

	if theme := service.Current(ctx, "visitor", true); theme != Dark {
		t.Errorf("Expected dark from system preference, got '%s'", theme)
	}
	if theme := service.Current(ctx, "visitor", false); theme != Light {
		t.Errorf("Expected light from system preference, got '%s'", theme)
	}
}

func TestSavedThemeWinsOverSystemPreference(t *testing.T) {
	store := &memoryStore{}
	service := NewService(store)
	ctx := context.Background()

	service.Set(ctx, "visitor", Light)

	if theme := service.Current(ctx, "visitor", true); theme != Light {
		t.Errorf("Expected saved light theme, got '%s'", theme)
	}

	fresh := NewService(store)
	if theme := fresh.Current(ctx, "visitor", true); theme != Light {
		t.Errorf("Expected persisted theme to survive a new service, got '%s'", theme)
	}
}

func TestToggle(t *testing.T) {
	store := &memoryStore{}
	service := NewService(store)
	ctx := context.Background()

	if next := service.Toggle(ctx, "visitor", Light); next != Dark {
		t.Errorf("Expected light to toggle to dark, got '%s'", next)
	}
	if value, _, _ := store.Get(ctx, "visitor", StorageKey); value != Dark {
		t.Errorf("Expected 'dark' stored under %s, got '%s'", StorageKey, value)
	}

	if next := service.Toggle(ctx, "visitor", Dark); next != Light {
		t.Errorf("Expected dark to toggle to light, got '%s'", next)
	}
	if next := service.Toggle(ctx, "visitor", "sepia"); next != Dark {
		t.Errorf("Expected unknown theme to count as light, got '%s'", next)
	}
}

func TestToggleWithFailingStore(t *testing.T) {
	service := NewService(failingStore{})
	ctx := context.Background()

	current := service.Current(ctx, "visitor", false)
	if current != Light {
		t.Fatalf("Expected light, got '%s'", current)
	}

	next := service.Toggle(ctx, "visitor", current)
	if next != Dark {
		t.Errorf("Expected toggle to succeed without storage, got '%s'", next)
	}
	if theme := service.Current(ctx, "visitor", false); theme != Dark {
		t.Errorf("Expected in-memory theme to be used, got '%s'", theme)
	}
}

func TestServiceWithoutStore(t *testing.T) {
	service := NewService(nil)
	ctx := context.Background()

	service.Toggle(ctx, "visitor", Light)
	if theme := service.Current(ctx, "visitor", false); theme != Dark {
		t.Errorf("Expected dark, got '%s'", theme)
	}
}

func TestPreferenceStore(t *testing.T) {
	db, err := database.NewConnection(filepath.Join(t.TempDir(), "portfolio.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	service := NewService(NewPreferenceStore(database.NewPreferenceRepository(db)))
	service.Toggle(ctx, "visitor", Light)

	fresh := NewService(NewPreferenceStore(database.NewPreferenceRepository(db)))
	if theme := fresh.Current(ctx, "visitor", false); theme != Dark {
		t.Errorf("Expected theme from SQLite, got '%s'", theme)
	}
}

type flakyStore struct {
	memoryStore
	fail bool
}

func (f *flakyStore) Set(ctx context.Context, visitorID, key, value string) error {
	if f.fail {
		return errors.New("storage unavailable")
	}
	return f.memoryStore.Set(ctx, visitorID, key, value)
}

func TestToggleWithWorkingStoreKeepsNothingInMemory(t *testing.T) {
	service := NewService(&memoryStore{})
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		service.Toggle(ctx, fmt.Sprintf("visitor-%d", i), Light)
	}

	if len(service.fallback) != 0 {
		t.Errorf("Expected no in-memory themes while the store works, got %d", len(service.fallback))
	}
}

func TestFallbackIsBounded(t *testing.T) {
	service := NewService(failingStore{})
	service.maxFallback = 10
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		service.Toggle(ctx, fmt.Sprintf("visitor-%d", i), Light)
	}

	if len(service.fallback) != 10 {
		t.Errorf("Expected in-memory themes capped at 10, got %d", len(service.fallback))
	}
	if theme := service.Current(ctx, "visitor-99", false); theme != Dark {
		t.Errorf("Expected latest visitor to keep its theme, got '%s'", theme)
	}
}

func TestStoreRecoveryClearsFallback(t *testing.T) {
	store := &flakyStore{fail: true}
	service := NewService(store)
	ctx := context.Background()

	service.Toggle(ctx, "visitor", Light)
	if len(service.fallback) != 1 {
		t.Fatalf("Expected theme kept in memory while the store fails, got %d entries", len(service.fallback))
	}

	store.fail = false
	service.Toggle(ctx, "visitor", Dark)

	if len(service.fallback) != 0 {
		t.Errorf("Expected in-memory theme to be dropped after a successful write, got %d entries", len(service.fallback))
	}
	if theme := service.Current(ctx, "visitor", true); theme != Light {
		t.Errorf("Expected stored light theme, got '%s'", theme)
	}
}
