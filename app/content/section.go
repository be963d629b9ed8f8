package content

import (
	"html/template"
	"sync"
	"time"
)

// RenderTarget is the part of the page a content engine owns.
type RenderTarget interface {
	ShowLoading()
	ShowError()
	// Replace removes previously rendered cards before adding the new ones.
	Replace(cards []template.HTML, total int)
}

var _ RenderTarget = (*Section)(nil)

// Section holds the rendered state of one content section. It is safe for
// concurrent use: engines write to it, HTTP handlers read snapshots.
type Section struct {
	name string

	mu        sync.RWMutex
	loading   bool
	failed    bool
	cards     []template.HTML
	total     int
	updatedAt time.Time
}

type Snapshot struct {
	Name      string
	Loading   bool
	Failed    bool
	Cards     []template.HTML
	Total     int
	UpdatedAt time.Time
}

// Ready reports whether the section has cards and no pending load or error.
func (s Snapshot) Ready() bool {
	return !s.Loading && !s.Failed && len(s.Cards) > 0
}

func NewSection(name string) *Section {
	return &Section{name: name}
}

func (s *Section) Name() string {
	return s.name
}

func (s *Section) ShowLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.failed = false
}

func (s *Section) ShowError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.failed = true
	s.updatedAt = time.Now()
}

func (s *Section) Replace(cards []template.HTML, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.failed = false
	s.cards = append([]template.HTML(nil), cards...)
	s.total = total
	s.updatedAt = time.Now()
}

func (s *Section) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Name:      s.name,
		Loading:   s.loading,
		Failed:    s.failed,
		Cards:     append([]template.HTML(nil), s.cards...),
		Total:     s.total,
		UpdatedAt: s.updatedAt,
	}
}
