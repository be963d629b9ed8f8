package tasks

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/vvilaysack/portfolio/app/content"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeManager struct {
	name string
	fail bool

	mu        sync.Mutex
	loads     int
	refreshes int
	loaded    bool
	done      chan struct{}
}

func newFakeManager(name string) *fakeManager {
	return &fakeManager{name: name, done: make(chan struct{}, 10)}
}

func (f *fakeManager) Name() string {
	return f.name
}

func (f *fakeManager) Load(ctx context.Context) {
	f.mu.Lock()
	f.loads++
	f.loaded = !f.fail
	f.mu.Unlock()
	f.done <- struct{}{}
}

func (f *fakeManager) Refresh(ctx context.Context) {
	f.mu.Lock()
	f.refreshes++
	f.loaded = !f.fail
	f.mu.Unlock()
	f.done <- struct{}{}
}

func (f *fakeManager) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *fakeManager) Status() content.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	status := content.Status{Name: f.name, Loaded: f.loaded, Fetches: f.loads + f.refreshes}
	if f.fail {
		status.LastError = "network failure"
	}
	return status
}

func (f *fakeManager) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads, f.refreshes
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for task")
	}
}

func TestSchedulerWarmsUpSections(t *testing.T) {
	certifications := newFakeManager("certifications")
	projects := newFakeManager("projects")
	blog := newFakeManager("blog")

	scheduler := NewScheduler([]content.Manager{certifications, projects, blog}, []string{"certifications", "projects", "unknown"}, 2)
	scheduler.Start()

	waitFor(t, certifications.done)
	waitFor(t, projects.done)
	scheduler.Stop()

	if loads, _ := certifications.counts(); loads != 1 {
		t.Errorf("Expected certifications to load once, got %d", loads)
	}
	if loads, _ := projects.counts(); loads != 1 {
		t.Errorf("Expected projects to load once, got %d", loads)
	}
	if loads, _ := blog.counts(); loads != 0 {
		t.Errorf("Expected blog to wait for navigation, got %d loads", loads)
	}
}

func TestLoadSectionTaskSkipsLoadedSection(t *testing.T) {
	blog := newFakeManager("blog")
	scheduler := NewScheduler([]content.Manager{blog}, nil, 1)
	scheduler.Start()
	defer scheduler.Stop()

	if err := scheduler.EnqueueTask(NewLoadSectionTask(blog)); err != nil {
		t.Fatal(err)
	}
	waitFor(t, blog.done)

	task := NewLoadSectionTask(blog)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	if loads, _ := blog.counts(); loads != 1 {
		t.Errorf("Expected a single load, got %d", loads)
	}
}

func TestFailedLoadIsNotRetried(t *testing.T) {
	blog := newFakeManager("blog")
	blog.fail = true

	scheduler := NewScheduler([]content.Manager{blog}, []string{"blog"}, 1)
	scheduler.Start()
	waitFor(t, blog.done)

	select {
	case <-blog.done:
		t.Error("Expected no automatic retry")
	case <-time.After(100 * time.Millisecond):
	}
	scheduler.Stop()

	if loads, _ := blog.counts(); loads != 1 {
		t.Errorf("Expected one load attempt, got %d", loads)
	}
}

func TestRefreshSectionTask(t *testing.T) {
	projects := newFakeManager("projects")
	if err := NewRefreshSectionTask(projects).Execute(context.Background()); err != nil {
		t.Errorf("Expected refresh to succeed, got %v", err)
	}
	<-projects.done

	failing := newFakeManager("blog")
	failing.fail = true
	if err := NewRefreshSectionTask(failing).Execute(context.Background()); err == nil {
		t.Error("Expected failed refresh to return an error")
	}
	<-failing.done
}

func TestTaskContextCancelled(t *testing.T) {
	blog := newFakeManager("blog")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewLoadSectionTask(blog).Execute(ctx); err == nil {
		t.Error("Expected cancelled context error")
	}
	if loads, _ := blog.counts(); loads != 0 {
		t.Errorf("Expected no load, got %d", loads)
	}
}

func TestEnqueueAfterStop(t *testing.T) {
	blog := newFakeManager("blog")
	scheduler := NewScheduler([]content.Manager{blog}, nil, 1)
	scheduler.Start()
	scheduler.Stop()

	if err := scheduler.EnqueueTask(NewLoadSectionTask(blog)); err == nil {
		t.Error("Expected enqueue to fail after stop")
	}
}

func TestNewTask(t *testing.T) {
	first := NewTask(TaskTypeLoadSection, "blog")
	second := NewTask(TaskTypeLoadSection, "blog")

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("Expected unique task IDs, got '%s' and '%s'", first.ID, second.ID)
	}
	if first.GetDuration() != 0 {
		t.Error("Expected zero duration before start")
	}
	first.Start()
	if first.StartedAt == nil {
		t.Error("Expected start time to be set")
	}
}
