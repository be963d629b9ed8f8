package tasks

import (
	"context"
	"log/slog"

	"github.com/vvilaysack/portfolio/app/content"
)

type LoadSectionTask struct {
	Task
	manager content.Manager
}

// NewLoadSectionTask loads the section unless it is already loaded or loading.
func NewLoadSectionTask(manager content.Manager) *LoadSectionTask {
	return &LoadSectionTask{
		Task:    NewTask(TaskTypeLoadSection, manager.Name()),
		manager: manager,
	}
}

func (t *LoadSectionTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if t.manager.Loaded() {
		slog.Debug("Section already loaded, skipping", "section", t.Section)
		return nil
	}

	t.manager.Load(ctx)

	slog.Debug("Task completed",
		"type", string(t.Type),
		"section", t.Section,
		"loaded", t.manager.Loaded(),
		"duration", t.GetDuration())

	return nil
}
