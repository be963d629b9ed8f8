package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vvilaysack/portfolio/app/content"
)

type RefreshSectionTask struct {
	Task
	manager content.Manager
}

func NewRefreshSectionTask(manager content.Manager) *RefreshSectionTask {
	return &RefreshSectionTask{
		Task:    NewTask(TaskTypeRefreshSection, manager.Name()),
		manager: manager,
	}
}

func (t *RefreshSectionTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.manager.Refresh(ctx)

	status := t.manager.Status()
	if !status.Loaded {
		return fmt.Errorf("refresh of %s failed: %s", t.Section, status.LastError)
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"section", t.Section,
		"cached_items", status.CachedItems,
		"duration", t.GetDuration())

	return nil
}
