package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeLoadSection    TaskType = "load_section"
	TaskTypeRefreshSection TaskType = "refresh_section"
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetSection() string
	Start()
	GetDuration() time.Duration
}

// Task carries the bookkeeping shared by all tasks. Tasks run once; a failed
// section load is retried by the next navigation, not by the scheduler.
type Task struct {
	ID        string
	Type      TaskType
	Section   string
	StartedAt *time.Time
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetSection() string {
	return t.Section
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, section string) Task {
	return Task{
		ID:      uuid.NewString(),
		Type:    taskType,
		Section: section,
	}
}
