package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vvilaysack/portfolio/app/content"
)

const (
	queueSize   = 32
	taskTimeout = time.Minute
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	managers    map[string]content.Manager
	warmup      []string
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

// NewScheduler runs tasks on workerCount workers. Sections named in warmup are
// loaded as soon as the scheduler starts.
func NewScheduler(managers []content.Manager, warmup []string, workerCount int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	byName := make(map[string]content.Manager, len(managers))
	for _, manager := range managers {
		byName[manager.Name()] = manager
	}

	return &Scheduler{
		managers:    byName,
		warmup:      warmup,
		workerCount: max(workerCount, 1),
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, queueSize),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.enqueueStartupTasks()
}

// Stop cancels running tasks and waits for the workers to exit. Queued tasks
// are dropped.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}

	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	for _, name := range s.warmup {
		manager, ok := s.managers[name]
		if !ok {
			slog.Warn("Unknown section in warm-up list", "section", name)
			continue
		}

		if err := s.EnqueueTask(NewLoadSectionTask(manager)); err != nil {
			slog.Warn("Failed to enqueue LoadSectionTask", "section", name, "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.taskQueue:
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, taskTimeout)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Worker task execution failed",
			"worker_id", workerID,
			"type", string(task.GetType()),
			"id", task.GetID(),
			"section", task.GetSection(),
			"error", err)
	}
}
