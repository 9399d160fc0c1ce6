// Package task provides the bounded worker pool that executes
// annotation work against the inference service.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Scheduler executes batches of tasks with a fixed concurrency ceiling.
//
// The ceiling exists to protect a slow, single-tenant inference backend:
// without it, a discovery burst of hundreds of items would issue as many
// simultaneous calls and saturate the service. Workers continuously
// replace themselves: when one task finishes, the freed slot admits the
// next, which suits the open-ended discovery stream better than
// chunk-and-await batching.
//
// A Scheduler carries no batch state, so concurrent Run calls over
// disjoint item sets do not interfere.
type Scheduler struct {
	limit        int
	logger       *slog.Logger
	errorHandler func(task Task, err error)
}

// NewScheduler creates a scheduler with the given concurrency limit.
// A non-positive limit defaults to 1.
func NewScheduler(limit int, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if limit <= 0 {
		logger.Warn("invalid concurrency limit specified, using default",
			"specified_limit", limit,
			"default_limit", 1)
		limit = 1
	}

	return &Scheduler{
		limit:  limit,
		logger: logger.With(slog.String("component", "scheduler")),
	}
}

// SetErrorHandler sets a handler invoked for every failed task, after
// the failure has been logged. If nil, failures are only logged.
func (s *Scheduler) SetErrorHandler(handler func(task Task, err error)) {
	s.errorHandler = handler
}

// Run executes the batch and blocks until every task has reached a
// terminal state. Guarantees:
//
//   - at most limit tasks execute concurrently;
//   - tasks are started in submission order;
//   - a task's failure (error or panic) is caught and reported locally,
//     never aborting sibling tasks or the pool;
//   - every task receives exactly one execution attempt.
//
// Returns the number of failed tasks.
func (s *Scheduler) Run(ctx context.Context, tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}

	queue := make(chan Task, len(tasks))
	for _, t := range tasks {
		queue <- t
	}
	close(queue)

	workers := s.limit
	if workers > len(tasks) {
		workers = len(tasks)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for t := range queue {
				if err := s.execute(ctx, t, workerID); err != nil {
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}
		}(i)
	}

	wg.Wait()
	return failed
}

// execute runs a single task, converting panics into errors so one bad
// task cannot take down a worker.
func (s *Scheduler) execute(ctx context.Context, t Task, workerID int) (err error) {
	logger := s.logger.With(
		slog.String("task_id", t.ID().String()),
		slog.String("task_kind", t.Kind()),
		slog.Int("worker_id", workerID),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
		if err != nil {
			logger.Error("task execution failed", slog.String("error", err.Error()))
			if s.errorHandler != nil {
				s.errorHandler(t, err)
			}
		}
	}()

	logger.Debug("executing task")
	err = t.Execute(ctx)
	if err == nil {
		logger.Debug("task completed")
	}
	return err
}
