package task

import (
	"context"

	"github.com/google/uuid"
)

// Task represents one unit of annotation work dispatched to the
// inference service. Implementations carry their own item reference and
// write their result to the cache; the scheduler only drives execution.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Kind returns the task kind identifier for logging.
	Kind() string

	// Execute runs the task logic. Errors are reported to the
	// scheduler's error handler, never retried.
	Execute(ctx context.Context) error
}
