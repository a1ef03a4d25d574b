package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/yanqian/sms-relay/internal/domain/workflow"
)

// ImmediateQueue runs each instance on its own goroutine as soon as it is
// enqueued. Handlers outlive the enqueuing request. Nothing survives a
// restart, so an instance interrupted at shutdown is not redelivered.
type ImmediateQueue struct {
	mu      sync.RWMutex
	handler Handler
	jobs    *inflight
}

// NewImmediateQueue constructs the queue.
func NewImmediateQueue(handler Handler) *ImmediateQueue {
	return &ImmediateQueue{handler: handler, jobs: newInflight()}
}

// SetHandler replaces the handler used for queued jobs.
func (q *ImmediateQueue) SetHandler(handler Handler) {
	q.mu.Lock()
	q.handler = handler
	q.mu.Unlock()
}

// Enqueue starts the handler in the background.
func (q *ImmediateQueue) Enqueue(_ context.Context, inst workflow.Instance) error {
	q.mu.RLock()
	handler := q.handler
	q.mu.RUnlock()
	if handler == nil {
		return errors.New("queue has no handler")
	}
	return q.jobs.run(func(ctx context.Context) {
		_ = handler(ctx, inst)
	})
}

// Close waits for running handlers.
func (q *ImmediateQueue) Close(ctx context.Context) error {
	return q.jobs.drain(ctx)
}

var _ HandlerQueue = (*ImmediateQueue)(nil)
