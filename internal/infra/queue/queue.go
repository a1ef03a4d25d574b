package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/yanqian/sms-relay/internal/domain/workflow"
)

// ErrClosed is returned by Enqueue after Close.
var ErrClosed = errors.New("queue closed")

// Handler runs one workflow instance. An error that wraps the handler
// context's cancellation means the instance did not finish and should be
// delivered again.
type Handler func(ctx context.Context, inst workflow.Instance) error

// interrupted reports whether err came from ctx being cancelled under a
// running handler.
func interrupted(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err())
}

// HandlerQueue supports setting a handler for job delivery.
type HandlerQueue interface {
	workflow.Queue
	SetHandler(handler Handler)
	Close(ctx context.Context) error
}

// inflight tracks running handlers so Close can drain them.
type inflight struct {
	mu     sync.RWMutex
	wg     sync.WaitGroup
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
}

func newInflight() *inflight {
	ctx, cancel := context.WithCancel(context.Background())
	return &inflight{ctx: ctx, cancel: cancel}
}

// run starts fn unless the queue is closed.
func (f *inflight) run(fn func(ctx context.Context)) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return ErrClosed
	}
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		fn(f.ctx)
	}()
	return nil
}

// drain stops new work and waits for running handlers. If ctx expires first
// the handlers' context is cancelled and drain still waits for them to return.
func (f *inflight) drain(ctx context.Context) error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		f.cancel()
		return nil
	case <-ctx.Done():
		f.cancel()
		<-done
		return ctx.Err()
	}
}
