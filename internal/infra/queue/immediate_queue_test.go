package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yanqian/sms-relay/internal/domain/workflow"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestImmediateQueueRunsHandlerDetachedFromRequest(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	q := NewImmediateQueue(func(ctx context.Context, inst workflow.Instance) error {
		require.NoError(t, ctx.Err())
		mu.Lock()
		seen = append(seen, inst.ID)
		mu.Unlock()
		return nil
	})

	reqCtx, cancel := context.WithCancel(context.Background())
	require.NoError(t, q.Enqueue(reqCtx, workflow.Instance{ID: "a"}))
	require.NoError(t, q.Enqueue(reqCtx, workflow.Instance{ID: "b"}))
	cancel()

	require.NoError(t, q.Close(context.Background()))
	require.ElementsMatch(t, []string{"a", "b"}, seen)
}

func TestImmediateQueueRejectsAfterClose(t *testing.T) {
	q := NewImmediateQueue(func(context.Context, workflow.Instance) error { return nil })
	require.NoError(t, q.Close(context.Background()))
	require.ErrorIs(t, q.Enqueue(context.Background(), workflow.Instance{ID: "late"}), ErrClosed)
}

func TestImmediateQueueRequiresHandler(t *testing.T) {
	q := NewImmediateQueue(nil)
	require.Error(t, q.Enqueue(context.Background(), workflow.Instance{ID: "a"}))
	require.NoError(t, q.Close(context.Background()))
}

func TestImmediateQueueCloseCancelsSlowHandlers(t *testing.T) {
	started := make(chan struct{})
	q := NewImmediateQueue(func(ctx context.Context, _ workflow.Instance) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	require.NoError(t, q.Enqueue(context.Background(), workflow.Instance{ID: "slow"}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, q.Close(ctx), context.DeadlineExceeded)
}
