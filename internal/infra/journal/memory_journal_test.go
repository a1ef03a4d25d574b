package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/sms-relay/internal/domain/workflow"
)

func TestMemoryJournalRoundTrip(t *testing.T) {
	j := NewMemoryJournal()
	ctx := context.Background()

	_, ok, err := j.Get(ctx, "inst", "call model")
	require.NoError(t, err)
	require.False(t, ok)

	rec := workflow.StepRecord{InstanceID: "inst", Step: "call model", Output: "Sunny", CompletedAt: time.Now()}
	require.NoError(t, j.Save(ctx, rec))

	got, ok, err := j.Get(ctx, "inst", "call model")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rec, got)

	_, ok, err = j.Get(ctx, "inst", "send sms")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryJournalPrune(t *testing.T) {
	j := NewMemoryJournal()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, j.Save(ctx, workflow.StepRecord{InstanceID: "old", Step: "s", CompletedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, j.Save(ctx, workflow.StepRecord{InstanceID: "new", Step: "s", CompletedAt: now}))

	removed, err := j.Prune(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, ok, _ := j.Get(ctx, "old", "s")
	require.False(t, ok)
	_, ok, _ = j.Get(ctx, "new", "s")
	require.True(t, ok)
}
