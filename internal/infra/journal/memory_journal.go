package journal

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/sms-relay/internal/domain/workflow"
)

type stepKey struct {
	instanceID string
	step       string
}

// MemoryJournal keeps step records in process memory for tests/dev.
type MemoryJournal struct {
	mu      sync.RWMutex
	records map[stepKey]workflow.StepRecord
}

// NewMemoryJournal constructs an empty journal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{records: make(map[stepKey]workflow.StepRecord)}
}

// Get implements workflow.Journal.
func (j *MemoryJournal) Get(_ context.Context, instanceID, step string) (workflow.StepRecord, bool, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	rec, ok := j.records[stepKey{instanceID, step}]
	return rec, ok, nil
}

// Save implements workflow.Journal.
func (j *MemoryJournal) Save(_ context.Context, record workflow.StepRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records[stepKey{record.InstanceID, record.Step}] = record
	return nil
}

// Prune drops records completed before olderThan.
func (j *MemoryJournal) Prune(_ context.Context, olderThan time.Time) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	removed := 0
	for key, rec := range j.records {
		if rec.CompletedAt.Before(olderThan) {
			delete(j.records, key)
			removed++
		}
	}
	return removed, nil
}

var _ workflow.Journal = (*MemoryJournal)(nil)
