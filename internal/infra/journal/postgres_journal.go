package journal

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/sms-relay/internal/domain/workflow"
)

const createStepsTable = `
	CREATE TABLE IF NOT EXISTS workflow_steps (
		instance_id  TEXT        NOT NULL,
		step         TEXT        NOT NULL,
		output       TEXT        NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (instance_id, step)
	)
`

// PostgresJournal implements workflow.Journal using pgx.
type PostgresJournal struct {
	pool *pgxpool.Pool
}

// NewPostgresJournal constructs the journal and ensures its table exists.
func NewPostgresJournal(ctx context.Context, pool *pgxpool.Pool) (*PostgresJournal, error) {
	if _, err := pool.Exec(ctx, createStepsTable); err != nil {
		return nil, err
	}
	return &PostgresJournal{pool: pool}, nil
}

// Get fetches the record for one step of an instance.
func (j *PostgresJournal) Get(ctx context.Context, instanceID, step string) (workflow.StepRecord, bool, error) {
	var record workflow.StepRecord
	err := j.pool.QueryRow(ctx, `
		SELECT instance_id, step, output, completed_at
		FROM workflow_steps
		WHERE instance_id = $1 AND step = $2
	`, instanceID, step).Scan(&record.InstanceID, &record.Step, &record.Output, &record.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workflow.StepRecord{}, false, nil
		}
		return workflow.StepRecord{}, false, err
	}
	return record, true, nil
}

// Save upserts a step record.
func (j *PostgresJournal) Save(ctx context.Context, record workflow.StepRecord) error {
	_, err := j.pool.Exec(ctx, `
		INSERT INTO workflow_steps (instance_id, step, output, completed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (instance_id, step)
		DO UPDATE SET output = EXCLUDED.output, completed_at = EXCLUDED.completed_at
	`, record.InstanceID, record.Step, record.Output, record.CompletedAt)
	return err
}

// Prune deletes records completed before olderThan.
func (j *PostgresJournal) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	tag, err := j.pool.Exec(ctx, `DELETE FROM workflow_steps WHERE completed_at < $1`, olderThan)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

var _ workflow.Journal = (*PostgresJournal)(nil)
