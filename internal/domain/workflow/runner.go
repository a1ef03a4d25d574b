package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	apperrors "github.com/yanqian/sms-relay/pkg/errors"
)

// ErrAttemptsExhausted marks a step that failed on every allowed attempt.
var ErrAttemptsExhausted = errors.New("step attempts exhausted")

// StepError reports a step that ran out of attempts. It matches
// ErrAttemptsExhausted and the error of the last attempt.
type StepError struct {
	Step     string
	Attempts int
	Last     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed after %d attempts: %s: %s", e.Step, e.Attempts, ErrAttemptsExhausted, e.Last)
}

func (e *StepError) Unwrap() []error {
	return []error{ErrAttemptsExhausted, e.Last}
}

// StepFunc is the body of a step. Its output is journaled on success.
type StepFunc func(ctx context.Context) (string, error)

// Runner executes steps with retries and records their results.
type Runner struct {
	journal Journal
	logger  *slog.Logger
	now     func() time.Time
}

// NewRunner constructs a step runner over journal.
func NewRunner(journal Journal, logger *slog.Logger) *Runner {
	return &Runner{
		journal: journal,
		logger:  logger.With("component", "workflow.runner"),
		now:     time.Now,
	}
}

// Do runs fn as the named step of instanceID. A step already recorded in the
// journal is not run again; its stored output is returned instead.
func (r *Runner) Do(ctx context.Context, instanceID, step string, policy Policy, fn StepFunc) (string, error) {
	record, ok, err := r.journal.Get(ctx, instanceID, step)
	if err != nil {
		r.logger.Warn("journal lookup failed", "instance", instanceID, "step", step, "error", err)
	} else if ok {
		r.logger.Info("step replayed from journal", "instance", instanceID, "step", step)
		return record.Output, nil
	}

	var (
		output  string
		attempt int
		lastErr error
	)
	err = retry.Do(ctx, policy.backoff(), func(ctx context.Context) error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
		out, err := fn(attemptCtx)
		if err != nil {
			lastErr = err
			r.logger.Warn("step attempt failed", "instance", instanceID, "step", step, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		output = out
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("step %q interrupted: %w", step, ctxErr)
		}
		if lastErr == nil {
			lastErr = err
		}
		return "", &StepError{Step: step, Attempts: attempt, Last: lastErr}
	}

	saveErr := r.journal.Save(ctx, StepRecord{
		InstanceID:  instanceID,
		Step:        step,
		Output:      output,
		CompletedAt: r.now().UTC(),
	})
	if saveErr != nil {
		r.logger.Warn("journal save failed", "instance", instanceID, "step", step,
			"error", apperrors.Wrap(apperrors.CodeJournal, "save step record", saveErr))
	}
	return output, nil
}
