package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner deletes journal records older than a cutoff.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Time) (int, error)
}

// Sweeper periodically removes expired step records from the journal.
type Sweeper struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewSweeper creates a sweeper. Start must be called to schedule it.
func NewSweeper(pruner Pruner, retention, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Sweeper{
		scheduler: s,
		pruner:    pruner,
		retention: retention,
		interval:  interval,
		logger:    logger.With("component", "scheduler.sweeper"),
		now:       time.Now,
	}
}

// Start schedules the sweep job and starts the underlying scheduler. A zero
// retention keeps records forever, so nothing is scheduled.
func (s *Sweeper) Start() error {
	if s.retention <= 0 {
		s.logger.Info("journal retention disabled; sweeper not scheduled")
		return nil
	}
	if _, err := s.scheduler.Every(s.interval).Do(s.Sweep); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Sweep prunes once.
func (s *Sweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	cutoff := s.now().Add(-s.retention)
	removed, err := s.pruner.Prune(ctx, cutoff)
	if err != nil {
		s.logger.Warn("journal sweep failed", "error", err)
		return
	}
	s.logger.Info("journal sweep completed", "removed", removed, "cutoff", cutoff)
}

// Stop stops the scheduler and cancels any future sweeps.
func (s *Sweeper) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
