package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/sms-relay/internal/domain/workflow"
	"github.com/yanqian/sms-relay/internal/infra/config"
	"github.com/yanqian/sms-relay/internal/infra/queue"
	"github.com/yanqian/sms-relay/internal/infra/scheduler"
)

// App encapsulates the webhook server, the workflow worker and the journal
// sweeper lifecycles.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	server   *http.Server
	queue    queue.HandlerQueue
	workflow *workflow.ChatWorkflow
	sweeper  *scheduler.Sweeper
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, q queue.HandlerQueue, wf *workflow.ChatWorkflow, sweeper *scheduler.Sweeper) *App {
	return &App{
		cfg:      cfg,
		logger:   logger.With("component", "bootstrap"),
		server:   server,
		queue:    q,
		workflow: wf,
		sweeper:  sweeper,
	}
}

// Run starts the worker, the sweeper and the HTTP server and blocks until
// shutdown. In-flight workflows are drained before it returns.
func (a *App) Run(ctx context.Context) error {
	a.queue.SetHandler(a.runInstance)
	if err := a.sweeper.Start(); err != nil {
		return err
	}
	defer a.sweeper.Stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address, "sms_path", a.cfg.HTTP.SMSPath)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	}

	timeout := a.cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	if err := a.queue.Close(shutdownCtx); err != nil {
		a.logger.Warn("workflows still running at shutdown were cancelled", "error", err)
	}
	return runErr
}

func (a *App) runInstance(ctx context.Context, inst workflow.Instance) error {
	start := time.Now()
	if err := a.workflow.Run(ctx, inst); err != nil {
		if ctx.Err() != nil {
			a.logger.Warn("workflow interrupted", "instance", inst.ID, "error", err, "duration", time.Since(start))
			return err
		}
		a.logger.Error("workflow failed", "instance", inst.ID, "error", err, "duration", time.Since(start))
		return err
	}
	a.logger.Info("workflow completed", "instance", inst.ID, "duration", time.Since(start))
	return nil
}
