package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/sms-relay/internal/domain/forecast"
	"github.com/yanqian/sms-relay/internal/domain/relay"
	"github.com/yanqian/sms-relay/internal/domain/workflow"
	"github.com/yanqian/sms-relay/internal/infra/config"
	"github.com/yanqian/sms-relay/internal/infra/journal"
	"github.com/yanqian/sms-relay/internal/infra/llm/openai"
	"github.com/yanqian/sms-relay/internal/infra/queue"
	"github.com/yanqian/sms-relay/internal/infra/scheduler"
	"github.com/yanqian/sms-relay/internal/infra/sms/twilio"
	"github.com/yanqian/sms-relay/internal/infra/weather/nws"
)

func provideOpenAIClient(cfg *config.Config) (*openai.Client, error) {
	return openai.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
}

func provideNWSClient(cfg *config.Config) *nws.Client {
	return nws.NewClient(nws.Config{
		BaseURL:   cfg.Weather.BaseURL,
		UserAgent: cfg.Weather.UserAgent,
		Accept:    cfg.Weather.Accept,
		Timeout:   cfg.Weather.Timeout,
		Breaker: nws.BreakerConfig{
			MaxRequests:         cfg.Weather.Breaker.MaxRequests,
			Interval:            cfg.Weather.Breaker.Interval,
			OpenTimeout:         cfg.Weather.Breaker.OpenTimeout,
			ConsecutiveFailures: cfg.Weather.Breaker.ConsecutiveFailures,
		},
	})
}

func provideForecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{APIBase: cfg.Weather.BaseURL}
}

func provideRelayConfig(cfg *config.Config) relay.Config {
	return relay.Config{
		Model:           cfg.LLM.Model,
		PromptID:        cfg.LLM.PromptID,
		PromptVersion:   cfg.LLM.PromptVersion,
		ReasoningEffort: cfg.LLM.ReasoningEffort,
		Background:      cfg.LLM.Background,
		MaxRounds:       cfg.LLM.MaxRounds,
		ToolConcurrency: cfg.LLM.ToolConcurrency,
		PollBaseDelay:   cfg.LLM.PollBaseDelay,
		PollMaxDelay:    cfg.LLM.PollMaxDelay,
		WebSearch: relay.WebSearchConfig{
			Enabled:     cfg.LLM.WebSearch.Enabled,
			ContextSize: cfg.LLM.WebSearch.ContextSize,
			Country:     cfg.LLM.WebSearch.Country,
			Region:      cfg.LLM.WebSearch.Region,
		},
		CodeInterpreter: cfg.LLM.CodeInterpreter,
	}
}

func provideRelayService(cfg relay.Config, client *openai.Client, weather forecast.Service, logger *slog.Logger) relay.Service {
	return relay.NewService(cfg, client, logger, relay.WeatherTool(weather))
}

func provideTwilioClient(cfg *config.Config) (*twilio.Client, error) {
	return twilio.NewClient(twilio.Config{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		BaseURL:    cfg.Twilio.BaseURL,
		Timeout:    cfg.Twilio.Timeout,
	})
}

func provideChatPolicies(cfg *config.Config) workflow.ChatPolicies {
	return workflow.ChatPolicies{
		CallModel: cfg.Workflow.CallModel,
		SendSMS:   cfg.Workflow.SendSMS,
	}
}

// provideValkeyClient connects only when a valkey backend is selected. A nil
// client makes the queue and journal providers fall back to memory.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) (valkey.Client, func()) {
	noop := func() {}
	if cfg.Workflow.Queue != config.BackendValkey && cfg.Workflow.Journal != config.BackendValkey {
		return nil, noop
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory", "error", err)
		return nil, noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory", "error", err)
		client.Close()
		return nil, noop
	}
	logger.Info("valkey connected", "addr", cfg.Valkey.Addr)
	return client, client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	if cfg.Valkey.Password != "" {
		opt.Password = cfg.Valkey.Password
	}
	return opt, nil
}

// providePostgresPool connects only when the postgres journal is selected.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func()) {
	noop := func() {}
	if cfg.Workflow.Journal != config.BackendPostgres {
		return nil, noop
	}
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.Postgres.DSN))
	if err != nil {
		logger.Error("invalid postgres dsn, using memory journal", "error", err)
		return nil, noop
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory journal", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory journal", "error", err)
		pool.Close()
		return nil, noop
	}
	return pool, pool.Close
}

func provideJournal(cfg *config.Config, client valkey.Client, pool *pgxpool.Pool, logger *slog.Logger) workflow.Journal {
	switch {
	case cfg.Workflow.Journal == config.BackendPostgres && pool != nil:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		j, err := journal.NewPostgresJournal(ctx, pool)
		if err != nil {
			logger.Error("postgres journal setup failed, using memory journal", "error", err)
			return journal.NewMemoryJournal()
		}
		logger.Info("postgres step journal enabled")
		return j
	case cfg.Workflow.Journal == config.BackendValkey && client != nil:
		logger.Info("valkey step journal enabled")
		return journal.NewValkeyJournal(client, "sms-relay", cfg.Workflow.JournalRetention)
	default:
		return journal.NewMemoryJournal()
	}
}

func provideQueue(cfg *config.Config, client valkey.Client, logger *slog.Logger) queue.HandlerQueue {
	if cfg.Workflow.Queue == config.BackendValkey && client != nil {
		logger.Info("valkey workflow queue enabled", "key", cfg.Workflow.QueueKey)
		return queue.NewValkeyQueue(client, cfg.Workflow.QueueKey, logger)
	}
	return queue.NewImmediateQueue(nil)
}

func provideWorkflowQueue(q queue.HandlerQueue) workflow.Queue {
	return q
}

func provideSweeper(cfg *config.Config, j workflow.Journal, logger *slog.Logger) *scheduler.Sweeper {
	return scheduler.NewSweeper(j, cfg.Workflow.JournalRetention, cfg.Workflow.SweepInterval, logger)
}
