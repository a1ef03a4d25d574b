//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/sms-relay/internal/bootstrap"
	"github.com/yanqian/sms-relay/internal/domain/forecast"
	"github.com/yanqian/sms-relay/internal/domain/workflow"
	"github.com/yanqian/sms-relay/internal/infra/config"
	"github.com/yanqian/sms-relay/internal/infra/sms/twilio"
	"github.com/yanqian/sms-relay/internal/infra/weather/nws"
	httpiface "github.com/yanqian/sms-relay/internal/interface/http"
	"github.com/yanqian/sms-relay/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideOpenAIClient,
		provideNWSClient,
		provideForecastConfig,
		forecast.NewService,
		provideRelayConfig,
		provideRelayService,
		provideTwilioClient,
		provideValkeyClient,
		providePostgresPool,
		provideJournal,
		provideQueue,
		provideWorkflowQueue,
		provideChatPolicies,
		provideSweeper,
		workflow.NewRunner,
		workflow.NewChatWorkflow,
		wire.Bind(new(forecast.Fetcher), new(*nws.Client)),
		wire.Bind(new(workflow.Sender), new(*twilio.Client)),
		httpiface.NewSMSHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
