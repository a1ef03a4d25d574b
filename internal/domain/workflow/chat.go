package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/yanqian/sms-relay/internal/domain/relay"
	apperrors "github.com/yanqian/sms-relay/pkg/errors"
)

// Step names recorded in the journal.
const (
	StepCallModel = "call model"
	StepSendSMS   = "send sms"
)

// ChatPolicies configures the two steps of the chat workflow.
type ChatPolicies struct {
	CallModel Policy
	SendSMS   Policy
}

// ChatWorkflow answers one inbound SMS with exactly one outbound SMS.
type ChatWorkflow struct {
	runner   *Runner
	relay    relay.Service
	sender   Sender
	policies ChatPolicies
	logger   *slog.Logger
}

// NewChatWorkflow wires the workflow.
func NewChatWorkflow(runner *Runner, relaySvc relay.Service, sender Sender, policies ChatPolicies, logger *slog.Logger) *ChatWorkflow {
	return &ChatWorkflow{
		runner:   runner,
		relay:    relaySvc,
		sender:   sender,
		policies: policies,
		logger:   logger.With("component", "workflow.chat"),
	}
}

// Run executes inst. A model failure still produces a reply describing it.
func (w *ChatWorkflow) Run(ctx context.Context, inst Instance) error {
	msg := inst.Message
	reply, err := w.runner.Do(ctx, inst.ID, StepCallModel, w.policies.CallModel, func(ctx context.Context) (string, error) {
		return w.relay.Answer(ctx, msg.Body)
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.logger.Error("model step failed", "instance", inst.ID, "error", err)
		reply = "Error calling model: " + lastAttemptError(err).Error()
	}

	out, err := w.runner.Do(ctx, inst.ID, StepSendSMS, w.policies.SendSMS, func(ctx context.Context) (string, error) {
		result, err := w.sender.Send(ctx, msg.From, msg.To, reply)
		if err != nil {
			return "", err
		}
		encoded, err := json.Marshal(result)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeSMS, "send reply failed", err)
	}
	w.logger.Info("reply sent", "instance", inst.ID, "result", out)
	return nil
}

// lastAttemptError unwraps the runner's bookkeeping so the reply carries only
// what the model step itself reported.
func lastAttemptError(err error) error {
	var stepErr *StepError
	if errors.As(err, &stepErr) && stepErr.Last != nil {
		return stepErr.Last
	}
	return err
}
