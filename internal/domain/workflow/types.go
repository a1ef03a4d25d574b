package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/sms-relay/internal/infra/sms/twilio"
)

// InboundMessage is a validated SMS received by the webhook.
type InboundMessage struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// Instance is one run of the chat workflow for one inbound message.
type Instance struct {
	ID        string         `json:"id"`
	Message   InboundMessage `json:"message"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewInstance assigns a fresh id to msg.
func NewInstance(msg InboundMessage, now time.Time) Instance {
	return Instance{ID: uuid.NewString(), Message: msg, CreatedAt: now}
}

// StepRecord is the stored output of a completed step.
type StepRecord struct {
	InstanceID  string    `json:"instance_id"`
	Step        string    `json:"step"`
	Output      string    `json:"output"`
	CompletedAt time.Time `json:"completed_at"`
}

// Journal stores completed step outputs so a replayed instance skips them.
type Journal interface {
	Get(ctx context.Context, instanceID, step string) (StepRecord, bool, error)
	Save(ctx context.Context, record StepRecord) error
	Prune(ctx context.Context, olderThan time.Time) (int, error)
}

// Queue hands instances to the worker that runs them.
type Queue interface {
	Enqueue(ctx context.Context, inst Instance) error
}

// Sender delivers an outbound SMS.
type Sender interface {
	Send(ctx context.Context, to, from, body string) (twilio.SendResult, error)
}
