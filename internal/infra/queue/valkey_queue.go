package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/sms-relay/internal/domain/workflow"
)

const ackTimeout = 5 * time.Second

// lists is the subset of Valkey list commands the queue relies on.
type lists interface {
	// push adds value at the head of key (LPUSH).
	push(ctx context.Context, key, value string) error
	// claim blocks until it moves the tail of src to the head of dst (BLMOVE RIGHT LEFT).
	claim(ctx context.Context, src, dst string, timeout time.Duration) (string, bool, error)
	// restore moves the tail of src to the tail of dst (LMOVE RIGHT RIGHT).
	restore(ctx context.Context, src, dst string) (string, bool, error)
	// remove deletes one occurrence of value from key (LREM 1).
	remove(ctx context.Context, key, value string) error
}

type valkeyLists struct {
	client valkey.Client
}

func (l valkeyLists) push(ctx context.Context, key, value string) error {
	return l.client.Do(ctx, l.client.B().Lpush().Key(key).Element(value).Build()).Error()
}

func (l valkeyLists) claim(ctx context.Context, src, dst string, timeout time.Duration) (string, bool, error) {
	cmd := l.client.B().Blmove().Source(src).Destination(dst).Right().Left().Timeout(timeout.Seconds()).Build()
	return nilAsMissing(l.client.Do(ctx, cmd).ToString())
}

func (l valkeyLists) restore(ctx context.Context, src, dst string) (string, bool, error) {
	cmd := l.client.B().Lmove().Source(src).Destination(dst).Right().Right().Build()
	return nilAsMissing(l.client.Do(ctx, cmd).ToString())
}

func (l valkeyLists) remove(ctx context.Context, key, value string) error {
	return l.client.Do(ctx, l.client.B().Lrem().Key(key).Count(1).Element(value).Build()).Error()
}

func nilAsMissing(value string, err error) (string, bool, error) {
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// ValkeyQueue persists instances in a Valkey list and delivers them to a
// handler. A claimed instance sits in a processing list until its handler
// finishes; instances left there by an interrupted process are put back on
// the queue when the worker starts.
type ValkeyQueue struct {
	lists         lists
	queueKey      string
	processingKey string
	logger        *slog.Logger
	pollTimeout   time.Duration

	mu       sync.Mutex
	handler  Handler
	started  bool
	popCtx   context.Context
	stopPop  context.CancelFunc
	consumer sync.WaitGroup
	jobs     *inflight
}

// NewValkeyQueue constructs a Valkey-backed queue.
func NewValkeyQueue(client valkey.Client, queueKey string, logger *slog.Logger) *ValkeyQueue {
	return newListQueue(valkeyLists{client: client}, queueKey, logger)
}

func newListQueue(store lists, queueKey string, logger *slog.Logger) *ValkeyQueue {
	if queueKey == "" {
		queueKey = "sms-relay:workflows"
	}
	popCtx, stopPop := context.WithCancel(context.Background())
	return &ValkeyQueue{
		lists:         store,
		queueKey:      queueKey,
		processingKey: processingKey(queueKey),
		logger:        logger.With("component", "queue.valkey"),
		pollTimeout:   5 * time.Second,
		popCtx:        popCtx,
		stopPop:       stopPop,
		jobs:          newInflight(),
	}
}

func processingKey(queueKey string) string {
	return queueKey + ":processing"
}

// SetHandler starts the worker loop that claims instances and runs the handler.
func (q *ValkeyQueue) SetHandler(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handler = handler
	if handler == nil || q.started {
		return
	}
	q.started = true
	q.consumer.Add(1)
	go q.consume()
}

// Enqueue pushes an instance onto the list.
func (q *ValkeyQueue) Enqueue(ctx context.Context, inst workflow.Instance) error {
	payload, err := encodeInstance(inst)
	if err != nil {
		return err
	}
	return q.lists.push(ctx, q.queueKey, payload)
}

// Close stops claiming and waits for running handlers.
func (q *ValkeyQueue) Close(ctx context.Context) error {
	q.stopPop()
	q.consumer.Wait()
	return q.jobs.drain(ctx)
}

func (q *ValkeyQueue) consume() {
	defer q.consumer.Done()
	q.restoreOrphans()
	for {
		if q.popCtx.Err() != nil {
			return
		}
		payload, ok, err := q.lists.claim(q.popCtx, q.queueKey, q.processingKey, q.pollTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			q.logger.Warn("valkey queue claim failed", "error", err)
			sleepOrStop(q.popCtx, time.Second)
			continue
		}
		if !ok {
			continue
		}
		inst, err := decodeInstance(payload)
		if err != nil {
			q.logger.Warn("valkey queue dropped malformed payload", "error", err)
			q.ack(payload)
			continue
		}
		q.mu.Lock()
		handler := q.handler
		q.mu.Unlock()
		if handler == nil {
			q.logger.Warn("valkey queue has no handler, instance kept for redelivery", "instance", inst.ID)
			continue
		}
		if err := q.jobs.run(func(ctx context.Context) { q.deliver(ctx, handler, inst, payload) }); err != nil {
			q.logger.Warn("valkey queue closed, instance kept for redelivery", "instance", inst.ID, "error", err)
			return
		}
	}
}

func (q *ValkeyQueue) deliver(ctx context.Context, handler Handler, inst workflow.Instance, payload string) {
	if err := handler(ctx, inst); interrupted(ctx, err) {
		q.logger.Warn("instance interrupted, kept for redelivery", "instance", inst.ID)
		return
	}
	q.ack(payload)
}

func (q *ValkeyQueue) ack(payload string) {
	ctx, cancel := context.WithTimeout(context.Background(), ackTimeout)
	defer cancel()
	if err := q.lists.remove(ctx, q.processingKey, payload); err != nil {
		q.logger.Warn("valkey queue ack failed", "error", err)
	}
}

// restoreOrphans requeues instances a previous worker claimed but never
// finished. Oldest claims go back to the tail so they are claimed first.
func (q *ValkeyQueue) restoreOrphans() {
	restored := 0
	for q.popCtx.Err() == nil {
		_, ok, err := q.lists.restore(q.popCtx, q.processingKey, q.queueKey)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				q.logger.Warn("valkey queue restore failed", "error", err)
			}
			break
		}
		if !ok {
			break
		}
		restored++
	}
	if restored > 0 {
		q.logger.Info("requeued unfinished instances", "count", restored)
	}
}

func encodeInstance(inst workflow.Instance) (string, error) {
	encoded, err := json.Marshal(inst)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodeInstance(payload string) (workflow.Instance, error) {
	var inst workflow.Instance
	if err := json.Unmarshal([]byte(payload), &inst); err != nil {
		return workflow.Instance{}, err
	}
	if inst.ID == "" {
		return workflow.Instance{}, errors.New("instance id missing")
	}
	return inst, nil
}

func sleepOrStop(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

var _ HandlerQueue = (*ValkeyQueue)(nil)
