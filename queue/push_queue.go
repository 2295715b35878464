package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joy095/consult/clients"
	"github.com/joy095/consult/logger"
	"github.com/redis/go-redis/v9"
)

// Job lifecycle states, kept in a per-job status hash.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusDelivered  = "delivered"
	StatusFailed     = "failed"
)

// PushJob is one pending push delivery. Jobs are enqueued after the owning
// database transaction commits; delivery is best-effort with bounded retries.
type PushJob struct {
	NotificationID string            `json:"notification_id"`
	Token          string            `json:"token"`
	Title          string            `json:"title"`
	Body           string            `json:"body"`
	Data           map[string]string `json:"data,omitempty"`
}

// PushQueue is a Redis Streams queue with a consumer group. Failed deliveries
// are requeued with a delay until maxRetries, then marked failed.
type PushQueue struct {
	client     *redis.Client
	stream     string
	group      string
	consumer   string
	jobTTL     time.Duration
	maxRetries int
	block      time.Duration
	claimIdle  time.Duration
	retryDelay time.Duration
	maxLen     int64
}

// PushQueueConfig carries tuning knobs; zero values get sane defaults.
type PushQueueConfig struct {
	Stream     string
	Group      string
	Consumer   string
	JobTTL     time.Duration
	MaxRetries int
	Block      time.Duration
	ClaimIdle  time.Duration
	RetryDelay time.Duration
	MaxLen     int64
}

// NewPushQueue builds a queue on an existing Redis client.
func NewPushQueue(client *redis.Client, cfg PushQueueConfig) (*PushQueue, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	stream := cfg.Stream
	if stream == "" {
		stream = "push:jobs"
	}
	group := cfg.Group
	if group == "" {
		group = "push-workers"
	}
	consumer := cfg.Consumer
	if consumer == "" {
		consumer = "worker-1"
	}
	jobTTL := cfg.JobTTL
	if jobTTL <= 0 {
		jobTTL = 24 * time.Hour
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	block := cfg.Block
	if block <= 0 {
		block = 5 * time.Second
	}
	claimIdle := cfg.ClaimIdle
	if claimIdle <= 0 {
		claimIdle = 30 * time.Second
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	maxLen := cfg.MaxLen
	if maxLen <= 0 {
		maxLen = 10000
	}

	return &PushQueue{
		client:     client,
		stream:     stream,
		group:      group,
		consumer:   consumer,
		jobTTL:     jobTTL,
		maxRetries: maxRetries,
		block:      block,
		claimIdle:  claimIdle,
		retryDelay: retryDelay,
		maxLen:     maxLen,
	}, nil
}

// EnsureGroup creates the consumer group if it does not exist yet.
func (q *PushQueue) EnsureGroup(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, q.stream, q.group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// XGROUP CREATE on an existing group returns BUSYGROUP.
func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

// Enqueue appends a job to the stream and records its status.
func (q *PushQueue) Enqueue(ctx context.Context, job PushJob) error {
	if job.NotificationID == "" {
		return errors.New("notification id required")
	}
	if job.Token == "" {
		return errors.New("push token required")
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal push job: %w", err)
	}

	if err := q.writeStatus(ctx, job.NotificationID, StatusQueued, 0, ""); err != nil {
		return err
	}

	if err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		MaxLen: q.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"job":      string(payload),
			"attempts": "0",
		},
	}).Err(); err != nil {
		// Drop the status hash so a job that never entered the stream does
		// not report itself as queued.
		q.client.Del(ctx, q.statusKey(job.NotificationID))
		return fmt.Errorf("failed to enqueue push job: %w", err)
	}

	return nil
}

// Run consumes jobs until the context is cancelled, delivering each through
// the push client. It is meant to run on its own goroutine.
func (q *PushQueue) Run(ctx context.Context, push clients.PushClientWrapper) {
	if err := q.EnsureGroup(ctx); err != nil {
		logger.ErrorLogger.Errorf("Push worker could not ensure consumer group: %v", err)
		return
	}

	logger.InfoLogger.Infof("Push worker %s consuming stream %s", q.consumer, q.stream)

	for {
		if ctx.Err() != nil {
			return
		}

		for _, msg := range q.claimStale(ctx) {
			q.process(ctx, push, msg)
		}

		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    q.group,
			Consumer: q.consumer,
			Streams:  []string{q.stream, ">"},
			Count:    10,
			Block:    q.block,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			logger.ErrorLogger.Errorf("Push worker read failed: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(q.retryDelay):
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				q.process(ctx, push, msg)
			}
		}
	}
}

// process delivers one message and either acks it, requeues it with an
// incremented attempt count, or dead-letters it.
func (q *PushQueue) process(ctx context.Context, push clients.PushClientWrapper, msg redis.XMessage) {
	raw, _ := msg.Values["job"].(string)
	var job PushJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		logger.ErrorLogger.Errorf("Push worker dropping malformed job %s: %v", msg.ID, err)
		q.ack(ctx, msg.ID)
		return
	}

	attempts := parseAttempts(msg.Values["attempts"])
	_ = q.writeStatus(ctx, job.NotificationID, StatusProcessing, attempts+1, "")

	err := push.Send(ctx, clients.PushMessage{
		Token: job.Token,
		Title: job.Title,
		Body:  job.Body,
		Data:  job.Data,
	})
	if err == nil {
		_ = q.writeStatus(ctx, job.NotificationID, StatusDelivered, attempts+1, "")
		q.ack(ctx, msg.ID)
		return
	}

	logger.WarnLogger.Warnf("Push delivery for notification %s failed (attempt %d): %v",
		job.NotificationID, attempts+1, err)

	if attempts+1 >= q.maxRetries {
		_ = q.writeStatus(ctx, job.NotificationID, StatusFailed, attempts+1, err.Error())
		q.ack(ctx, msg.ID)
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(q.retryDelay):
	}

	if err := q.requeueAndAck(ctx, msg.ID, raw, attempts+1); err != nil {
		// Leave the message pending; the idle claim will pick it up again.
		logger.ErrorLogger.Errorf("Push worker failed to requeue job %s: %v", msg.ID, err)
	}
}

// requeueAndAck atomically re-appends the job with the new attempt count and
// acks the original message.
func (q *PushQueue) requeueAndAck(ctx context.Context, msgID, rawJob string, attempts int) error {
	pipe := q.client.TxPipeline()
	pipe.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		MaxLen: q.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"job":      rawJob,
			"attempts": strconv.Itoa(attempts),
		},
	})
	pipe.XAck(ctx, q.stream, q.group, msgID)
	_, err := pipe.Exec(ctx)
	return err
}

// claimStale takes over messages another consumer left pending for too long.
func (q *PushQueue) claimStale(ctx context.Context) []redis.XMessage {
	msgs, _, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   q.stream,
		Group:    q.group,
		Consumer: q.consumer,
		MinIdle:  q.claimIdle,
		Start:    "0",
		Count:    10,
	}).Result()
	if err != nil || len(msgs) == 0 {
		return nil
	}
	logger.InfoLogger.Infof("Push worker %s claimed %d stale jobs", q.consumer, len(msgs))
	return msgs
}

func (q *PushQueue) ack(ctx context.Context, msgID string) {
	if err := q.client.XAck(ctx, q.stream, q.group, msgID).Err(); err != nil {
		logger.ErrorLogger.Errorf("Push worker failed to ack %s: %v", msgID, err)
	}
}

func (q *PushQueue) statusKey(notificationID string) string {
	return "push:status:" + notificationID
}

func (q *PushQueue) writeStatus(ctx context.Context, notificationID, status string, attempts int, errMsg string) error {
	key := q.statusKey(notificationID)
	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"status":     status,
		"attempts":   strconv.Itoa(attempts),
		"error":      errMsg,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	pipe.Expire(ctx, key, q.jobTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write job status: %w", err)
	}
	return nil
}

// GetStatus returns the recorded delivery state for a notification, if any.
func (q *PushQueue) GetStatus(ctx context.Context, notificationID string) (map[string]string, error) {
	vals, err := q.client.HGetAll(ctx, q.statusKey(notificationID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read job status: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}
	return vals, nil
}

func parseAttempts(v interface{}) int {
	s, _ := v.(string)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
