package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"

	"github.com/faturo-inc/faturo/internal/application/billing"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/goroutine"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

const blockTimeout = 5 * time.Second

// Handler processes one charge message.
type Handler func(ctx context.Context, msg billing.Message) error

// Consumer pops charge messages off the Redis list and hands them to the
// handler one at a time. The gateway throttles us anyway, so there is no
// per-worker concurrency. A message that keeps failing after the configured
// attempts moves to the dead-letter list for manual inspection; failures that
// redelivery cannot fix (domain rule violations, missing records) skip the
// retries and dead-letter on the first delivery.
type Consumer struct {
	client      *redis.Client
	key         string
	deadKey     string
	handler     Handler
	maxAttempts int
	logger      logger.Interface

	stopOnce sync.Once
	stopChan chan struct{}
	doneChan chan struct{}
}

func NewConsumer(client *redis.Client, key string, handler Handler, maxAttempts int, logger logger.Interface) *Consumer {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &Consumer{
		client:      client,
		key:         key,
		deadKey:     key + ":dead",
		handler:     handler,
		maxAttempts: maxAttempts,
		logger:      logger,
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
	}
}

// Start launches the consume loop in a background goroutine.
func (c *Consumer) Start(ctx context.Context) {
	goroutine.SafeGo(c.logger, "queue-consumer", func() {
		defer close(c.doneChan)
		c.run(ctx)
	})
}

// Stop signals the loop to exit and waits for the in-flight message.
func (c *Consumer) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
	<-c.doneChan
}

func (c *Consumer) run(ctx context.Context) {
	c.logger.Infow("queue consumer started", "queue_key", c.key)

	for {
		select {
		case <-c.stopChan:
			c.logger.Infow("queue consumer stopped", "queue_key", c.key)
			return
		case <-ctx.Done():
			return
		default:
		}

		values, err := c.client.BLPop(ctx, blockTimeout, c.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			c.logger.Errorw("failed to pop queue message", "error", err, "queue_key", c.key)
			time.Sleep(time.Second)
			continue
		}
		if len(values) < 2 {
			continue
		}

		c.process(ctx, []byte(values[1]))
	}
}

func (c *Consumer) process(ctx context.Context, raw []byte) {
	var msg billing.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.logger.Errorw("failed to decode queue message, moving to dead letter", "error", err)
		c.deadLetter(ctx, raw)
		return
	}

	operation := func() (struct{}, error) {
		err := c.handler(ctx, msg)
		if err != nil && !retryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(c.maxAttempts)),
	)
	if err != nil {
		c.logger.Errorw("message exhausted delivery attempts, moving to dead letter",
			"error", err,
			"message_id", msg.ID,
			"subscription_id", msg.Payload.SubscriptionID,
		)
		c.deadLetter(ctx, raw)
		return
	}

	c.logger.Debugw("message processed", "message_id", msg.ID)
}

// retryable reports whether a handler failure can succeed on redelivery.
// Domain errors and not-found/validation/bad-request failures are
// caller-fixable and go straight to the dead-letter list; lease conflicts
// and transport failures are transient.
func retryable(err error) bool {
	if apperrors.GetDomainError(err) != nil {
		return false
	}
	if appErr := apperrors.GetAppError(err); appErr != nil {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound, apperrors.ErrorTypeValidation, apperrors.ErrorTypeBadRequest:
			return false
		}
	}
	return true
}

func (c *Consumer) deadLetter(ctx context.Context, raw []byte) {
	if err := c.client.RPush(ctx, c.deadKey, raw).Err(); err != nil {
		c.logger.Errorw("failed to move message to dead letter list", "error", err, "dead_key", c.deadKey)
	}
}
