package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/faturo-inc/faturo/internal/application/billing"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

// RedisQueue is a Redis-list backed charge queue. Producers push whole pages
// of messages with a single RPUSH; workers consume with BLPOP.
type RedisQueue struct {
	client *redis.Client
	key    string
	logger logger.Interface
}

func NewRedisQueue(client *redis.Client, key string, logger logger.Interface) *RedisQueue {
	return &RedisQueue{
		client: client,
		key:    key,
		logger: logger,
	}
}

// AddMessages enqueues a batch of messages in one round trip.
func (q *RedisQueue) AddMessages(ctx context.Context, messages []billing.Message) error {
	if len(messages) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal queue message: %w", err)
		}
		values = append(values, data)
	}

	if err := q.client.RPush(ctx, q.key, values...).Err(); err != nil {
		return fmt.Errorf("failed to enqueue messages: %w", err)
	}

	q.logger.Infow("messages enqueued", "count", len(messages), "queue_key", q.key)
	return nil
}

// Len returns the number of messages waiting in the queue.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
