package inboxinfra

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/inbox"
	"github.com/go-redis/redis/v8"
)

// RedisInbox implements inbox.Inbox with one list per user plus a set
// holding the unread texts for deduplication.
type RedisInbox struct {
	client *redis.Client
	prefix string
}

var _ inbox.Inbox = (*RedisInbox)(nil)

// NewRedisInbox creates a Redis-backed inbox. Keys are "<prefix>:<user>".
func NewRedisInbox(client *redis.Client, prefix string) *RedisInbox {
	return &RedisInbox{client: client, prefix: prefix}
}

func (r *RedisInbox) listKey(userID kernel.UserID) string {
	return fmt.Sprintf("%s:%s", r.prefix, userID)
}

func (r *RedisInbox) setKey(userID kernel.UserID) string {
	return fmt.Sprintf("%s:%s:unread", r.prefix, userID)
}

// Deliver appends text unless it is already unread
func (r *RedisInbox) Deliver(ctx context.Context, userID kernel.UserID, text string) error {
	added, err := r.client.SAdd(ctx, r.setKey(userID), text).Result()
	if err != nil {
		return fmt.Errorf("deliver message to %s: %w", userID, err)
	}
	if added == 0 {
		return nil
	}

	if err := r.client.RPush(ctx, r.listKey(userID), text).Err(); err != nil {
		// keep the set consistent with the list
		_ = r.client.SRem(ctx, r.setKey(userID), text).Err()
		return fmt.Errorf("deliver message to %s: %w", userID, err)
	}
	return nil
}

// Drain reads and clears the list atomically
func (r *RedisInbox) Drain(ctx context.Context, userID kernel.UserID) ([]string, error) {
	pipe := r.client.TxPipeline()
	lrange := pipe.LRange(ctx, r.listKey(userID), 0, -1)
	pipe.Del(ctx, r.listKey(userID))
	pipe.Del(ctx, r.setKey(userID))

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("drain messages of %s: %w", userID, err)
	}

	msgs, err := lrange.Result()
	if err != nil {
		return nil, fmt.Errorf("drain messages of %s: %w", userID, err)
	}
	if msgs == nil {
		msgs = []string{}
	}
	return msgs, nil
}
