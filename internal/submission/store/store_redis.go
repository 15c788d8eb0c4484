package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"intake/internal/submission"
	"intake/pkg/platform/sentinel"
)

// DefaultRedisKey is the list holding the collection.
const DefaultRedisKey = "intake:submissions"

// RedisStore keeps the collection as a Redis list of JSON documents. RPUSH is
// atomic on the server, so concurrent appends from several processes are safe.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisStore returns a store over the list at key (DefaultRedisKey when empty).
func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// ReadAll returns the whole list in insertion order.
func (s *RedisStore) ReadAll(ctx context.Context) ([]submission.Submission, error) {
	values, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: lrange %s: %w", sentinel.ErrUnavailable, s.key, err)
	}

	subs := make([]submission.Submission, 0, len(values))
	for i, value := range values {
		var sub submission.Submission
		if err := json.Unmarshal([]byte(value), &sub); err != nil {
			return nil, fmt.Errorf("%w: decode %s[%d]: %w", sentinel.ErrInvalidState, s.key, i, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// Append pushes sub onto the tail of the list.
func (s *RedisStore) Append(ctx context.Context, sub submission.Submission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("%w: rpush %s: %w", sentinel.ErrUnavailable, s.key, err)
	}
	return nil
}
