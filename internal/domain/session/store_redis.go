package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// redisStore keeps sessions in Redis so multiple server instances can
// share them. Expiry rides on the Redis key TTL.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed session store. A non-positive
// ttl defaults to 24h.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *redisStore) Set(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *redisStore) Remove(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
