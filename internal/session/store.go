package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps the server-side half of an admin session, keyed by subject.
type Store interface {
	Get(ctx context.Context, subjectID string) (map[string]string, error)
	Save(ctx context.Context, subjectID string, fields map[string]any, ttl time.Duration) error
	Delete(ctx context.Context, subjectID string) error
}

func Key(subjectID string) string {
	return "admin:session:" + subjectID
}

// RedisStore stores sessions as Redis hashes with a sliding TTL.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, subjectID string) (map[string]string, error) {
	return s.rdb.HGetAll(ctx, Key(subjectID)).Result()
}

func (s *RedisStore) Save(ctx context.Context, subjectID string, fields map[string]any, ttl time.Duration) error {
	key := Key(subjectID)
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Delete(ctx context.Context, subjectID string) error {
	return s.rdb.Del(ctx, Key(subjectID)).Err()
}

var _ Store = (*RedisStore)(nil)
