package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	"github.com/rabnifoundation/rabni-api/pkg/helpers"
)

const postsKey = "cache:posts:list"

// PostCache holds the public blog listing in Redis. Faults are logged and
// read as a miss.
type PostCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewPostCache(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *PostCache {
	return &PostCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *PostCache) Get(ctx context.Context) ([]entity.BlogPost, bool) {
	var posts []entity.BlogPost
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, postsKey, &posts)
	if err != nil {
		c.warn(err, "post cache read failed")
		return nil, false
	}
	return posts, ok
}

func (c *PostCache) Set(ctx context.Context, posts []entity.BlogPost) {
	if err := helpers.RedisSetJSON(ctx, c.rdb, postsKey, posts, c.ttl); err != nil {
		c.warn(err, "post cache write failed")
	}
}

func (c *PostCache) Invalidate(ctx context.Context) {
	if err := helpers.RedisDel(ctx, c.rdb, postsKey); err != nil {
		c.warn(err, "post cache invalidate failed")
	}
}

func (c *PostCache) warn(err error, msg string) {
	if c.logger != nil {
		c.logger.WithError(err).Warn(msg)
	}
}
