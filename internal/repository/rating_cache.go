package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "gomoku"

func ratingKey(username string) string {
	return fmt.Sprintf("%s:rating:%s", keyPrefix, username)
}

type RatingSource interface {
	FindRating(ctx context.Context, username string) (float64, error)
	UpdateRating(ctx context.Context, username string, rating float64) error
}

// CachedRatingStore reads ratings through Redis and writes through to the
// underlying source. Cache failures are logged and fall back to the source.
type CachedRatingStore struct {
	next   RatingSource
	client *redis.Client
	ttl    time.Duration
	log    *zap.SugaredLogger
}

func NewCachedRatingStore(next RatingSource, client *redis.Client, ttl time.Duration, log *zap.SugaredLogger) *CachedRatingStore {
	return &CachedRatingStore{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (c *CachedRatingStore) FindRating(ctx context.Context, username string) (float64, error) {
	key := ratingKey(username)
	rating, err := c.client.Get(ctx, key).Float64()
	switch {
	case err == nil:
		return rating, nil
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warnw("rating cache read failed", "user", username, "error", err)
	}

	rating, err = c.next.FindRating(ctx, username)
	if err != nil {
		return 0, err
	}
	if err := c.client.Set(ctx, key, rating, c.ttl).Err(); err != nil {
		c.log.Warnw("rating cache write failed", "user", username, "error", err)
	}
	return rating, nil
}

func (c *CachedRatingStore) UpdateRating(ctx context.Context, username string, rating float64) error {
	key := ratingKey(username)
	if err := c.next.UpdateRating(ctx, username, rating); err != nil {
		if delErr := c.client.Del(ctx, key).Err(); delErr != nil {
			c.log.Warnw("rating cache invalidate failed", "user", username, "error", delErr)
		}
		return err
	}
	if err := c.client.Set(ctx, key, rating, c.ttl).Err(); err != nil {
		c.log.Warnw("rating cache write failed", "user", username, "error", err)
	}
	return nil
}
