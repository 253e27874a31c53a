package recordlog

import (
	"context"
	"errors"
	"fmt"

	"funnelzip-demo/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisLog keeps each log as a JSON array string under its key.
type RedisLog struct {
	client redis.Cmdable
}

// NewRedisLog stores each log under its storage key as-is.
func NewRedisLog(client redis.Cmdable) *RedisLog {
	return &RedisLog{client: client}
}

func (r *RedisLog) Append(ctx context.Context, key string, rec models.SubmissionRecord) error {
	recs, err := r.List(ctx, key)
	if err != nil {
		return err
	}
	recs = append(recs, rec)

	b, err := encode(recs)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, 0).Err(); err != nil {
		return fmt.Errorf("write log %s: %w", key, err)
	}
	return nil
}

func (r *RedisLog) List(ctx context.Context, key string) ([]models.SubmissionRecord, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read log %s: %w", key, err)
	}
	return decode(key, raw)
}

// Close is a no-op; the client is owned by the caller.
func (r *RedisLog) Close() error { return nil }
