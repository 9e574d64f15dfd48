package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/sales-manager/internal/core/domain"
)

const (
	summaryKeyPrefix  = "sales:summary:"
	idempotencyKeyTTL = 24 * time.Hour
	summaryTTL        = time.Hour
)

type RedisAdapter struct {
	client     *redis.Client
	summaryKey string
}

// NewRedisAdapter scopes the summary cache to store, an identifier of the
// transaction log being summarized, so setups sharing one Redis do not read
// each other's totals.
func NewRedisAdapter(client *redis.Client, store string) *RedisAdapter {
	return &RedisAdapter{client: client, summaryKey: summaryKeyPrefix + store}
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

func (r *RedisAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisAdapter) GetSummary(ctx context.Context) (domain.SalesSummary, bool, error) {
	val, err := r.client.Get(ctx, r.summaryKey).Result()
	if err == redis.Nil {
		return domain.SalesSummary{}, false, nil
	}
	if err != nil {
		return domain.SalesSummary{}, false, err
	}

	var s domain.SalesSummary
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return domain.SalesSummary{}, false, err
	}
	return s, true, nil
}

func (r *RedisAdapter) SetSummary(ctx context.Context, s domain.SalesSummary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.summaryKey, payload, summaryTTL).Err()
}

func (r *RedisAdapter) InvalidateSummary(ctx context.Context) error {
	return r.client.Del(ctx, r.summaryKey).Err()
}

// NoopCache is used when no Redis address is configured. Every sale is
// accepted and summaries are always recomputed.
type NoopCache struct{}

func (NoopCache) SetIdempotency(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (NoopCache) ReleaseIdempotency(_ context.Context, _ string) error {
	return nil
}

func (NoopCache) GetSummary(_ context.Context) (domain.SalesSummary, bool, error) {
	return domain.SalesSummary{}, false, nil
}

func (NoopCache) SetSummary(_ context.Context, _ domain.SalesSummary) error {
	return nil
}

func (NoopCache) InvalidateSummary(_ context.Context) error {
	return nil
}
