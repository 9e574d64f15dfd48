package port

import (
	"context"

	"github.com/rl1809/sales-manager/internal/core/domain"
)

type CacheRepository interface {
	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency drops a key so a failed request can be retried
	ReleaseIdempotency(ctx context.Context, key string) error

	// GetSummary returns a cached whole-log summary, ok is false on a miss
	GetSummary(ctx context.Context) (summary domain.SalesSummary, ok bool, err error)

	SetSummary(ctx context.Context, summary domain.SalesSummary) error

	// InvalidateSummary drops the cached summary after the log changes
	InvalidateSummary(ctx context.Context) error
}
