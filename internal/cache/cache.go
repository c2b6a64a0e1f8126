package cache

import (
	"context"
	"time"

	"shelpify/backend/internal/domain"
)

// DiscountCache holds the computed discount-suggestion view for a short
// TTL. Only this derived view is ever cached; ledger state and the
// reconciliation snapshot are always recomputed from storage.
type DiscountCache interface {
	Get(ctx context.Context, key string) (*domain.DiscountSuggestionsResponse, bool, error)
	Set(ctx context.Context, key string, value *domain.DiscountSuggestionsResponse, ttl time.Duration) error
}

type NoopDiscountCache struct{}

func (NoopDiscountCache) Get(_ context.Context, _ string) (*domain.DiscountSuggestionsResponse, bool, error) {
	return nil, false, nil
}

func (NoopDiscountCache) Set(_ context.Context, _ string, _ *domain.DiscountSuggestionsResponse, _ time.Duration) error {
	return nil
}
