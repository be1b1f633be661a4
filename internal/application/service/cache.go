package service

import (
	"context"
	"time"

	"github.com/spotme/spotme-api/internal/domain/portfolio"
)

// DocumentCache fronts the published-portfolio lookup by slug. A cache miss
// returns (nil, nil); cache failures are soft and never fail the request.
type DocumentCache interface {
	GetPublished(ctx context.Context, slug string) (*portfolio.Record, error)
	SetPublished(ctx context.Context, rec *portfolio.Record, ttl time.Duration) error
	InvalidatePublished(ctx context.Context, slug string) error
}

// TokenDenylist records revoked JWT IDs until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
