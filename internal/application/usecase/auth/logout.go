package auth

import (
	"context"
	"time"

	"github.com/spotme/spotme-api/internal/application/service"
	"github.com/spotme/spotme-api/pkg/apperror"
)

type LogoutUseCase struct {
	denylist service.TokenDenylist
}

func NewLogoutUseCase(denylist service.TokenDenylist) *LogoutUseCase {
	return &LogoutUseCase{denylist: denylist}
}

type LogoutInput struct {
	JTI       string
	ExpiresAt time.Time
}

// Execute revokes the presented token for the remainder of its lifetime.
// An already-expired token needs no denylist entry.
func (uc *LogoutUseCase) Execute(ctx context.Context, input LogoutInput) error {
	ttl := time.Until(input.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := uc.denylist.Revoke(ctx, input.JTI, ttl); err != nil {
		return apperror.NewInternal("failed to revoke token", err)
	}
	return nil
}
