package auth

import (
	"context"
	"errors"
	"time"

	"github.com/spotme/spotme-api/internal/domain/user"
	"github.com/spotme/spotme-api/pkg/apperror"
)

type ConfirmEmailUseCase struct {
	userRepo user.Repository
}

func NewConfirmEmailUseCase(repo user.Repository) *ConfirmEmailUseCase {
	return &ConfirmEmailUseCase{userRepo: repo}
}

type ConfirmEmailInput struct {
	Token string
}

// Execute marks the account confirmed and burns the token. Confirming an
// already-confirmed account is not an error the caller needs to tell apart;
// the token simply no longer resolves.
func (uc *ConfirmEmailUseCase) Execute(ctx context.Context, input ConfirmEmailInput) error {
	if input.Token == "" {
		return apperror.NewInvalidInput("confirmation token is required", nil)
	}

	u, err := uc.userRepo.FindByConfirmToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return apperror.NewNotFound("confirmation token", input.Token)
		}
		return apperror.NewInternal("failed to look up confirmation token", err)
	}

	now := time.Now().UTC()
	u.EmailConfirmedAt = &now
	u.ConfirmToken = nil
	u.UpdatedAt = now

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return apperror.NewInternal("failed to confirm account", err)
	}
	return nil
}
