package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spotme/spotme-api/adapters/event"
	"github.com/spotme/spotme-api/internal/domain/user"
	"github.com/spotme/spotme-api/pkg/apperror"
	"github.com/spotme/spotme-api/pkg/auth"
	"github.com/spotme/spotme-api/pkg/logger"
	"github.com/spotme/spotme-api/pkg/slug"
)

type ResetPasswordUseCase struct {
	userRepo      user.Repository
	events        AuthEventPublisher
	resetLifespan time.Duration
	logger        logger.Logger
}

func NewResetPasswordUseCase(repo user.Repository, events AuthEventPublisher, resetLifespan time.Duration, log logger.Logger) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:      repo,
		events:        events,
		resetLifespan: resetLifespan,
		logger:        log,
	}
}

type RequestResetInput struct {
	Email string
}

// ExecuteRequest stores a time-limited reset token and hands the mailer an
// event. The outcome is identical whether or not the email exists, so the
// endpoint cannot be used to probe for accounts.
func (uc *ResetPasswordUseCase) ExecuteRequest(ctx context.Context, input RequestResetInput) error {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if !emailPattern.MatchString(email) {
		return apperror.NewInvalidInput("malformed email address", nil)
	}

	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		return apperror.NewInternal("failed to query account", err)
	}

	token := slug.RandomToken(16)
	expiry := time.Now().UTC().Add(uc.resetLifespan)
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	u.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return apperror.NewInternal("failed to store reset token", err)
	}

	go func() {
		payload := event.AuthEventPayload{
			EventType: event.AuthEventTypeResetRequested,
			UserID:    u.ID,
			Email:     u.Email,
			Token:     token,
			ExpiresAt: &expiry,
		}
		if err := uc.events.PublishAuthEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish 'user.reset_requested' event", err, zap.String("user_id", u.ID.String()))
		}
	}()

	return nil
}

type ConfirmResetInput struct {
	Token       string
	NewPassword string
}

func (uc *ResetPasswordUseCase) ExecuteConfirm(ctx context.Context, input ConfirmResetInput) error {
	if input.Token == "" {
		return apperror.NewInvalidInput("reset token is required", nil)
	}
	if len(input.NewPassword) < minPasswordLength {
		return apperror.NewInvalidInput("password must be at least 8 characters", nil)
	}

	u, err := uc.userRepo.FindByResetToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return apperror.NewNotFound("reset token", input.Token)
		}
		return apperror.NewInternal("failed to look up reset token", err)
	}

	if u.ResetTokenExpiry == nil || time.Now().UTC().After(*u.ResetTokenExpiry) {
		return apperror.NewInvalidInput("reset token has expired", nil)
	}

	hash, err := auth.HashPassword(input.NewPassword)
	if err != nil {
		return apperror.NewInternal("failed to hash password", err)
	}

	u.PasswordHash = hash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	u.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return apperror.NewInternal("failed to update password", err)
	}
	return nil
}
