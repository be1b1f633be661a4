package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spotme/spotme-api/adapters/event"
	"github.com/spotme/spotme-api/internal/domain/user"
	"github.com/spotme/spotme-api/pkg/apperror"
	"github.com/spotme/spotme-api/pkg/auth"
	"github.com/spotme/spotme-api/pkg/logger"
	"github.com/spotme/spotme-api/pkg/slug"
)

// AuthEventPublisher is what the sign-up and reset flows need from the event
// producer: fire-and-forget delivery of mailer events.
type AuthEventPublisher interface {
	PublishAuthEvent(ctx context.Context, payload event.AuthEventPayload) error
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 8

type SignUpUseCase struct {
	userRepo user.Repository
	events   AuthEventPublisher
	logger   logger.Logger
}

func NewSignUpUseCase(repo user.Repository, events AuthEventPublisher, log logger.Logger) *SignUpUseCase {
	return &SignUpUseCase{
		userRepo: repo,
		events:   events,
		logger:   log,
	}
}

type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
}

type SignUpOutput struct {
	UserID uuid.UUID
	// ConfirmationPending is always true: the account is unusable until the
	// confirmation link is followed, so no session is issued here.
	ConfirmationPending bool
}

func (uc *SignUpUseCase) Execute(ctx context.Context, input SignUpInput) (*SignUpOutput, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if !emailPattern.MatchString(input.Email) {
		return nil, apperror.NewInvalidInput("malformed email address", nil)
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperror.NewInvalidInput("password must be at least 8 characters", nil)
	}

	existing, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, apperror.NewInternal("failed to check existing account", err)
	}
	if existing != nil {
		return nil, apperror.NewConflict("account", "email", input.Email)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	now := time.Now().UTC()
	confirmToken := slug.RandomToken(16)
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		ConfirmToken: &confirmToken,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if name := strings.TrimSpace(input.DisplayName); name != "" {
		newUser.DisplayName = &name
	}

	if err := uc.userRepo.Save(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, apperror.NewConflict("account", "email", input.Email)
		}
		return nil, apperror.NewInternal("failed to create account", err)
	}

	go func() {
		payload := event.AuthEventPayload{
			EventType: event.AuthEventTypeSignedUp,
			UserID:    newUser.ID,
			Email:     newUser.Email,
			Token:     confirmToken,
		}
		if err := uc.events.PublishAuthEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish 'user.signed_up' event", err, zap.String("user_id", newUser.ID.String()))
		}
	}()

	return &SignUpOutput{UserID: newUser.ID, ConfirmationPending: true}, nil
}
