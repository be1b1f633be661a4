package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spotme/spotme-api/adapters/event"
	"github.com/spotme/spotme-api/pkg/logger"
)

// ProcessAuthEventUseCase turns auth events into outbound mail. Until an SMTP
// provider is wired up the worker logs the links it would send; the URLs are
// the real ones the API serves.
// TODO: swap the log delivery for the transactional mail provider once the
// account is provisioned.
type ProcessAuthEventUseCase struct {
	publicBaseURL string
	logger        logger.Logger
}

func NewProcessAuthEventUseCase(publicBaseURL string, log logger.Logger) *ProcessAuthEventUseCase {
	return &ProcessAuthEventUseCase{
		publicBaseURL: publicBaseURL,
		logger:        log,
	}
}

func (uc *ProcessAuthEventUseCase) Execute(_ context.Context, payload event.AuthEventPayload) error {
	switch payload.EventType {
	case event.AuthEventTypeSignedUp:
		confirmURL := fmt.Sprintf("%s/api/auth/confirm?token=%s", uc.publicBaseURL, payload.Token)
		uc.logger.Info("Confirmation email queued",
			zap.String("email", payload.Email),
			zap.String("confirm_url", confirmURL),
		)
	case event.AuthEventTypeResetRequested:
		resetURL := fmt.Sprintf("%s/reset-password?token=%s", uc.publicBaseURL, payload.Token)
		uc.logger.Info("Password reset email queued",
			zap.String("email", payload.Email),
			zap.String("reset_url", resetURL),
		)
	default:
		return fmt.Errorf("unknown auth event type: %s", payload.EventType)
	}
	return nil
}
