package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spotme/spotme-api/adapters/event"
	"github.com/spotme/spotme-api/internal/application/editor"
	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/pkg/apperror"
	"github.com/spotme/spotme-api/pkg/logger"
)

type DeletePortfolioUseCase struct {
	portfolioRepo portfolio.Repository
	store         *editor.Store
	events        PortfolioEventPublisher
	logger        logger.Logger
}

func NewDeletePortfolioUseCase(pRepo portfolio.Repository, store *editor.Store, events PortfolioEventPublisher, log logger.Logger) *DeletePortfolioUseCase {
	return &DeletePortfolioUseCase{
		portfolioRepo: pRepo,
		store:         store,
		events:        events,
		logger:        log,
	}
}

type DeletePortfolioInput struct {
	UserID uuid.UUID
}

// Execute soft-deletes the owner's record and clears editor state. The
// delete event lets the cache worker drop the published entry.
func (uc *DeletePortfolioUseCase) Execute(ctx context.Context, input DeletePortfolioInput) error {
	rec, err := uc.portfolioRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, portfolio.ErrPortfolioNotFound) {
			return apperror.NewNotFound("portfolio", input.UserID.String())
		}
		return apperror.NewInternal("failed to load portfolio", err)
	}

	if err := uc.portfolioRepo.SoftDelete(ctx, rec.ID, input.UserID); err != nil {
		return apperror.NewInternal("failed to delete portfolio", err)
	}

	uc.store.Set(input.UserID, nil)

	go func() {
		payload := event.PortfolioEventPayload{
			EventType:   event.PortfolioEventTypeDeleted,
			PortfolioID: rec.ID,
			UserID:      rec.UserID,
			Slug:        rec.Slug,
		}
		if err := uc.events.PublishPortfolioEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish 'portfolio.deleted' event", err, zap.String("slug", rec.Slug))
		}
	}()

	return nil
}
