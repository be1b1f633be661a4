package portfolio

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spotme/spotme-api/adapters/event"
	"github.com/spotme/spotme-api/internal/application/service"
	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/pkg/logger"
)

// ProcessPortfolioEventUseCase keeps the published-portfolio cache in step
// with durable storage: publish warms the entry, delete drops it.
type ProcessPortfolioEventUseCase struct {
	portfolioRepo portfolio.Repository
	cache         service.DocumentCache
	logger        logger.Logger
}

func NewProcessPortfolioEventUseCase(pRepo portfolio.Repository, cache service.DocumentCache, log logger.Logger) *ProcessPortfolioEventUseCase {
	return &ProcessPortfolioEventUseCase{
		portfolioRepo: pRepo,
		cache:         cache,
		logger:        log,
	}
}

func (uc *ProcessPortfolioEventUseCase) Execute(ctx context.Context, payload event.PortfolioEventPayload) error {
	switch payload.EventType {
	case event.PortfolioEventTypePublished:
		// a republish under a new slug leaves the old entry serving stale content
		if payload.PreviousSlug != "" && payload.PreviousSlug != payload.Slug {
			if err := uc.cache.InvalidatePublished(ctx, payload.PreviousSlug); err != nil {
				return fmt.Errorf("invalidate cache for previous slug %q: %w", payload.PreviousSlug, err)
			}
		}
		rec, err := uc.portfolioRepo.FindPublishedBySlug(ctx, payload.Slug)
		if err != nil {
			if errors.Is(err, portfolio.ErrPortfolioNotFound) {
				// unpublished again before the event arrived
				return uc.cache.InvalidatePublished(ctx, payload.Slug)
			}
			return fmt.Errorf("load published portfolio %q: %w", payload.Slug, err)
		}
		if err := uc.cache.SetPublished(ctx, rec, publishedCacheTTL); err != nil {
			return fmt.Errorf("warm cache for %q: %w", payload.Slug, err)
		}
		uc.logger.Info("Warmed published portfolio cache", zap.String("slug", payload.Slug))
		return nil

	case event.PortfolioEventTypeDeleted:
		if err := uc.cache.InvalidatePublished(ctx, payload.Slug); err != nil {
			return fmt.Errorf("invalidate cache for %q: %w", payload.Slug, err)
		}
		uc.logger.Info("Dropped published portfolio cache entry", zap.String("slug", payload.Slug))
		return nil
	}

	return fmt.Errorf("unknown portfolio event type: %s", payload.EventType)
}
