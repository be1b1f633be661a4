package portfolio

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spotme/spotme-api/internal/application/service"
	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/internal/domain/user"
	"github.com/spotme/spotme-api/pkg/apperror"
	"github.com/spotme/spotme-api/pkg/logger"
)

const publishedCacheTTL = 5 * time.Minute

type GetPublishedUseCase struct {
	portfolioRepo portfolio.Repository
	userRepo      user.Repository
	cache         service.DocumentCache
	logger        logger.Logger
}

func NewGetPublishedUseCase(pRepo portfolio.Repository, uRepo user.Repository, cache service.DocumentCache, log logger.Logger) *GetPublishedUseCase {
	return &GetPublishedUseCase{
		portfolioRepo: pRepo,
		userRepo:      uRepo,
		cache:         cache,
		logger:        log,
	}
}

type GetPublishedInput struct {
	Slug string
}

type GetPublishedOutput struct {
	Record    *portfolio.Record
	OwnerName string
}

// Execute resolves a public slug to its published document. Cache first,
// durable storage on a miss; cache failures degrade to plain DB reads.
func (uc *GetPublishedUseCase) Execute(ctx context.Context, input GetPublishedInput) (*GetPublishedOutput, error) {
	if input.Slug == "" {
		return nil, apperror.NewInvalidInput("slug is required", nil)
	}

	rec, err := uc.cache.GetPublished(ctx, input.Slug)
	if err != nil {
		uc.logger.Warn("Published portfolio cache read failed", zap.String("slug", input.Slug), zap.Error(err))
	}

	if rec == nil {
		rec, err = uc.portfolioRepo.FindPublishedBySlug(ctx, input.Slug)
		if err != nil {
			if errors.Is(err, portfolio.ErrPortfolioNotFound) {
				return nil, apperror.NewNotFound("portfolio", input.Slug)
			}
			return nil, apperror.NewInternal("failed to load portfolio", err)
		}
		if cacheErr := uc.cache.SetPublished(ctx, rec, publishedCacheTTL); cacheErr != nil {
			uc.logger.Warn("Published portfolio cache write failed", zap.String("slug", input.Slug), zap.Error(cacheErr))
		}
	}

	out := &GetPublishedOutput{Record: rec}
	if owner, err := uc.userRepo.FindByID(ctx, rec.UserID); err == nil && owner.DisplayName != nil {
		out.OwnerName = *owner.DisplayName
	}
	return out, nil
}
