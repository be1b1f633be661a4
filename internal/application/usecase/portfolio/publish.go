package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/spotme/spotme-api/adapters/event"
	"github.com/spotme/spotme-api/internal/application/editor"
	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/internal/domain/user"
	"github.com/spotme/spotme-api/pkg/apperror"
	"github.com/spotme/spotme-api/pkg/logger"
	"github.com/spotme/spotme-api/pkg/slug"
)

// PortfolioEventPublisher notifies downstream consumers (cache worker) of
// publish and delete transitions.
type PortfolioEventPublisher interface {
	PublishPortfolioEvent(ctx context.Context, payload event.PortfolioEventPayload) error
}

type PublishUseCase struct {
	portfolioRepo portfolio.Repository
	userRepo      user.Repository
	store         *editor.Store
	events        PortfolioEventPublisher
	publicBaseURL string
	logger        logger.Logger
}

func NewPublishUseCase(
	pRepo portfolio.Repository,
	uRepo user.Repository,
	store *editor.Store,
	events PortfolioEventPublisher,
	publicBaseURL string,
	log logger.Logger,
) *PublishUseCase {
	return &PublishUseCase{
		portfolioRepo: pRepo,
		userRepo:      uRepo,
		store:         store,
		events:        events,
		publicBaseURL: publicBaseURL,
		logger:        log,
	}
}

type PublishInput struct {
	UserID uuid.UUID
}

type PublishOutput struct {
	PortfolioID uuid.UUID
	Slug        string
	PublicURL   string
}

var tracer = otel.Tracer("portfolio_usecase")

// Execute moves the owner's document from draft to published. Republishing
// reuses the existing row and slug base; any storage failure aborts with the
// stored state untouched.
func (uc *PublishUseCase) Execute(ctx context.Context, input PublishInput) (*PublishOutput, error) {
	ctx, span := tracer.Start(ctx, "Publish")
	defer span.End()

	doc, ok := uc.store.Get(input.UserID)
	if !ok {
		return nil, apperror.NewInvalidInput("no portfolio loaded in the editor", nil)
	}

	owner, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load account", err)
	}

	candidate := slugCandidate(owner, doc)

	existing, err := uc.portfolioRepo.FindByUserID(ctx, input.UserID)
	if err != nil && !errors.Is(err, portfolio.ErrPortfolioNotFound) {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to check existing portfolio", err)
	}

	conflict, err := uc.portfolioRepo.FindBySlug(ctx, candidate)
	if err != nil && !errors.Is(err, portfolio.ErrPortfolioNotFound) {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to check slug uniqueness", err)
	}
	if conflict != nil && (existing == nil || conflict.ID != existing.ID) {
		candidate = fmt.Sprintf("%s-%s", candidate, slug.RandomToken(3))
	}

	now := time.Now().UTC()
	title := documentTitle(doc)

	var rec *portfolio.Record
	var previousSlug string
	if existing != nil {
		if existing.Slug != "" && existing.Slug != candidate {
			previousSlug = existing.Slug
		}
		existing.Slug = candidate
		existing.Title = title
		existing.Content = doc
		existing.Published = true
		existing.PublishedAt = &now
		existing.UpdatedAt = now
		if err := uc.portfolioRepo.Update(ctx, existing); err != nil {
			span.RecordError(err)
			if errors.Is(err, portfolio.ErrSlugTaken) {
				return nil, apperror.NewConflict("portfolio", "slug", candidate)
			}
			return nil, apperror.NewInternal("failed to publish portfolio", err)
		}
		rec = existing
	} else {
		rec = &portfolio.Record{
			ID:          uuid.New(),
			UserID:      input.UserID,
			Slug:        candidate,
			Title:       title,
			Content:     doc,
			Published:   true,
			PublishedAt: &now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.portfolioRepo.Insert(ctx, rec); err != nil {
			span.RecordError(err)
			// a racing insert grabbed the slug between our check and now
			if errors.Is(err, portfolio.ErrSlugTaken) {
				return nil, apperror.NewConflict("portfolio", "slug", candidate)
			}
			return nil, apperror.NewInternal("failed to publish portfolio", err)
		}
	}

	go func() {
		payload := event.PortfolioEventPayload{
			EventType:    event.PortfolioEventTypePublished,
			PortfolioID:  rec.ID,
			UserID:       rec.UserID,
			Slug:         rec.Slug,
			PreviousSlug: previousSlug,
		}
		if err := uc.events.PublishPortfolioEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish 'portfolio.published' event", err, zap.String("slug", rec.Slug))
		}
	}()

	span.SetAttributes(attribute.String("slug", rec.Slug))
	return &PublishOutput{
		PortfolioID: rec.ID,
		Slug:        rec.Slug,
		PublicURL:   fmt.Sprintf("%s/p/%s", uc.publicBaseURL, rec.Slug),
	}, nil
}

// slugCandidate derives the naive slug: display name, then hero name, then a
// random short token.
func slugCandidate(owner *user.User, doc portfolio.Document) string {
	if owner.DisplayName != nil {
		if s := slug.Normalize(*owner.DisplayName); s != "" {
			return s
		}
	}
	if doc.Hero != nil {
		if s := slug.Normalize(doc.Hero.Name); s != "" {
			return s
		}
	}
	return "p-" + slug.RandomToken(4)
}
