package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spotme/spotme-api/internal/application/editor"
	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/pkg/apperror"
)

type SaveDraftUseCase struct {
	portfolioRepo portfolio.Repository
	store         *editor.Store
}

func NewSaveDraftUseCase(pRepo portfolio.Repository, store *editor.Store) *SaveDraftUseCase {
	return &SaveDraftUseCase{portfolioRepo: pRepo, store: store}
}

type SaveDraftInput struct {
	UserID uuid.UUID
}

type SaveDraftOutput struct {
	PortfolioID uuid.UUID
}

// Execute persists the in-flight document without touching the published
// state: an existing record keeps its slug and published flag, a new record
// is stored as an unpublished draft.
func (uc *SaveDraftUseCase) Execute(ctx context.Context, input SaveDraftInput) (*SaveDraftOutput, error) {
	doc, ok := uc.store.Get(input.UserID)
	if !ok {
		return nil, apperror.NewInvalidInput("no portfolio loaded in the editor", nil)
	}

	now := time.Now().UTC()
	title := documentTitle(doc)

	rec, err := uc.portfolioRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, portfolio.ErrPortfolioNotFound) {
			return nil, apperror.NewInternal("failed to load portfolio", err)
		}
		rec = &portfolio.Record{
			ID:        uuid.New(),
			UserID:    input.UserID,
			Title:     title,
			Content:   doc,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.portfolioRepo.Insert(ctx, rec); err != nil {
			return nil, apperror.NewInternal("failed to save draft", err)
		}
		return &SaveDraftOutput{PortfolioID: rec.ID}, nil
	}

	rec.Title = title
	rec.Content = doc
	rec.UpdatedAt = now
	if err := uc.portfolioRepo.Update(ctx, rec); err != nil {
		return nil, apperror.NewInternal("failed to save draft", err)
	}
	return &SaveDraftOutput{PortfolioID: rec.ID}, nil
}

func documentTitle(doc portfolio.Document) string {
	if doc.Hero != nil && doc.Hero.Title != "" {
		return doc.Hero.Title
	}
	return "My Portfolio"
}
