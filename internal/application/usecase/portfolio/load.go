package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/spotme/spotme-api/internal/application/editor"
	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/internal/domain/user"
	"github.com/spotme/spotme-api/pkg/apperror"
)

type LoadPortfolioUseCase struct {
	portfolioRepo portfolio.Repository
	userRepo      user.Repository
	store         *editor.Store
}

func NewLoadPortfolioUseCase(pRepo portfolio.Repository, uRepo user.Repository, store *editor.Store) *LoadPortfolioUseCase {
	return &LoadPortfolioUseCase{
		portfolioRepo: pRepo,
		userRepo:      uRepo,
		store:         store,
	}
}

type LoadPortfolioInput struct {
	UserID uuid.UUID
}

type LoadPortfolioOutput struct {
	Document  portfolio.Document
	Published bool
	Slug      string
}

// Execute puts the owner's portfolio into the editor store: the already
// loaded document if present, else the stored record, else a fresh default
// seeded with the account email.
func (uc *LoadPortfolioUseCase) Execute(ctx context.Context, input LoadPortfolioInput) (*LoadPortfolioOutput, error) {
	rec, err := uc.portfolioRepo.FindByUserID(ctx, input.UserID)
	if err != nil && !errors.Is(err, portfolio.ErrPortfolioNotFound) {
		return nil, apperror.NewInternal("failed to load portfolio", err)
	}

	if doc, ok := uc.store.Get(input.UserID); ok {
		out := &LoadPortfolioOutput{Document: doc}
		if rec != nil {
			out.Published = rec.Published
			out.Slug = rec.Slug
		}
		return out, nil
	}

	if rec != nil {
		uc.store.Set(input.UserID, &rec.Content)
		return &LoadPortfolioOutput{Document: rec.Content, Published: rec.Published, Slug: rec.Slug}, nil
	}

	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load account", err)
	}

	doc := portfolio.DefaultDocument(u.Email)
	uc.store.Set(input.UserID, &doc)
	return &LoadPortfolioOutput{Document: doc}, nil
}
