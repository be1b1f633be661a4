package portfolio

import (
	"context"
	"time"

	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/pkg/apperror"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ListPublishedUseCase struct {
	portfolioRepo portfolio.Repository
}

func NewListPublishedUseCase(pRepo portfolio.Repository) *ListPublishedUseCase {
	return &ListPublishedUseCase{portfolioRepo: pRepo}
}

type ListPublishedInput struct {
	Limit  int
	Offset int
}

type ListPublishedItem struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
}

type ListPublishedOutput struct {
	Items []ListPublishedItem
}

// Execute returns recently published portfolios, newest first. Limits are
// clamped so a caller cannot page the whole table in one request.
func (uc *ListPublishedUseCase) Execute(ctx context.Context, input ListPublishedInput) (*ListPublishedOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	recs, err := uc.portfolioRepo.ListPublished(ctx, limit, offset)
	if err != nil {
		return nil, apperror.NewInternal("failed to list published portfolios", err)
	}

	output := &ListPublishedOutput{Items: make([]ListPublishedItem, 0, len(recs))}
	for _, rec := range recs {
		item := ListPublishedItem{Slug: rec.Slug, Title: rec.Title}
		if rec.PublishedAt != nil {
			item.PublishedAt = *rec.PublishedAt
		}
		output.Items = append(output.Items, item)
	}
	return output, nil
}
