package portfolio

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotme/spotme-api/adapters/event"
	"github.com/spotme/spotme-api/pkg/logger"
)

func TestProcessPortfolioEvent_PublishedWarmsCache(t *testing.T) {
	repo := newFakePortfolioRepo()
	cache := newFakeDocumentCache()
	userID := uuid.New()
	rec := publishedRecord(userID, "jane-doe")
	require.NoError(t, repo.Insert(context.Background(), rec))

	uc := NewProcessPortfolioEventUseCase(repo, cache, logger.NewNop())
	err := uc.Execute(context.Background(), event.PortfolioEventPayload{
		EventType:   event.PortfolioEventTypePublished,
		PortfolioID: rec.ID,
		UserID:      userID,
		Slug:        "jane-doe",
	})
	require.NoError(t, err)

	cached, err := cache.GetPublished(context.Background(), "jane-doe")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, rec.ID, cached.ID)
}

func TestProcessPortfolioEvent_PublishedDropsPreviousSlug(t *testing.T) {
	// republish under a new slug: the old slug's entry must stop serving
	repo := newFakePortfolioRepo()
	cache := newFakeDocumentCache()
	userID := uuid.New()

	stale := publishedRecord(userID, "jane-doe")
	require.NoError(t, cache.SetPublished(context.Background(), stale, publishedCacheTTL))

	rec := publishedRecord(userID, "jane-smith")
	require.NoError(t, repo.Insert(context.Background(), rec))

	uc := NewProcessPortfolioEventUseCase(repo, cache, logger.NewNop())
	err := uc.Execute(context.Background(), event.PortfolioEventPayload{
		EventType:    event.PortfolioEventTypePublished,
		PortfolioID:  rec.ID,
		UserID:       userID,
		Slug:         "jane-smith",
		PreviousSlug: "jane-doe",
	})
	require.NoError(t, err)

	cached, err := cache.GetPublished(context.Background(), "jane-doe")
	require.NoError(t, err)
	assert.Nil(t, cached)

	cached, err = cache.GetPublished(context.Background(), "jane-smith")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, rec.ID, cached.ID)
}

func TestProcessPortfolioEvent_DeletedInvalidates(t *testing.T) {
	cache := newFakeDocumentCache()
	rec := publishedRecord(uuid.New(), "jane-doe")
	require.NoError(t, cache.SetPublished(context.Background(), rec, publishedCacheTTL))

	uc := NewProcessPortfolioEventUseCase(newFakePortfolioRepo(), cache, logger.NewNop())
	err := uc.Execute(context.Background(), event.PortfolioEventPayload{
		EventType: event.PortfolioEventTypeDeleted,
		Slug:      "jane-doe",
	})
	require.NoError(t, err)

	cached, err := cache.GetPublished(context.Background(), "jane-doe")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestProcessPortfolioEvent_StaleGone(t *testing.T) {
	// publish event arrives after the portfolio was already deleted
	cache := newFakeDocumentCache()
	rec := publishedRecord(uuid.New(), "jane-doe")
	require.NoError(t, cache.SetPublished(context.Background(), rec, publishedCacheTTL))

	uc := NewProcessPortfolioEventUseCase(newFakePortfolioRepo(), cache, logger.NewNop())
	err := uc.Execute(context.Background(), event.PortfolioEventPayload{
		EventType: event.PortfolioEventTypePublished,
		Slug:      "jane-doe",
	})
	require.NoError(t, err)

	cached, err := cache.GetPublished(context.Background(), "jane-doe")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestProcessPortfolioEvent_UnknownType(t *testing.T) {
	uc := NewProcessPortfolioEventUseCase(newFakePortfolioRepo(), newFakeDocumentCache(), logger.NewNop())
	err := uc.Execute(context.Background(), event.PortfolioEventPayload{EventType: "portfolio.renamed"})
	assert.Error(t, err)
}
