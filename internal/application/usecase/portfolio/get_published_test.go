package portfolio

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/internal/domain/user"
	"github.com/spotme/spotme-api/pkg/apperror"
	"github.com/spotme/spotme-api/pkg/logger"
)

type fakeDocumentCache struct {
	mu      sync.Mutex
	entries map[string]*portfolio.Record
	reads   int
	writes  int
	failing bool
}

func newFakeDocumentCache() *fakeDocumentCache {
	return &fakeDocumentCache{entries: make(map[string]*portfolio.Record)}
}

func (c *fakeDocumentCache) GetPublished(_ context.Context, slug string) (*portfolio.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	if c.failing {
		return nil, assert.AnError
	}
	if rec, ok := c.entries[slug]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (c *fakeDocumentCache) SetPublished(_ context.Context, rec *portfolio.Record, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	if c.failing {
		return assert.AnError
	}
	cp := *rec
	c.entries[rec.Slug] = &cp
	return nil
}

func (c *fakeDocumentCache) InvalidatePublished(_ context.Context, slug string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, slug)
	return nil
}

func publishedRecord(userID uuid.UUID, slug string) *portfolio.Record {
	now := time.Now()
	doc := portfolio.DefaultDocument("jane@example.com")
	doc.Hero.Name = "Jane Doe"
	return &portfolio.Record{
		ID:          uuid.New(),
		UserID:      userID,
		Slug:        slug,
		Title:       "Engineer",
		Content:     doc,
		Published:   true,
		PublishedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestGetPublished_CacheMissBackfills(t *testing.T) {
	repo := newFakePortfolioRepo()
	users := newFakeUserRepo()
	cache := newFakeDocumentCache()

	userID := uuid.New()
	users.add(&user.User{ID: userID, Email: "jane@example.com", DisplayName: displayName("Jane Doe")})
	require.NoError(t, repo.Insert(context.Background(), publishedRecord(userID, "jane-doe")))

	uc := NewGetPublishedUseCase(repo, users, cache, logger.NewNop())

	out, err := uc.Execute(context.Background(), GetPublishedInput{Slug: "jane-doe"})
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", out.Record.Slug)
	assert.Equal(t, "Jane Doe", out.OwnerName)
	assert.Equal(t, 1, cache.writes)

	// second read served from cache
	_, err = uc.Execute(context.Background(), GetPublishedInput{Slug: "jane-doe"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.writes)
	assert.Equal(t, 2, cache.reads)
}

func TestGetPublished_UnknownSlug(t *testing.T) {
	uc := NewGetPublishedUseCase(newFakePortfolioRepo(), newFakeUserRepo(), newFakeDocumentCache(), logger.NewNop())

	_, err := uc.Execute(context.Background(), GetPublishedInput{Slug: "nobody-here"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetPublished_DraftsAreNotVisible(t *testing.T) {
	repo := newFakePortfolioRepo()
	userID := uuid.New()
	rec := publishedRecord(userID, "jane-doe")
	rec.Published = false
	rec.PublishedAt = nil
	require.NoError(t, repo.Insert(context.Background(), rec))

	uc := NewGetPublishedUseCase(repo, newFakeUserRepo(), newFakeDocumentCache(), logger.NewNop())

	_, err := uc.Execute(context.Background(), GetPublishedInput{Slug: "jane-doe"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetPublished_CacheFailureFallsThroughToDB(t *testing.T) {
	repo := newFakePortfolioRepo()
	users := newFakeUserRepo()
	cache := newFakeDocumentCache()
	cache.failing = true

	userID := uuid.New()
	users.add(&user.User{ID: userID, Email: "jane@example.com"})
	require.NoError(t, repo.Insert(context.Background(), publishedRecord(userID, "jane-doe")))

	uc := NewGetPublishedUseCase(repo, users, cache, logger.NewNop())

	out, err := uc.Execute(context.Background(), GetPublishedInput{Slug: "jane-doe"})
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", out.Record.Slug)
}

func TestGetPublished_EmptySlug(t *testing.T) {
	uc := NewGetPublishedUseCase(newFakePortfolioRepo(), newFakeUserRepo(), newFakeDocumentCache(), logger.NewNop())

	_, err := uc.Execute(context.Background(), GetPublishedInput{Slug: ""})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
