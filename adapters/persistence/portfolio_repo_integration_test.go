package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/internal/domain/user"
)

type PortfolioRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool        *pgxpool.Pool
	pgContainer   *postgres.PostgresContainer
	portfolioRepo portfolio.Repository
	userRepo      user.Repository
}

func (s *PortfolioRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.portfolioRepo = NewPostgresPortfolioRepo(s.dbPool)
	s.userRepo = NewPostgresUserRepo(s.dbPool)
}

func (s *PortfolioRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestPortfolioRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(PortfolioRepoIntegrationTestSuite))
}

func (s *PortfolioRepoIntegrationTestSuite) seedUser(email string) *user.User {
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	s.NoError(s.userRepo.Save(context.Background(), u))
	return u
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Insert_And_FindByUserID() {
	ctx := context.Background()
	owner := s.seedUser("insert-find@example.com")

	doc := portfolio.DefaultDocument(owner.Email)
	doc.Hero.Name = "Jane Doe"
	rec := &portfolio.Record{
		ID:      uuid.New(),
		UserID:  owner.ID,
		Title:   "My Portfolio",
		Content: doc,
	}

	s.NoError(s.portfolioRepo.Insert(ctx, rec))

	found, err := s.portfolioRepo.FindByUserID(ctx, owner.ID)
	s.NoError(err)
	s.Equal(rec.ID, found.ID)
	s.Empty(found.Slug)
	s.False(found.Published)
	s.NotNil(found.Content.Hero)
	s.Equal("Jane Doe", found.Content.Hero.Name)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_DuplicateSlugRejected() {
	ctx := context.Background()
	first := s.seedUser("slug-a@example.com")
	second := s.seedUser("slug-b@example.com")

	now := time.Now().UTC()
	s.NoError(s.portfolioRepo.Insert(ctx, &portfolio.Record{
		ID: uuid.New(), UserID: first.ID, Slug: "taken-slug",
		Published: true, PublishedAt: &now,
	}))

	err := s.portfolioRepo.Insert(ctx, &portfolio.Record{
		ID: uuid.New(), UserID: second.ID, Slug: "taken-slug",
		Published: true, PublishedAt: &now,
	})
	s.ErrorIs(err, portfolio.ErrSlugTaken)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_DraftsShareNullSlug() {
	ctx := context.Background()
	first := s.seedUser("draft-a@example.com")
	second := s.seedUser("draft-b@example.com")

	s.NoError(s.portfolioRepo.Insert(ctx, &portfolio.Record{ID: uuid.New(), UserID: first.ID}))
	s.NoError(s.portfolioRepo.Insert(ctx, &portfolio.Record{ID: uuid.New(), UserID: second.ID}))
}

func (s *PortfolioRepoIntegrationTestSuite) Test_FindPublishedBySlug_IgnoresDrafts() {
	ctx := context.Background()
	owner := s.seedUser("published@example.com")

	rec := &portfolio.Record{
		ID: uuid.New(), UserID: owner.ID, Slug: "draft-only",
	}
	s.NoError(s.portfolioRepo.Insert(ctx, rec))

	_, err := s.portfolioRepo.FindPublishedBySlug(ctx, "draft-only")
	s.ErrorIs(err, portfolio.ErrPortfolioNotFound)

	now := time.Now().UTC()
	rec.Published = true
	rec.PublishedAt = &now
	s.NoError(s.portfolioRepo.Update(ctx, rec))

	found, err := s.portfolioRepo.FindPublishedBySlug(ctx, "draft-only")
	s.NoError(err)
	s.Equal(rec.ID, found.ID)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_SoftDelete_HidesRowAndFreesSlug() {
	ctx := context.Background()
	owner := s.seedUser("delete@example.com")

	now := time.Now().UTC()
	rec := &portfolio.Record{
		ID: uuid.New(), UserID: owner.ID, Slug: "goodbye",
		Published: true, PublishedAt: &now,
	}
	s.NoError(s.portfolioRepo.Insert(ctx, rec))
	s.NoError(s.portfolioRepo.SoftDelete(ctx, rec.ID, owner.ID))

	_, err := s.portfolioRepo.FindByUserID(ctx, owner.ID)
	s.ErrorIs(err, portfolio.ErrPortfolioNotFound)

	// the slug is reusable after the soft delete
	s.NoError(s.portfolioRepo.Insert(ctx, &portfolio.Record{
		ID: uuid.New(), UserID: owner.ID, Slug: "goodbye",
		Published: true, PublishedAt: &now,
	}))
}

func (s *PortfolioRepoIntegrationTestSuite) Test_ListPublished() {
	ctx := context.Background()
	owner := s.seedUser("list@example.com")

	now := time.Now().UTC()
	published := &portfolio.Record{
		ID: uuid.New(), UserID: owner.ID, Slug: "list-published",
		Published: true, PublishedAt: &now,
	}
	s.NoError(s.portfolioRepo.Insert(ctx, published))

	records, err := s.portfolioRepo.ListPublished(ctx, 100, 0)
	s.NoError(err)

	var slugs []string
	for _, r := range records {
		s.True(r.Published)
		slugs = append(slugs, r.Slug)
	}
	s.Contains(slugs, "list-published")
}
