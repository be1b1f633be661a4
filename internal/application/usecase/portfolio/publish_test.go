package portfolio

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotme/spotme-api/adapters/event"
	"github.com/spotme/spotme-api/internal/application/editor"
	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/internal/domain/user"
	"github.com/spotme/spotme-api/pkg/apperror"
	"github.com/spotme/spotme-api/pkg/logger"
)

type fakePortfolioRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*portfolio.Record
	deleted map[uuid.UUID]bool
}

func newFakePortfolioRepo() *fakePortfolioRepo {
	return &fakePortfolioRepo{
		records: make(map[uuid.UUID]*portfolio.Record),
		deleted: make(map[uuid.UUID]bool),
	}
}

func (r *fakePortfolioRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*portfolio.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records {
		if rec.UserID == userID && !r.deleted[id] {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, portfolio.ErrPortfolioNotFound
}

func (r *fakePortfolioRepo) FindBySlug(_ context.Context, slug string) (*portfolio.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records {
		if rec.Slug == slug && slug != "" && !r.deleted[id] {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, portfolio.ErrPortfolioNotFound
}

func (r *fakePortfolioRepo) FindPublishedBySlug(_ context.Context, slug string) (*portfolio.Record, error) {
	rec, err := r.FindBySlug(context.Background(), slug)
	if err != nil || !rec.Published {
		return nil, portfolio.ErrPortfolioNotFound
	}
	return rec, nil
}

func (r *fakePortfolioRepo) Insert(_ context.Context, rec *portfolio.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, other := range r.records {
		if other.Slug == rec.Slug && rec.Slug != "" && !r.deleted[id] {
			return portfolio.ErrSlugTaken
		}
	}
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *fakePortfolioRepo) Update(_ context.Context, rec *portfolio.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.ID]; !ok {
		return portfolio.ErrPortfolioNotFound
	}
	for id, other := range r.records {
		if id != rec.ID && other.Slug == rec.Slug && rec.Slug != "" && !r.deleted[id] {
			return portfolio.ErrSlugTaken
		}
	}
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *fakePortfolioRepo) SoftDelete(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return portfolio.ErrPortfolioNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *fakePortfolioRepo) ListPublished(_ context.Context, limit, offset int) ([]*portfolio.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*portfolio.Record
	for id, rec := range r.records {
		if rec.Published && !r.deleted[id] {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(*out[j].PublishedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePortfolioRepo) rowCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) add(u *user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error   { r.add(u); return nil }
func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error { r.add(u); return nil }

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByConfirmToken(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByResetToken(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

type fakePortfolioEvents struct {
	mu       sync.Mutex
	payloads []event.PortfolioEventPayload
	done     chan struct{}
}

func newFakePortfolioEvents() *fakePortfolioEvents {
	return &fakePortfolioEvents{done: make(chan struct{}, 8)}
}

func (p *fakePortfolioEvents) PublishPortfolioEvent(_ context.Context, payload event.PortfolioEventPayload) error {
	p.mu.Lock()
	p.payloads = append(p.payloads, payload)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *fakePortfolioEvents) wait(t *testing.T) event.PortfolioEventPayload {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(time.Second):
		t.Fatal("no portfolio event published")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.payloads[len(p.payloads)-1]
}

func displayName(s string) *string { return &s }

func publishFixture(t *testing.T, name string) (*PublishUseCase, *fakePortfolioRepo, *editor.Store, uuid.UUID) {
	t.Helper()

	repo := newFakePortfolioRepo()
	users := newFakeUserRepo()
	store := editor.NewStore()
	events := newFakePortfolioEvents()

	userID := uuid.New()
	users.add(&user.User{ID: userID, Email: "jane@example.com", DisplayName: displayName(name)})

	doc := portfolio.DefaultDocument("jane@example.com")
	doc.Hero.Name = "Jane Doe"
	doc.Hero.Title = "Engineer"
	store.Set(userID, &doc)

	uc := NewPublishUseCase(repo, users, store, events, "https://spotme.app", logger.NewNop())
	return uc, repo, store, userID
}

func TestPublish_SlugDerivedFromDisplayName(t *testing.T) {
	uc, _, _, userID := publishFixture(t, "Jane Doe!")

	out, err := uc.Execute(context.Background(), PublishInput{UserID: userID})
	require.NoError(t, err)

	assert.Equal(t, "jane-doe", out.Slug)
	assert.Equal(t, "https://spotme.app/p/jane-doe", out.PublicURL)
}

func TestPublish_FallsBackToHeroNameThenRandom(t *testing.T) {
	repo := newFakePortfolioRepo()
	users := newFakeUserRepo()
	store := editor.NewStore()

	userID := uuid.New()
	users.add(&user.User{ID: userID, Email: "jane@example.com"})

	doc := portfolio.DefaultDocument("jane@example.com")
	doc.Hero.Name = "Jane Q. Public"
	store.Set(userID, &doc)

	uc := NewPublishUseCase(repo, users, store, newFakePortfolioEvents(), "https://spotme.app", logger.NewNop())
	out, err := uc.Execute(context.Background(), PublishInput{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, "jane-q-public", out.Slug)

	// neither display name nor hero name usable
	otherID := uuid.New()
	users.add(&user.User{ID: otherID, Email: "x@example.com", DisplayName: displayName("!!!")})
	emptyDoc := portfolio.Document{}
	store.Set(otherID, &emptyDoc)

	out, err = uc.Execute(context.Background(), PublishInput{UserID: otherID})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Slug, "p-"))
	assert.Len(t, out.Slug, 10)
}

func TestPublish_RepublishUpdatesSameRow(t *testing.T) {
	uc, repo, store, userID := publishFixture(t, "Jane Doe")

	first, err := uc.Execute(context.Background(), PublishInput{UserID: userID})
	require.NoError(t, err)

	store.UpdateAbout(userID, editor.AboutPatch{Bio: ptr("updated bio")})

	second, err := uc.Execute(context.Background(), PublishInput{UserID: userID})
	require.NoError(t, err)

	assert.Equal(t, first.PortfolioID, second.PortfolioID)
	assert.Equal(t, first.Slug, second.Slug)
	assert.Equal(t, 1, repo.rowCount())

	rec, err := repo.FindByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "updated bio", rec.Content.About.Bio)
	assert.True(t, rec.Published)
	require.NotNil(t, rec.PublishedAt)
}

func TestPublish_SlugCollisionGetsSuffix(t *testing.T) {
	uc, repo, _, userID := publishFixture(t, "Jane Doe")

	// another user's portfolio already holds the naive candidate
	other := &portfolio.Record{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Slug:      "jane-doe",
		Published: true,
	}
	require.NoError(t, repo.Insert(context.Background(), other))

	out, err := uc.Execute(context.Background(), PublishInput{UserID: userID})
	require.NoError(t, err)

	assert.NotEqual(t, "jane-doe", out.Slug)
	assert.True(t, strings.HasPrefix(out.Slug, "jane-doe-"))

	// both rows resolvable, slugs unique
	a, err := repo.FindBySlug(context.Background(), "jane-doe")
	require.NoError(t, err)
	b, err := repo.FindBySlug(context.Background(), out.Slug)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestPublish_NoDocumentLoaded(t *testing.T) {
	uc, _, _, _ := publishFixture(t, "Jane Doe")

	_, err := uc.Execute(context.Background(), PublishInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestPublish_EmitsPublishedEvent(t *testing.T) {
	repo := newFakePortfolioRepo()
	users := newFakeUserRepo()
	store := editor.NewStore()
	events := newFakePortfolioEvents()

	userID := uuid.New()
	users.add(&user.User{ID: userID, Email: "jane@example.com", DisplayName: displayName("Jane Doe")})
	doc := portfolio.DefaultDocument("jane@example.com")
	store.Set(userID, &doc)

	uc := NewPublishUseCase(repo, users, store, events, "https://spotme.app", logger.NewNop())
	out, err := uc.Execute(context.Background(), PublishInput{UserID: userID})
	require.NoError(t, err)

	payload := events.wait(t)
	assert.Equal(t, event.PortfolioEventTypePublished, payload.EventType)
	assert.Equal(t, out.Slug, payload.Slug)
	assert.Empty(t, payload.PreviousSlug)
}

func TestPublish_SlugChangeCarriesPreviousSlug(t *testing.T) {
	repo := newFakePortfolioRepo()
	users := newFakeUserRepo()
	store := editor.NewStore()
	events := newFakePortfolioEvents()

	userID := uuid.New()
	owner := &user.User{ID: userID, Email: "jane@example.com", DisplayName: displayName("Jane Doe")}
	users.add(owner)
	doc := portfolio.DefaultDocument("jane@example.com")
	store.Set(userID, &doc)

	uc := NewPublishUseCase(repo, users, store, events, "https://spotme.app", logger.NewNop())
	out, err := uc.Execute(context.Background(), PublishInput{UserID: userID})
	require.NoError(t, err)
	require.Equal(t, "jane-doe", out.Slug)
	events.wait(t)

	owner.DisplayName = displayName("Jane Smith")
	users.add(owner)

	out, err = uc.Execute(context.Background(), PublishInput{UserID: userID})
	require.NoError(t, err)
	require.Equal(t, "jane-smith", out.Slug)

	payload := events.wait(t)
	assert.Equal(t, "jane-smith", payload.Slug)
	assert.Equal(t, "jane-doe", payload.PreviousSlug)
}

func ptr(s string) *string { return &s }
