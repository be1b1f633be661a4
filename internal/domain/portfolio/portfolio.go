package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrSlugTaken         = errors.New("portfolio slug already exists")
)

// Document is the portfolio content a user assembles in the editor. Sections
// are independently optional; a nil section simply does not render.
type Document struct {
	Hero     *Hero     `json:"hero,omitempty"`
	About    *About    `json:"about,omitempty"`
	Skills   *Skills   `json:"skills,omitempty"`
	Projects *Projects `json:"projects,omitempty"`
	Contact  *Contact  `json:"contact,omitempty"`
	Theme    *Theme    `json:"theme,omitempty"`
}

type Hero struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	AvatarURL   string `json:"avatar_url"`
	AvatarSize  int    `json:"avatar_size"`
	AvatarShape string `json:"avatar_shape"`
	CTAText     string `json:"cta_text"`
	CTAURL      string `json:"cta_url"`
}

type About struct {
	Bio     string `json:"bio"`
	Mission string `json:"mission"`
}

type Skill struct {
	Name       string `json:"name"`
	Experience string `json:"experience"`
	Category   string `json:"category"`
}

type Skills struct {
	Items []Skill `json:"items"`
}

type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	LiveURL     string `json:"live_url"`
	SourceURL   string `json:"source_url"`
}

type Projects struct {
	Items []Project `json:"items"`
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type Contact struct {
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	SocialLinks []SocialLink `json:"social_links"`
}

const (
	ModeLight = "light"
	ModeDark  = "dark"
)

type Theme struct {
	Mode           string  `json:"mode"`
	PrimaryColor   string  `json:"primary_color"`
	SecondaryColor string  `json:"secondary_color"`
	AccentColor    string  `json:"accent_color"`
	FontFamily     string  `json:"font_family"`
	DarkOpacity    float64 `json:"dark_opacity"`
}

const (
	DefaultAvatarSize  = 128
	DefaultAvatarShape = "circle"
)

// DefaultDocument seeds the editor for a user with no stored portfolio.
func DefaultDocument(contactEmail string) Document {
	return Document{
		Hero: &Hero{
			CTAText:     "See my work",
			AvatarSize:  DefaultAvatarSize,
			AvatarShape: DefaultAvatarShape,
		},
		About:    &About{},
		Skills:   &Skills{Items: []Skill{}},
		Projects: &Projects{Items: []Project{}},
		Contact: &Contact{
			Email:       contactEmail,
			SocialLinks: []SocialLink{},
		},
		Theme: &Theme{
			Mode:           ModeLight,
			PrimaryColor:   "#3B82F6",
			SecondaryColor: "#10B981",
			AccentColor:    "#F97316",
			FontFamily:     "Inter, sans-serif",
			DarkOpacity:    0.9,
		},
	}
}

// Record is the durable row backing one user's portfolio. A user owns at most
// one live record; the slug is assigned when the record is first published.
type Record struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Content     Document   `json:"content"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Repository interface {
	// FindByUserID returns the owner's live record, soft-deleted rows excluded.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Record, error)
	FindBySlug(ctx context.Context, slug string) (*Record, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*Record, error)
	Insert(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	SoftDelete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	ListPublished(ctx context.Context, limit, offset int) ([]*Record, error)
}
