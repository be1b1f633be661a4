package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spotme/spotme-api/internal/domain/portfolio"
)

type postgresPortfolioRepo struct {
	db *pgxpool.Pool
}

func NewPostgresPortfolioRepo(db *pgxpool.Pool) portfolio.Repository {
	return &postgresPortfolioRepo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const portfolioColumns = `id, user_id, slug, title, content, published, published_at, created_at, updated_at`

func scanPortfolio(row pgx.Row) (*portfolio.Record, error) {
	rec := &portfolio.Record{}
	var slug sql.NullString
	var publishedAt sql.NullTime
	var contentBytes []byte

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&slug,
		&rec.Title,
		&contentBytes,
		&rec.Published,
		&publishedAt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, portfolio.ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("failed to scan portfolio row: %w", err)
	}

	if slug.Valid {
		rec.Slug = slug.String
	}
	if publishedAt.Valid {
		rec.PublishedAt = &publishedAt.Time
	}
	if err := json.Unmarshal(contentBytes, &rec.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal portfolio content: %w", err)
	}
	return rec, nil
}

// nullableSlug maps the empty draft slug to SQL NULL so the partial unique
// index on slug never sees two empty strings as a conflict.
func nullableSlug(slug string) *string {
	if slug == "" {
		return nil
	}
	return &slug
}

func (r *postgresPortfolioRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*portfolio.Record, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE user_id = $1 AND deleted_at IS NULL`
	return scanPortfolio(r.db.QueryRow(ctx, query, userID))
}

func (r *postgresPortfolioRepo) FindBySlug(ctx context.Context, slug string) (*portfolio.Record, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE slug = $1 AND deleted_at IS NULL`
	return scanPortfolio(r.db.QueryRow(ctx, query, slug))
}

func (r *postgresPortfolioRepo) FindPublishedBySlug(ctx context.Context, slug string) (*portfolio.Record, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE slug = $1 AND published = TRUE AND deleted_at IS NULL`
	return scanPortfolio(r.db.QueryRow(ctx, query, slug))
}

func (r *postgresPortfolioRepo) Insert(ctx context.Context, rec *portfolio.Record) error {
	contentBytes, err := json.Marshal(rec.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio content: %w", err)
	}

	query := `
		INSERT INTO portfolios (id, user_id, slug, title, content, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query,
		rec.ID, rec.UserID, nullableSlug(rec.Slug), rec.Title,
		contentBytes, rec.Published, rec.PublishedAt,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return portfolio.ErrSlugTaken
		}
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) Update(ctx context.Context, rec *portfolio.Record) error {
	contentBytes, err := json.Marshal(rec.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio content: %w", err)
	}

	query := `
		UPDATE portfolios SET
			slug = $3, title = $4, content = $5, published = $6, published_at = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`
	cmdTag, err := r.db.Exec(ctx, query,
		rec.ID, rec.UserID, nullableSlug(rec.Slug), rec.Title,
		contentBytes, rec.Published, rec.PublishedAt,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return portfolio.ErrSlugTaken
		}
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return portfolio.ErrPortfolioNotFound
	}
	return nil
}

func (r *postgresPortfolioRepo) SoftDelete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `UPDATE portfolios SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	cmdTag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return portfolio.ErrPortfolioNotFound
	}
	return nil
}

func (r *postgresPortfolioRepo) ListPublished(ctx context.Context, limit, offset int) ([]*portfolio.Record, error) {
	builder := psql.Select(portfolioColumns).
		From("portfolios").
		Where(sq.Eq{"published": true}).
		Where("deleted_at IS NULL").
		OrderBy("published_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query published portfolios: %w", err)
	}
	defer rows.Close()

	records := make([]*portfolio.Record, 0)
	for rows.Next() {
		rec, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio rows: %w", err)
	}
	return records, nil
}
