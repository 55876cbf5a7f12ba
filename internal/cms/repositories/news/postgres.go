package news

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/pgutil"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/dbx"
)

const columns = `id, title, slug, excerpt, content, author, status, published_at, tags,
		cover_url, seo_title, seo_description, notified_at, created_at, updated_at, deleted_at`

// publicOrder is the listing order; id keeps pages stable across equal timestamps.
const publicOrder = `ORDER BY published_at DESC NULLS LAST, created_at DESC, id`

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.NewsEntry, error) {
	e := &models.NewsEntry{}
	var (
		status                            string
		publishedAt, notifiedAt, deleteAt sql.NullTime
		tags                              []byte
	)
	err := row.Scan(&e.ID, &e.Title, &e.Slug, &e.Excerpt, &e.Content, &e.Author, &status,
		&publishedAt, &tags, &e.CoverURL, &e.SEOTitle, &e.SEODescription, &notifiedAt,
		&e.CreatedAt, &e.UpdatedAt, &deleteAt)
	if err != nil {
		return nil, err
	}
	e.Status = models.Status(status)
	e.PublishedAt = pgutil.TimePtr(publishedAt)
	e.NotifiedAt = pgutil.TimePtr(notifiedAt)
	e.DeletedAt = pgutil.TimePtr(deleteAt)
	if e.Tags, err = pgutil.DecodeTags(tags); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.NewsEntry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		// A malformed id cannot name any row.
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.NewsEntry) (*models.NewsEntry, error) {
	tags, err := pgutil.EncodeTags(e.Tags)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO news_entries (title, slug, excerpt, content, author, status, published_at,
			tags, cover_url, seo_title, seo_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11)
		RETURNING ` + columns
	return r.one(ctx, query, e.Title, e.Slug, e.Excerpt, e.Content, e.Author, string(e.Status),
		pgutil.NullTime(e.PublishedAt), tags, e.CoverURL, e.SEOTitle, e.SEODescription)
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.NewsEntry) (*models.NewsEntry, error) {
	tags, err := pgutil.EncodeTags(e.Tags)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE news_entries
		SET title = $2, slug = $3, excerpt = $4, content = $5, author = $6, status = $7,
			published_at = $8, tags = $9::jsonb, cover_url = $10, seo_title = $11,
			seo_description = $12, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + columns
	return r.one(ctx, query, e.ID, e.Title, e.Slug, e.Excerpt, e.Content, e.Author, string(e.Status),
		pgutil.NullTime(e.PublishedAt), tags, e.CoverURL, e.SEOTitle, e.SEODescription)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.NewsEntry, error) {
	query := `SELECT ` + columns + `
		FROM news_entries
		WHERE id = $1 AND deleted_at IS NULL`
	return r.one(ctx, query, id)
}

func (r *PostgresRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.NewsEntry, error) {
	query := `SELECT ` + columns + `
		FROM news_entries
		WHERE slug = $1 AND status = 'published' AND deleted_at IS NULL`
	return r.one(ctx, query, slug)
}

func (r *PostgresRepository) List(ctx context.Context, q models.ListQuery) ([]*models.NewsEntry, int, error) {
	where, err := pgutil.ListFilter(q)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM news_entries ` + where.SQL()
	if err := r.db.QueryRowContext(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + columns + `
		FROM news_entries ` + where.SQL() + `
		` + publicOrder + `
		LIMIT ` + where.Next(1) + ` OFFSET ` + where.Next(2)
	args := append(where.Args(), q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.NewsEntry, 0, q.Limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return entries, total, nil
}

func (r *PostgresRepository) Publish(ctx context.Context, id string, at time.Time) (*models.NewsEntry, error) {
	query := `
		UPDATE news_entries
		SET status = 'published', published_at = COALESCE(published_at, $2), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + columns
	return r.one(ctx, query, id, at)
}

func (r *PostgresRepository) Archive(ctx context.Context, id string) (*models.NewsEntry, error) {
	query := `
		UPDATE news_entries
		SET status = 'archived', updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + columns
	return r.one(ctx, query, id)
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE news_entries
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id)
	if dbx.IsInvalidText(err) {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkNotified(ctx context.Context, id string, at time.Time) (bool, error) {
	query := `
		UPDATE news_entries
		SET notified_at = $2
		WHERE id = $1 AND notified_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}
