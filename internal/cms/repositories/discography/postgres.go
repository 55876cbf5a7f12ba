package discography

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/pgutil"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/dbx"
)

const columns = `id, title, slug, artist, release_year, release_date, format, catalog_number,
		description, cover_url, product_handle, status, tags, created_at, updated_at, deleted_at`

const publicOrder = `ORDER BY release_year DESC NULLS LAST, release_date DESC NULLS LAST, created_at DESC, id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.DiscographyEntry, error) {
	e := &models.DiscographyEntry{}
	var (
		status                 string
		year                   sql.NullInt64
		releaseDate, deletedAt sql.NullTime
		tags                   []byte
	)
	err := row.Scan(&e.ID, &e.Title, &e.Slug, &e.Artist, &year, &releaseDate, &e.Format,
		&e.CatalogNumber, &e.Description, &e.CoverURL, &e.ProductHandle, &status, &tags,
		&e.CreatedAt, &e.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		e.ReleaseYear = &y
	}
	e.ReleaseDate = pgutil.TimePtr(releaseDate)
	e.DeletedAt = pgutil.TimePtr(deletedAt)
	e.Status = models.Status(status)
	if e.Tags, err = pgutil.DecodeTags(tags); err != nil {
		return nil, err
	}
	return e, nil
}

func nullYear(y *int) sql.NullInt64 {
	if y == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*y), Valid: true}
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.DiscographyEntry, error) {
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

func (r *PostgresRepository) Create(ctx context.Context, e *models.DiscographyEntry) (*models.DiscographyEntry, error) {
	tags, err := pgutil.EncodeTags(e.Tags)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO discography_entries (title, slug, artist, release_year, release_date, format,
			catalog_number, description, cover_url, product_handle, status, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb)
		RETURNING ` + columns
	return r.one(ctx, query, e.Title, e.Slug, e.Artist, nullYear(e.ReleaseYear),
		pgutil.NullTime(e.ReleaseDate), e.Format, e.CatalogNumber, e.Description, e.CoverURL,
		e.ProductHandle, string(e.Status), tags)
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.DiscographyEntry) (*models.DiscographyEntry, error) {
	tags, err := pgutil.EncodeTags(e.Tags)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE discography_entries
		SET title = $2, slug = $3, artist = $4, release_year = $5, release_date = $6, format = $7,
			catalog_number = $8, description = $9, cover_url = $10, product_handle = $11,
			status = $12, tags = $13::jsonb, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + columns
	return r.one(ctx, query, e.ID, e.Title, e.Slug, e.Artist, nullYear(e.ReleaseYear),
		pgutil.NullTime(e.ReleaseDate), e.Format, e.CatalogNumber, e.Description, e.CoverURL,
		e.ProductHandle, string(e.Status), tags)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.DiscographyEntry, error) {
	query := `SELECT ` + columns + `
		FROM discography_entries
		WHERE id = $1 AND deleted_at IS NULL`
	return r.one(ctx, query, id)
}

func (r *PostgresRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.DiscographyEntry, error) {
	query := `SELECT ` + columns + `
		FROM discography_entries
		WHERE slug = $1 AND status = 'published' AND deleted_at IS NULL`
	return r.one(ctx, query, slug)
}

func (r *PostgresRepository) List(ctx context.Context, q models.ListQuery) ([]*models.DiscographyEntry, int, error) {
	where, err := pgutil.ListFilter(q)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM discography_entries ` + where.SQL()
	if err := r.db.QueryRowContext(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + columns + `
		FROM discography_entries ` + where.SQL() + `
		` + publicOrder + `
		LIMIT ` + where.Next(1) + ` OFFSET ` + where.Next(2)
	args := append(where.Args(), q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.DiscographyEntry, 0, q.Limit)
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

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE discography_entries
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
