package subscribers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/pgutil"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Subscribe(ctx context.Context, email, token string) (*models.FeedSubscriber, error) {
	query := `
		INSERT INTO feed_subscribers (email, unsubscribe_token)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET unsubscribed_at = NULL
		RETURNING id, email, unsubscribe_token, created_at
	`
	s := &models.FeedSubscriber{}
	if err := r.db.QueryRowContext(ctx, query, email, token).Scan(&s.ID, &s.Email, &s.UnsubscribeToken, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Unsubscribe(ctx context.Context, token string) error {
	query := `
		UPDATE feed_subscribers
		SET unsubscribed_at = COALESCE(unsubscribed_at, now())
		WHERE unsubscribe_token = $1
	`
	res, err := r.db.ExecContext(ctx, query, token)
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

func (r *PostgresRepository) ListActive(ctx context.Context) ([]*models.FeedSubscriber, error) {
	query := `
		SELECT id, email, unsubscribe_token, created_at, unsubscribed_at
		FROM feed_subscribers
		WHERE unsubscribed_at IS NULL
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.FeedSubscriber
	for rows.Next() {
		s := &models.FeedSubscriber{}
		var unsubscribedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.Email, &s.UnsubscribeToken, &s.CreatedAt, &unsubscribedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.UnsubscribedAt = pgutil.TimePtr(unsubscribedAt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
