// Package news declares the repository contract for news entries and its
// Postgres implementation.
package news

import (
	"context"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
)

// Repository persists news entries. Soft-deleted rows behave as missing.
type Repository interface {
	// Create inserts e and fills its ID and timestamps. A taken slug yields common.ErrorConflict.
	Create(ctx context.Context, e *models.NewsEntry) (*models.NewsEntry, error)
	// Update overwrites the editable fields of e.ID.
	Update(ctx context.Context, e *models.NewsEntry) (*models.NewsEntry, error)
	GetByID(ctx context.Context, id string) (*models.NewsEntry, error)
	// GetPublishedBySlug returns common.ErrorNotFound for unknown or non-published slugs.
	GetPublishedBySlug(ctx context.Context, slug string) (*models.NewsEntry, error)
	// List returns one page in public order together with the total matching count.
	List(ctx context.Context, q models.ListQuery) ([]*models.NewsEntry, int, error)
	// Publish sets status published and stamps published_at when it is still empty.
	Publish(ctx context.Context, id string, at time.Time) (*models.NewsEntry, error)
	Archive(ctx context.Context, id string) (*models.NewsEntry, error)
	SoftDelete(ctx context.Context, id string) error
	// MarkNotified sets notified_at once; it reports false when it was already set.
	MarkNotified(ctx context.Context, id string, at time.Time) (bool, error)
}
