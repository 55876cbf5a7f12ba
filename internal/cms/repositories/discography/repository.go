// Package discography declares the repository contract for discography
// entries and its Postgres implementation.
package discography

import (
	"context"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.DiscographyEntry) (*models.DiscographyEntry, error)
	Update(ctx context.Context, e *models.DiscographyEntry) (*models.DiscographyEntry, error)
	GetByID(ctx context.Context, id string) (*models.DiscographyEntry, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.DiscographyEntry, error)
	List(ctx context.Context, q models.ListQuery) ([]*models.DiscographyEntry, int, error)
	SoftDelete(ctx context.Context, id string) error
}
