// Package operators stores CMS operator accounts.
package operators

import (
	"context"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
)

type Repository interface {
	// Create inserts a new operator. A taken email yields common.ErrorConflict.
	Create(ctx context.Context, email, passwordHash string) (*models.Operator, error)
	GetByEmail(ctx context.Context, email string) (*models.Operator, error)
}
