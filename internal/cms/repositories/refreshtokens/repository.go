// Package refreshtokens declares the repository contract for operator
// refresh tokens and its Postgres implementation.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for operatorID with an expiry of now+validity.
	Create(ctx context.Context, operatorID string, token string, validity time.Duration) error

	// Find looks up a refresh token by its opaque token string.
	// It returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token by its token string. Deleting a
	// non-existent token is not an error.
	Delete(ctx context.Context, token string) error
}
